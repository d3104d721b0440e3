package runner

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdstyle/internal/logging"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// Runner lints discovered files through a shared Pipeline. Every file gets
// its own pass, so files are linted in parallel while the rules of one pass
// stay sequential.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New creates a Runner for the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files and lints them with at most opts.Jobs passes in
// flight. A file that fails to lint is recorded in its FileOutcome and does
// not stop the run; only cancellation does.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := newResult(len(files))
	if len(files) == 0 {
		return result, nil
	}

	logger := logging.FromContext(ctx)
	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobCount(opts.Jobs, len(files)))

	for idx, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			outcome := FileOutcome{Path: path}
			outcome.Result, outcome.Error = r.Pipeline.ProcessFile(groupCtx, path)
			switch {
			case outcome.Error == nil:
			case lint.IsPipelineError(outcome.Error):
				logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, outcome.Error)
			default:
				logger.Warn("unexpected file error", logging.FieldPath, path, logging.FieldError, outcome.Error)
			}
			outcomes[idx] = outcome
			return nil
		})
	}

	waitErr := group.Wait()

	for _, outcome := range outcomes {
		if outcome.Path == "" {
			continue
		}
		result.accumulate(outcome)
	}

	if waitErr != nil {
		return result, fmt.Errorf("run cancelled: %w", waitErr)
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// RunReader lints a single document read from in, such as standard input.
// name is used as the document path and may be empty. Unlike Run, a lint
// failure is returned as an error.
func (r *Runner) RunReader(ctx context.Context, name string, in io.Reader) (*Result, error) {
	res, err := r.Pipeline.ProcessReader(ctx, name, in)
	if err != nil {
		return nil, err
	}
	return NewResult(FileOutcome{Path: name, Result: res}), nil
}

func jobCount(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return min(jobs, files)
}
