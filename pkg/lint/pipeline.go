package lint

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yaklabco/mdstyle/pkg/fsutil"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrLintFailure indicates the lint pass itself failed.
	ErrLintFailure = errors.New("lint failure")
)

// PipelineResult is the outcome of linting one input.
type PipelineResult struct {
	*Result

	// Path is the input that was processed. Empty for standard input.
	Path string

	// Info is the snapshot the document was taken from.
	Info *fsutil.FileInfo

	// Stale is true when the file changed on disk while it was linted, so
	// the diagnostics describe content that no longer exists.
	Stale bool
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Stale:
		return "stale: file changed during linting"
	case pr.Result != nil && pr.HasIssues():
		return "issues found"
	}
	return "ok"
}

// Pipeline snapshots an input, lints it with a compiled plan, and checks the
// snapshot is still current.
type Pipeline struct {
	Engine *Engine
	Plan   *Plan
}

// NewPipeline creates a pipeline for the given engine and plan.
func NewPipeline(engine *Engine, plan *Plan) *Pipeline {
	return &Pipeline{Engine: engine, Plan: plan}
}

// ProcessFile reads path once, lints the copy, and marks the result stale
// if the file was modified in the meantime.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*PipelineResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.process(ctx, path, content, info)
	if err != nil {
		return nil, err
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	result.Stale = modified

	return result, nil
}

// ProcessReader lints everything read from r under the display name path.
func (p *Pipeline) ProcessReader(ctx context.Context, path string, r io.Reader) (*PipelineResult, error) {
	content, info, err := fsutil.ReadAll(ctx, r)
	if err != nil {
		return nil, err
	}
	return p.process(ctx, path, content, info)
}

// ProcessContent lints in-memory content without file I/O.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte) (*PipelineResult, error) {
	return p.process(ctx, path, content, nil)
}

func (p *Pipeline) process(ctx context.Context, path string, content []byte, info *fsutil.FileInfo) (*PipelineResult, error) {
	result, err := p.Engine.Lint(ctx, path, content, p.Plan)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLintFailure, err)
	}
	return &PipelineResult{Result: result, Path: path, Info: info}, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrLintFailure)
}
