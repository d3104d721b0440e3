// Package external runs a third-party Markdown linter over a document and
// parses its report.
package external

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/mdstyle/internal/logging"
	"github.com/yaklabco/mdstyle/pkg/config"
)

// waitDelay bounds how long output pipes are drained after the process is
// killed.
const waitDelay = time.Second

// ErrNotInstalled indicates the linter executable could not be started.
var ErrNotInstalled = errors.New("external linter is not installed")

// ToolError reports a run that wrote to standard error. Nothing is parsed
// from such a run.
type ToolError struct {
	Executable string
	Stderr     string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Executable, e.Stderr)
}

// Diagnostic is one parsed report line.
type Diagnostic struct {
	Line    int
	RuleID  string
	Message string
}

// Result is the parsed standard output of one run.
type Result struct {
	Diagnostics []Diagnostic

	// Raw holds non-empty output lines that are not diagnostics, such as
	// trailing help text.
	Raw []string
}

// Lines renders the diagnostics as report lines, in output order.
func (r *Result) Lines() []string {
	lines := make([]string, len(r.Diagnostics))
	for i, diag := range r.Diagnostics {
		lines[i] = fmt.Sprintf("line %d: %s - %s", diag.Line, diag.RuleID, diag.Message)
	}
	return lines
}

// Tool describes how to invoke the linter.
type Tool struct {
	// Executable is the program to run. Empty means DefaultExecutable.
	Executable string

	// Args are passed after the executable.
	Args []string

	// Timeout bounds the run. Zero means no limit beyond ctx.
	Timeout time.Duration
}

// DefaultExecutable is the linter used when none is configured.
func DefaultExecutable() string {
	if runtime.GOOS == "windows" {
		return "mdl.bat"
	}
	return "mdl"
}

// FromConfig builds a Tool from the external section of a config.
func FromConfig(cfg *config.Config) *Tool {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Tool{
		Executable: cfg.External.Executable,
		Args:       cfg.External.Arguments,
		Timeout:    cfg.ExternalTimeout(),
	}
}

func (t *Tool) executable() string {
	if t.Executable == "" {
		return DefaultExecutable()
	}
	return t.Executable
}

// Run pipes text to the linter's standard input and parses its standard
// output. The process is killed when ctx is done or the timeout expires.
func (t *Tool) Run(ctx context.Context, text string) (*Result, error) {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	exe := t.executable()
	logger := logging.FromContext(ctx)
	logger.Debug("running external linter", logging.FieldExecutable, exe, logging.FieldArgs, t.Args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, exe, t.Args...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	hideWindow(cmd)

	runErr := cmd.Run()

	if runErr != nil && isNotFound(runErr) {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotInstalled, exe, runErr)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%s: %w", exe, ctxErr)
	}
	if msg := clean(stderr.String()); msg != "" {
		return nil, &ToolError{Executable: exe, Stderr: msg}
	}

	// mdl exits non-zero when it reports violations, so an exit status
	// alone is not a failure.
	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return nil, fmt.Errorf("run %s: %w", exe, runErr)
	}

	return Parse(stdout.String()), nil
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)
}

var diagnosticLine = regexp.MustCompile(`^(\d+): (MD\d+) (.*)$`)

// clean trims output and removes carriage returns and "(stdin):" prefixes.
func clean(out string) string {
	out = strings.ReplaceAll(out, "\r", "")
	out = strings.ReplaceAll(out, "(stdin):", "")
	return strings.TrimSpace(out)
}

// Parse extracts diagnostics from the linter's standard output.
func Parse(stdout string) *Result {
	result := &Result{}

	for _, line := range strings.Split(clean(stdout), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := diagnosticLine.FindStringSubmatch(line)
		if m == nil {
			result.Raw = append(result.Raw, line)
			continue
		}

		n, err := strconv.Atoi(m[1])
		if err != nil {
			result.Raw = append(result.Raw, line)
			continue
		}
		result.Diagnostics = append(result.Diagnostics, Diagnostic{Line: n, RuleID: m[2], Message: m[3]})
	}

	return result
}
