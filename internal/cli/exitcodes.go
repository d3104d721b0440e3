package cli

import (
	"errors"

	"github.com/yaklabco/mdstyle/internal/configloader"
	"github.com/yaklabco/mdstyle/pkg/external"
	"github.com/yaklabco/mdstyle/pkg/lint"
	"github.com/yaklabco/mdstyle/pkg/runner"
)

// Exit codes for mdstyle.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found issues.
	ExitLintErrors = 1

	// ExitFileErrors indicates some files could not be linted.
	ExitFileErrors = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitUnavailable indicates the external linter is not installed.
	ExitUnavailable = 69

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrLintIssuesFound is returned when lint issues are found.
var ErrLintIssuesFound = errors.New("lint issues found")

// ErrFilesFailed is returned when some files could not be linted.
var ErrFilesFailed = errors.New("some files could not be linted")

// ConfigLoadError marks a failure to resolve configuration.
type ConfigLoadError struct {
	Err error
}

func (e *ConfigLoadError) Error() string {
	return "load configuration: " + e.Err.Error()
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// ExitCodeFromResult determines the exit code of a lint run. Issues take
// precedence over file errors.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result.HasIssues():
		return ExitLintErrors
	case result.HasErrors():
		return ExitFileErrors
	default:
		return ExitSuccess
	}
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	var configErr *ConfigLoadError
	var ruleErr *lint.RuleError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLintIssuesFound):
		return ExitLintErrors
	case errors.Is(err, ErrFilesFailed):
		return ExitFileErrors
	case errors.As(err, &configErr), errors.Is(err, lint.ErrUnknownRule):
		return ExitConfigError
	case errors.Is(err, external.ErrNotInstalled):
		return ExitUnavailable
	case errors.As(err, &ruleErr):
		return ExitInternalError
	case errors.Is(err, lint.ErrFileNotFound), errors.Is(err, lint.ErrPermissionDenied):
		return ExitIOError
	case errors.As(err, new(*configloader.ValidationError)):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}
