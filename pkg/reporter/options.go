package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mdstyle/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output: "auto" (default), "always", "never".
	Color string

	// ShowContext prints the offending source line under each diagnostic.
	ShowContext bool

	// ShowSummary prints a per-rule summary block instead of the one-line
	// summary.
	ShowSummary bool

	// Compact disables JSON indentation.
	Compact bool

	// RuleFormat controls how rule identifiers appear in text output.
	RuleFormat config.RuleFormat

	// WorkingDir makes reported paths relative. Empty keeps them as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:     os.Stdout,
		Format:     config.FormatText,
		Color:      "auto",
		RuleFormat: config.RuleFormatID,
	}
}
