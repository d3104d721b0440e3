package reporter

import (
	"fmt"
	"io"

	"github.com/yaklabco/mdstyle/pkg/lint"
)

// Status messages shown after a pass.
const (
	StatusClean = "no errors found"
	statusCount = "%d error(s) found"
)

// Sink receives the outcome of one pass in presentation order.
type Sink interface {
	// Show replaces any previous report with lines.
	Show(lines []string) error

	// Clear removes any previous report.
	Clear() error

	// Status shows a transient message.
	Status(msg string)
}

// LineFormatter renders one diagnostic as a report line.
type LineFormatter func(diag *lint.Diagnostic) string

// FormatLine renders diag as "line <N>: <ID> - <description>, <message>".
func FormatLine(diag *lint.Diagnostic) string {
	return fmt.Sprintf("line %d: %s - %s, %s", diag.Line, diag.RuleID, diag.Description, diag.Message)
}

// StatusMessage returns the status for a pass with n diagnostics.
func StatusMessage(n int) string {
	if n == 0 {
		return StatusClean
	}
	return fmt.Sprintf(statusCount, n)
}

// Present hands sorted diagnostics to sink. No diagnostics clear the sink;
// otherwise every diagnostic becomes one line. The status is set in both
// cases. A nil format uses FormatLine.
func Present(sink Sink, diags []lint.Diagnostic, format LineFormatter) error {
	defer sink.Status(StatusMessage(len(diags)))

	if len(diags) == 0 {
		return sink.Clear()
	}

	if format == nil {
		format = FormatLine
	}
	lines := make([]string, len(diags))
	for i := range diags {
		lines[i] = format(&diags[i])
	}
	return sink.Show(lines)
}

// PresentLines is Present for lines that are already formatted, such as the
// output of the external linter.
func PresentLines(sink Sink, lines []string) error {
	defer sink.Status(StatusMessage(len(lines)))

	if len(lines) == 0 {
		return sink.Clear()
	}
	return sink.Show(lines)
}

// WriterSink writes report lines to Out and status messages to StatusOut.
// Clear writes nothing. A nil StatusOut drops status messages.
type WriterSink struct {
	Out       io.Writer
	StatusOut io.Writer
}

// Show implements Sink.
func (s *WriterSink) Show(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(s.Out, line); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

// Clear implements Sink.
func (s *WriterSink) Clear() error {
	return nil
}

// Status implements Sink.
func (s *WriterSink) Status(msg string) {
	if s.StatusOut != nil {
		fmt.Fprintln(s.StatusOut, msg)
	}
}
