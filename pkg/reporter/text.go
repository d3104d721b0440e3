package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/mdstyle/internal/ui/pretty"
	"github.com/yaklabco/mdstyle/pkg/lint"
	"github.com/yaklabco/mdstyle/pkg/runner"
)

// TextReporter formats results as styled terminal output, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			fmt.Fprintln(r.bw, r.styles.FormatFileError(path, file.Error))
			continue
		}
		if file.Result == nil || file.Result.Result == nil {
			continue
		}

		if file.Result.Stale {
			fmt.Fprintln(r.bw, r.styles.FormatStale(path))
		}

		diags := file.Result.Diagnostics
		if len(diags) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diags)))
		if err := Present(r.fileSink(file.Result.Result), diags, r.formatLine); err != nil {
			return total, err
		}
		fmt.Fprintln(r.bw)
		total += len(diags)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	} else {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// ReportDocument writes the result of a single pass the way an editor
// panel would: the diagnostic lines followed by the status message.
func (r *TextReporter) ReportDocument(result *lint.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	sink := &documentSink{reporter: r, result: result, status: r.bw}
	return Present(sink, result.Diagnostics, r.formatLine)
}

func (r *TextReporter) formatLine(diag *lint.Diagnostic) string {
	return r.styles.FormatDiagnostic(diag, r.opts.RuleFormat)
}

func (r *TextReporter) fileSink(result *lint.Result) Sink {
	return &documentSink{reporter: r, result: result, indent: "  "}
}

// documentSink writes lines indented under a file header, optionally
// followed by their source context.
type documentSink struct {
	reporter *TextReporter
	result   *lint.Result
	status   io.Writer
	indent   string
}

func (s *documentSink) Show(lines []string) error {
	r := s.reporter
	for i, line := range lines {
		if _, err := fmt.Fprintln(r.bw, s.indent+line); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if r.opts.ShowContext && s.result != nil && s.result.Document != nil {
			diag := s.result.Diagnostics[i]
			source := s.result.Document.Line(diag.Line - 1)
			fmt.Fprint(r.bw, r.styles.FormatSourceContext(source, diag.Column))
		}
	}
	return nil
}

func (s *documentSink) Clear() error {
	return nil
}

func (s *documentSink) Status(msg string) {
	if s.status == nil {
		return
	}
	issues := 0
	if s.result != nil {
		issues = len(s.result.Diagnostics)
	}
	fmt.Fprintln(s.status, s.reporter.styles.FormatStatus(msg, issues))
}
