package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdstyle/pkg/config"
	"github.com/yaklabco/mdstyle/pkg/lint"
)

// FormatDiagnostic renders one diagnostic as
// "line <N>: <rule> - <description>, <message>".
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, ruleFormat config.RuleFormat) string {
	rule := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)

	return fmt.Sprintf("%s %s - %s, %s",
		s.Location.Render(fmt.Sprintf("line %d:", diag.Line)),
		s.RuleID.Render(rule),
		s.Description.Render(diag.Description),
		s.Message.Render(diag.Message),
	)
}

// FormatSourceContext formats the source line with a caret under column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "    "

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		builder.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	if path == "" {
		path = "<stdin>"
	}
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, plural(issueCount, "issue", "issues")))
	}
	return header
}

// FormatStale marks a file whose diagnostics may no longer apply.
func (s *Styles) FormatStale(path string) string {
	return s.Warning.Render("warning:") + " " + s.FilePath.Render(path) + " changed while it was linted; results may be out of date"
}

// FormatFileError renders a file that could not be linted.
func (s *Styles) FormatFileError(path string, err error) string {
	return s.FilePath.Render(path) + ": " + s.Error.Render(fmt.Sprintf("error: %v", err))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
