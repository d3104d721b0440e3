package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdstyle/pkg/runner"
)

const summaryDividerWidth = 40

// FormatStatus renders the status message for a diagnostic count.
func (s *Styles) FormatStatus(msg string, issues int) string {
	if issues == 0 {
		return s.Success.Render(msg)
	}
	return s.Failure.Render(msg)
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues in 3 files (5 checked)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files")))

	var line string
	if stats.DiagnosticsTotal == 0 {
		line = s.Success.Render("No issues found") + checked
	} else {
		line = s.Failure.Render(fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))) +
			fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, "file", "files")) + checked
	}

	if stats.FilesErrored > 0 {
		line += ", " + s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored))
	}
	if stats.FilesStale > 0 {
		line += ", " + s.Warning.Render(fmt.Sprintf("%d stale", stats.FilesStale))
	}

	return line + "\n"
}

// FormatSummary formats run statistics as a block with a per-rule breakdown.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	builder.WriteString("  Files checked:     " + s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " + s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " + s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	builder.WriteString("  Total issues:      " + s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")

	rules := make([]string, 0, len(stats.DiagnosticsByRule))
	for id := range stats.DiagnosticsByRule {
		rules = append(rules, id)
	}
	slices.Sort(rules)
	for _, id := range rules {
		builder.WriteString(fmt.Sprintf("    %-16s%s\n", id+":", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsByRule[id]))))
	}

	builder.WriteString("\n")
	if stats.DiagnosticsTotal > 0 {
		builder.WriteString(s.Failure.Render("Lint failed"))
	} else {
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
