package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdstyle/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Stale       bool             `json:"stale,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Description string `json:"description"`
	Message     string `json:"message"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Offset      int    `json:"offset"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	FilesStale      int            `json:"filesStale"`
	TotalIssues     int            `json:"totalIssues"`
	ByRule          map[string]int `json:"byRule"`
	Status          string         `json:"status"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{ByRule: make(map[string]int)},
	}

	if result != nil {
		for _, file := range result.Files {
			output.Files = append(output.Files, r.buildFile(file, &output.Summary))
		}
	}

	output.Summary.Status = StatusMessage(output.Summary.TotalIssues)
	return output
}

func (r *JSONReporter) buildFile(file runner.FileOutcome, summary *JSONSummary) JSONFileResult {
	out := JSONFileResult{
		Path:        displayPath(file.Path, r.opts.WorkingDir),
		Diagnostics: make([]JSONDiagnostic, 0),
	}
	summary.FilesChecked++

	if file.Error != nil {
		out.Error = file.Error.Error()
		summary.FilesErrored++
		return out
	}
	if file.Result == nil || file.Result.Result == nil {
		return out
	}

	out.Stale = file.Result.Stale
	if out.Stale {
		summary.FilesStale++
	}

	for _, diag := range file.Result.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, JSONDiagnostic{
			RuleID:      diag.RuleID,
			RuleName:    diag.RuleName,
			Description: diag.Description,
			Message:     diag.Message,
			Line:        diag.Line,
			Column:      diag.Column,
			Offset:      diag.Offset,
		})
		summary.ByRule[diag.RuleID]++
	}
	summary.TotalIssues += len(out.Diagnostics)
	if len(out.Diagnostics) > 0 {
		summary.FilesWithIssues++
	}

	return out
}
