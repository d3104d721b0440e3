package runner

import "github.com/yaklabco/mdstyle/pkg/lint"

// FileOutcome is the result of linting one discovered file.
type FileOutcome struct {
	Path string

	// Result is nil when Error is set.
	Result *lint.PipelineResult

	Error error
}

// Stats are aggregate counts for a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// FilesStale counts files that changed on disk while they were linted.
	FilesStale int

	FilesWithIssues  int
	DiagnosticsTotal int

	// DiagnosticsByRule maps rule IDs to diagnostic counts.
	DiagnosticsByRule map[string]int
}

// Result is the outcome of a run. Files are in discovery order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasIssues reports whether any file produced diagnostics.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// HasErrors reports whether any file could not be linted.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// NewResult aggregates outcomes that were produced outside Run.
func NewResult(outcomes ...FileOutcome) *Result {
	result := newResult(len(outcomes))
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

func newResult(files int) *Result {
	return &Result{
		Files: make([]FileOutcome, 0, files),
		Stats: Stats{
			FilesDiscovered:   files,
			DiagnosticsByRule: make(map[string]int),
		},
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Result.Stale {
		r.Stats.FilesStale++
	}
	if outcome.Result.Result == nil {
		return
	}

	diags := outcome.Result.Diagnostics
	r.Stats.DiagnosticsTotal += len(diags)
	if len(diags) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, diag := range diags {
		r.Stats.DiagnosticsByRule[diag.RuleID]++
	}
}
