package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldConfigFile = "config_file"
	FieldSource     = "source"
	FieldJobs       = "jobs"
	FieldDisabled   = "disabled"

	// Statistics fields.
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldMatches          = "matches"
	FieldSkipped          = "skipped"
	FieldFindings         = "findings"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldRule        = "rule"
	FieldName        = "name"
	FieldDescription = "description"

	// External tool fields.
	FieldExecutable = "executable"
	FieldArgs       = "args"
)
