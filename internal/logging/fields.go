package logging

// Structured field keys shared by every package.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldReason     = "reason"

	FieldConfig = "config"
	FieldFix    = "fix"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"

	// Run totals, logged once per run and per fix loop.
	FieldFiles            = "files"
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldFilesModified    = "files_modified"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldPasses           = "passes"
	FieldSkipped          = "skipped"

	FieldRule        = "rule"
	FieldLine        = "line"
	FieldSeverity    = "severity"
	FieldCorrectable = "correctable"
	FieldDescription = "description"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
