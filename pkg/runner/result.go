package runner

import (
	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/lint"
)

// FileOutcome wraps PipelineResult with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// May be nil if the file encountered an error during processing.
	Result *lint.PipelineResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesSkipped counts files left untouched, for example after a
	// concurrent modification or a fix that broke the syntax.
	FilesSkipped int

	FilesErrored    int
	FilesWithIssues int
	FilesModified   int

	// DiagnosticsTotal counts offenses remaining after fixing.
	DiagnosticsTotal int

	// DiagnosticsFixable counts remaining offenses that carry fix edits.
	DiagnosticsFixable int

	DiagnosticsBySeverity map[string]int

	// DiagnosticsCorrected counts offenses corrected by rule fixes. In
	// dry-run mode it counts the corrections that would have been made.
	DiagnosticsCorrected int

	// TodosAdded counts offenses silenced with rubocop:todo directives.
	TodosAdded int

	// DiagnosticsSuppressed counts offenses already covered by a directive
	// in the source.
	DiagnosticsSuppressed int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any diagnostics with error severity occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	pr := outcome.Result
	if pr == nil {
		return
	}

	r.Stats.FilesProcessed++
	if pr.Skipped {
		r.Stats.FilesSkipped++
	}
	if pr.Written {
		r.Stats.FilesModified++
	}
	if pr.Modified && !pr.Skipped {
		r.Stats.DiagnosticsCorrected += pr.Corrected
		r.Stats.TodosAdded += pr.TodosAdded
	}

	if pr.FileResult == nil {
		return
	}

	r.Stats.DiagnosticsSuppressed += pr.Suppressed
	r.Stats.DiagnosticsTotal += len(pr.Diagnostics)
	r.Stats.DiagnosticsFixable += pr.FixableCount()
	if pr.HasIssues() {
		r.Stats.FilesWithIssues++
	}

	for _, diag := range pr.Diagnostics {
		severity := string(diag.Severity)
		if severity == "" {
			severity = string(config.SeverityWarning)
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
