// Package analysis aggregates runner results into the report consumed by
// the JSON, SARIF, and offense-count renderers.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"

	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/lint"
	"github.com/yaklabco/rbfix/pkg/runner"
)

// RelativePath converts path to one relative to workDir. If workDir is
// empty or the conversion fails, path is returned unchanged.
func RelativePath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// Analyze transforms a runner.Result into a Report in a single pass.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{Files: []FileReport{}}
	if result == nil {
		return report
	}

	stats := result.Stats
	report.Totals = Totals{
		TargetFiles:    stats.FilesDiscovered,
		InspectedFiles: stats.FilesProcessed,
		Corrected:      stats.DiagnosticsCorrected,
		TodosAdded:     stats.TodosAdded,
		Suppressed:     stats.DiagnosticsSuppressed,
	}

	counts := make(map[string]*RuleCount)

	for _, file := range result.Files {
		fr := FileReport{
			Path:     RelativePath(file.Path, opts.WorkingDir),
			Offenses: []Offense{},
		}
		if file.Error != nil {
			fr.Error = file.Error.Error()
		}

		if file.Result != nil {
			fr.Modified = file.Result.Written
		}
		if file.Result != nil && file.Result.FileResult != nil {
			for i := range file.Result.Diagnostics {
				diag := &file.Result.Diagnostics[i]
				offense := newOffense(diag)
				fr.Offenses = append(fr.Offenses, offense)
				report.Totals.add(offense)

				rc, ok := counts[diag.RuleID]
				if !ok {
					rc = &RuleCount{RuleID: diag.RuleID, RuleName: diag.RuleName}
					counts[diag.RuleID] = rc
				}
				rc.Count++
				if offense.Correctable {
					rc.Correctable++
				}
			}
		}

		if len(fr.Offenses) > 0 {
			report.Totals.FilesWithOffenses++
		}
		report.Files = append(report.Files, fr)
	}

	for _, rc := range counts {
		report.ByRule = append(report.ByRule, *rc)
	}
	sortRuleCounts(report.ByRule, opts.SortBy)

	return report
}

func newOffense(diag *lint.Diagnostic) Offense {
	severity := string(diag.Severity)
	if severity == "" {
		severity = string(config.SeverityWarning)
	}

	loc := Location{
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		LastLine:    max(diag.EndLine, diag.StartLine),
		LastColumn:  max(diag.EndColumn-1, 1),
		Length:      diag.EndOffset - diag.StartOffset,
	}
	if loc.LastLine == loc.StartLine {
		loc.LastColumn = max(loc.LastColumn, loc.StartColumn)
	}

	return Offense{
		Severity:    severity,
		Message:     diag.Message,
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Correctable: diag.HasFix() && !diag.Todo,
		Suggestion:  diag.Suggestion,
		Location:    loc,
	}
}

func (t *Totals) add(o Offense) {
	t.Offenses++
	if o.Correctable {
		t.Correctable++
	}
	switch config.Severity(o.Severity) {
	case config.SeverityError:
		t.Errors++
	case config.SeverityInfo:
		t.Infos++
	default:
		t.Warnings++
	}
}

func sortRuleCounts(counts []RuleCount, sortBy SortField) {
	slices.SortFunc(counts, func(left, right RuleCount) int {
		if sortBy != SortByAlpha {
			if c := cmp.Compare(right.Count, left.Count); c != 0 {
				return c
			}
		}
		return cmp.Compare(left.RuleID, right.RuleID)
	})
}
