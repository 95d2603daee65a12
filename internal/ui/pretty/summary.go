package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/runner"
)

// Plural returns "1 offense" or "n offenses".
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// FormatSummaryOneLine formats run statistics as a single line, for example
// "3 files inspected, 4 offenses detected (1 error, 3 warnings), 2 corrected, 1 correctable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{Plural(stats.FilesProcessed, "file", "files") + " inspected"}

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("no offenses detected"))
	} else {
		detected := Plural(stats.DiagnosticsTotal, "offense", "offenses") + " detected"
		if breakdown := s.severityBreakdown(stats.DiagnosticsBySeverity); breakdown != "" {
			detected += " (" + breakdown + ")"
		}
		parts = append(parts, detected)
	}

	if stats.DiagnosticsCorrected > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d corrected", stats.DiagnosticsCorrected)))
	}
	if stats.TodosAdded > 0 {
		parts = append(parts, s.Success.Render(Plural(stats.TodosAdded, "todo", "todos")+" added"))
	}
	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, s.Correctable.Render(fmt.Sprintf("%d correctable", stats.DiagnosticsFixable)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(Plural(stats.FilesErrored, "file", "files")+" failed"))
	}

	return strings.Join(parts, ", ") + "\n"
}

func (s *Styles) severityBreakdown(bySeverity map[string]int) string {
	var parts []string
	if n := bySeverity[string(config.SeverityError)]; n > 0 {
		parts = append(parts, s.Error.Render(Plural(n, "error", "errors")))
	}
	if n := bySeverity[string(config.SeverityWarning)]; n > 0 {
		parts = append(parts, s.Warning.Render(Plural(n, "warning", "warnings")))
	}
	if n := bySeverity[string(config.SeverityInfo)]; n > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}
	return strings.Join(parts, ", ")
}
