package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/yaklabco/rbfix/pkg/analysis"
	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/lint"
)

// SARIF tool information.
const (
	sarifToolName = "rbfix"
	sarifToolURI  = "https://github.com/yaklabco/rbfix"
)

// SARIF severity levels.
const (
	sarifLevelError   = "error"
	sarifLevelWarning = "warning"
	sarifLevelNote    = "note"
)

// SARIFRenderer writes an analysis.Report as SARIF 2.1.0 for code scanning
// integrations.
type SARIFRenderer struct {
	opts     Options
	registry *lint.Registry
}

// NewSARIFRenderer creates a new SARIF renderer. Rule descriptions are
// taken from the default registry.
func NewSARIFRenderer(opts Options) *SARIFRenderer {
	return &SARIFRenderer{opts: opts, registry: lint.DefaultRegistry}
}

// Render implements Renderer.
func (r *SARIFRenderer) Render(_ context.Context, report *analysis.Report) error {
	doc := sarif.NewReport()

	run := sarif.NewRunWithInformationURI(sarifToolName, sarifToolURI)
	if r.opts.ToolVersion != "" {
		run.Tool.Driver.WithVersion(r.opts.ToolVersion)
	}

	// ByRule is sorted by count; rule definitions are listed by ID.
	ruleIDs := make([]string, 0, len(report.ByRule))
	for _, count := range report.ByRule {
		ruleIDs = append(ruleIDs, count.RuleID)
	}
	slices.Sort(ruleIDs)
	for _, id := range ruleIDs {
		rule := run.AddRule(id)
		if registered, ok := r.registry.GetByID(id); ok && registered.Description() != "" {
			rule.WithShortDescription(sarif.NewMultiformatMessageString().WithText(registered.Description()))
		}
	}

	for _, file := range report.Files {
		if len(file.Offenses) == 0 {
			continue
		}
		uri := filepath.ToSlash(file.Path)
		run.AddDistinctArtifact(uri)

		for _, offense := range file.Offenses {
			region := sarif.NewRegion().
				WithStartLine(offense.Location.StartLine).
				WithStartColumn(offense.Location.StartColumn).
				WithEndLine(offense.Location.LastLine).
				WithEndColumn(offense.Location.LastColumn + 1)

			location := sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewSimpleArtifactLocation(uri)).
				WithRegion(region)

			result := sarif.NewRuleResult(offense.RuleID).
				WithMessage(sarif.NewTextMessage(offense.Message)).
				WithLevel(severityToSARIFLevel(offense.Severity)).
				WithLocations([]*sarif.Location{sarif.NewLocationWithPhysicalLocation(location)})

			run.AddResult(result)
		}
	}

	doc.AddRun(run)

	if err := doc.PrettyWrite(r.opts.Writer); err != nil {
		return fmt.Errorf("write SARIF: %w", err)
	}
	return nil
}

func severityToSARIFLevel(severity string) string {
	switch config.Severity(severity) {
	case config.SeverityError:
		return sarifLevelError
	case config.SeverityInfo:
		return sarifLevelNote
	default:
		return sarifLevelWarning
	}
}
