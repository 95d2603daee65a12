package analysis_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rbfix/pkg/analysis"
	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/fix"
	"github.com/yaklabco/rbfix/pkg/lint"
	"github.com/yaklabco/rbfix/pkg/runner"
)

func diag(ruleID string, severity config.Severity, line int, fixable bool) lint.Diagnostic {
	d := lint.Diagnostic{
		RuleID:      ruleID,
		Message:     "message for " + ruleID,
		Severity:    severity,
		StartLine:   line,
		StartColumn: 3,
		EndLine:     line,
		EndColumn:   8,
		StartOffset: 10,
		EndOffset:   15,
	}
	if fixable {
		d.FixEdits = []fix.TextEdit{{StartOffset: 10, EndOffset: 15, NewText: "x"}}
	}
	return d
}

func outcome(path string, diags ...lint.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &lint.PipelineResult{
			Path:       path,
			FileResult: &lint.FileResult{Diagnostics: diags},
		},
	}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			outcome("/w/a.rb",
				diag("Layout/LineLength", config.SeverityWarning, 1, false),
				diag("Layout/LineLength", config.SeverityWarning, 4, false),
				diag("InternalAffairs/NodePatternMetatypes", config.SeverityError, 2, true),
			),
			outcome("/w/b.rb"),
			outcome("/w/c.rb", diag("Layout/LineLength", config.SeverityInfo, 9, false)),
			{Path: "/w/d.rb", Error: errors.New("permission denied")},
		},
		Stats: runner.Stats{
			FilesDiscovered:       4,
			FilesProcessed:        3,
			DiagnosticsCorrected:  5,
			TodosAdded:            2,
			DiagnosticsSuppressed: 1,
		},
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.Options{WorkingDir: "/w", SortBy: analysis.SortByCount})

	require.Len(t, report.Files, 4)
	assert.Equal(t, "a.rb", report.Files[0].Path)
	assert.Len(t, report.Files[0].Offenses, 3)
	assert.NotNil(t, report.Files[1].Offenses)
	assert.Empty(t, report.Files[1].Offenses)
	assert.Equal(t, "permission denied", report.Files[3].Error)

	assert.Equal(t, analysis.Totals{
		Offenses:          4,
		TargetFiles:       4,
		InspectedFiles:    3,
		FilesWithOffenses: 2,
		Correctable:       1,
		Corrected:         5,
		TodosAdded:        2,
		Suppressed:        1,
		Errors:            1,
		Warnings:          2,
		Infos:             1,
	}, report.Totals)
	assert.True(t, report.Totals.HasOffenses())
	assert.True(t, report.Totals.HasErrors())

	require.Len(t, report.ByRule, 2)
	assert.Equal(t, analysis.RuleCount{RuleID: "Layout/LineLength", Count: 3}, report.ByRule[0])
	assert.Equal(t, analysis.RuleCount{RuleID: "InternalAffairs/NodePatternMetatypes", Count: 1, Correctable: 1},
		report.ByRule[1])
}

func TestAnalyze_SortAlpha(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.Options{SortBy: analysis.SortByAlpha})

	require.Len(t, report.ByRule, 2)
	assert.Equal(t, "InternalAffairs/NodePatternMetatypes", report.ByRule[0].RuleID)
	assert.Equal(t, "/w/a.rb", report.Files[0].Path, "paths stay absolute without a working dir")
}

func TestAnalyze_Location(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		diag lint.Diagnostic
		want analysis.Location
	}{
		{
			name: "single line",
			diag: lint.Diagnostic{StartLine: 2, StartColumn: 5, EndLine: 2, EndColumn: 9, StartOffset: 20, EndOffset: 24},
			want: analysis.Location{StartLine: 2, StartColumn: 5, LastLine: 2, LastColumn: 8, Length: 4},
		},
		{
			name: "empty range",
			diag: lint.Diagnostic{StartLine: 2, StartColumn: 5, EndLine: 2, EndColumn: 5, StartOffset: 20, EndOffset: 20},
			want: analysis.Location{StartLine: 2, StartColumn: 5, LastLine: 2, LastColumn: 5},
		},
		{
			name: "multi line",
			diag: lint.Diagnostic{StartLine: 2, StartColumn: 5, EndLine: 4, EndColumn: 3, StartOffset: 20, EndOffset: 40},
			want: analysis.Location{StartLine: 2, StartColumn: 5, LastLine: 4, LastColumn: 2, Length: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := &runner.Result{Files: []runner.FileOutcome{outcome("a.rb", tt.diag)}}
			report := analysis.Analyze(result, analysis.DefaultOptions())

			require.Len(t, report.Files[0].Offenses, 1)
			offense := report.Files[0].Offenses[0]
			assert.Equal(t, tt.want, offense.Location)
			assert.Equal(t, "warning", offense.Severity, "empty severity defaults to warning")
		})
	}
}

func TestAnalyze_TodoIsNotCorrectable(t *testing.T) {
	t.Parallel()

	d := diag("Layout/LineLength", config.SeverityWarning, 1, true)
	d.Todo = true

	report := analysis.Analyze(&runner.Result{Files: []runner.FileOutcome{outcome("a.rb", d)}}, analysis.DefaultOptions())
	assert.False(t, report.Files[0].Offenses[0].Correctable)
	assert.Equal(t, 0, report.Totals.Correctable)
}

func TestAnalyze_Nil(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(nil, analysis.DefaultOptions())
	assert.NotNil(t, report.Files)
	assert.False(t, report.Totals.HasOffenses())
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, analysis.SortByCount.IsValid())
	assert.True(t, analysis.SortByAlpha.IsValid())
	assert.False(t, analysis.SortField("severity").IsValid())
}
