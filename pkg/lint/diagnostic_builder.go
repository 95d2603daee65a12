package lint

import (
	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/fix"
	"github.com/yaklabco/rbfix/pkg/srcrange"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic for the given rule at rng.
func NewDiagnostic(ruleID string, rng srcrange.Range, message string) *DiagnosticBuilder {
	diag := Diagnostic{
		RuleID:  ruleID,
		Message: message,
	}
	if !rng.IsZero() {
		diag.FilePath = rng.Buffer().Name()
		diag.StartOffset = rng.Begin()
		diag.EndOffset = rng.End()
		diag.StartLine = rng.FirstLine()
		diag.StartColumn = rng.Column() + 1
		diag.EndLine = rng.LastLine()
		diag.EndColumn = rng.LastColumn() + 1
	}
	return &DiagnosticBuilder{diag: diag}
}

// NewDiagnosticWithRegistry is NewDiagnostic plus a rule name lookup.
func NewDiagnosticWithRegistry(
	ruleID string,
	rng srcrange.Range,
	message string,
	reg *Registry,
) *DiagnosticBuilder {
	b := NewDiagnostic(ruleID, rng, message)
	if reg != nil {
		if rule, ok := reg.GetByID(ruleID); ok {
			b.diag.RuleName = rule.Name()
		}
	}
	return b
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithFix adds the edits accumulated in an EditBuilder.
func (b *DiagnosticBuilder) WithFix(builder *fix.EditBuilder) *DiagnosticBuilder {
	if builder != nil {
		b.diag.FixEdits = append(b.diag.FixEdits, builder.Edits...)
	}
	return b
}

// WithEdits lowers edits and adds them as fix edits.
func (b *DiagnosticBuilder) WithEdits(edits ...fix.Edit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, fix.Lower(edits)...)
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
