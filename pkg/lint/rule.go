// Package lint provides the rule engine, diagnostics, autocorrect policy, and
// registry for rbfix.
package lint

import (
	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/fix"
	"github.com/yaklabco/rbfix/pkg/srcrange"
)

// Diagnostic represents a single offense found in a file.
type Diagnostic struct {
	// RuleID is the department-qualified rule identifier
	// (e.g., "Layout/LineLength").
	RuleID string

	// RuleName is the short human-readable name of the rule (e.g., "line-length").
	RuleName string

	// Message is the human-readable description of the offense.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the offense.
	FilePath string

	// StartOffset and EndOffset are the byte offsets of the offense range.
	StartOffset int
	EndOffset   int

	// StartLine and StartColumn are 1-based.
	StartLine   int
	StartColumn int

	// EndLine and EndColumn are 1-based; EndColumn is exclusive.
	EndLine   int
	EndColumn int

	// Suggestion is an optional human-readable fix suggestion.
	Suggestion string

	// FixEdits contains the text edits that correct the offense (may be empty).
	FixEdits []fix.TextEdit

	// Correctable is set by the engine when the fix edits are scheduled for
	// application.
	Correctable bool

	// Todo is set when the engine silenced the offense with a todo directive
	// instead of correcting it. FixEdits then holds the directive edits.
	Todo bool
}

// HasFix returns true if this diagnostic has associated fix edits.
func (d *Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

// Range returns the offense range in buf.
func (d *Diagnostic) Range(buf *srcrange.Buffer) srcrange.Range {
	return srcrange.New(buf, d.StartOffset, d.EndOffset)
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the department-qualified identifier (e.g., "Layout/LineLength").
	ID() string

	// Name returns the short human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule.
	Tags() []string

	// CanFix returns whether this rule can correct its offenses.
	CanFix() bool

	// Apply executes the rule against the given context and returns diagnostics.
	//
	// Rules must:
	//   - Return diagnostics for each offense found.
	//   - Attach fix edits only if CanFix() is true.
	//   - Respect context cancellation.
	//   - Return error only for internal failures, not offenses.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}
