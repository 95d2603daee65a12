package lint

import (
	"strings"

	"github.com/yaklabco/rbfix/pkg/config"
)

// BaseRule provides a default implementation of the Rule interface.
// Embed it in rule implementations and override methods as needed.
type BaseRule struct {
	id      string
	name    string
	desc    string
	tags    []string
	fixable bool
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, tags []string, fixable bool) BaseRule {
	return BaseRule{
		id:      id,
		name:    name,
		desc:    desc,
		tags:    tags,
		fixable: fixable,
	}
}

// ID returns the department-qualified identifier.
func (r *BaseRule) ID() string { return r.id }

// Name returns the short name.
func (r *BaseRule) Name() string { return r.name }

// Description returns the rule description.
func (r *BaseRule) Description() string { return r.desc }

// DefaultEnabled returns true. Override to change.
func (r *BaseRule) DefaultEnabled() bool { return true }

// DefaultSeverity returns SeverityWarning. Override to change.
func (r *BaseRule) DefaultSeverity() config.Severity { return config.SeverityWarning }

// Tags returns categorization tags.
func (r *BaseRule) Tags() []string { return r.tags }

// CanFix reports whether the rule corrects its offenses.
func (r *BaseRule) CanFix() bool { return r.fixable }

// Department returns the part of the ID before the first slash.
func (r *BaseRule) Department() string { return Department(r.id) }

// Department returns the department of a rule ID such as "Layout" for
// "Layout/LineLength", or "" when the ID has none.
func Department(id string) string {
	dept, _, found := strings.Cut(id, "/")
	if !found {
		return ""
	}
	return dept
}

// Apply must be overridden by concrete rules. It returns no diagnostics.
func (r *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	return nil, nil
}
