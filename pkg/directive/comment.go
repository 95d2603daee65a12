// Package directive recognizes rubocop directive comments and tracks which
// lines of a file they suppress.
//
// Supported forms:
//   - # rubocop:todo Dept/Name, Other/Name
//   - # rubocop:disable Dept/Name
//   - # rubocop:enable Dept/Name
//   - # rubocop:disable all
//
// A department name such as "Lint" stands for every rule in that department.
package directive

import (
	"regexp"
	"strings"

	"github.com/yaklabco/rbfix/pkg/srcrange"
)

// Kind classifies a comment.
type Kind uint8

const (
	// KindNone is an ordinary comment.
	KindNone Kind = iota
	// KindTodo is a rubocop:todo directive.
	KindTodo
	// KindDisable is a rubocop:disable directive.
	KindDisable
	// KindEnable is a rubocop:enable directive.
	KindEnable
)

// String returns the directive keyword.
func (k Kind) String() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDisable:
		return "disable"
	case KindEnable:
		return "enable"
	default:
		return "none"
	}
}

// AllRules is the name that addresses every rule.
const AllRules = "all"

var (
	// rubocop:<mode> followed by "all" or a comma separated list of names.
	directivePattern = regexp.MustCompile(
		`#\s*rubocop\s*:\s*(disable|enable|todo)\b\s*` +
			`(all|(?:[A-Za-z]\w+/)*[A-Za-z]\w+(?:\s*,\s*(?:[A-Za-z]\w+/)*[A-Za-z]\w+)*)`,
	)

	modeKinds = map[string]Kind{
		"todo":    KindTodo,
		"disable": KindDisable,
		"enable":  KindEnable,
	}
)

// Comment is a source comment together with its directive classification.
type Comment struct {
	// Range covers the comment text, starting at '#'.
	Range srcrange.Range

	// Kind is KindNone for ordinary comments.
	Kind Kind

	// Names lists the rules named by the directive in source order.
	Names []string
}

// Parse classifies a comment range.
func Parse(rng srcrange.Range) Comment {
	kind, names := ParseText(rng.Source())
	return Comment{Range: rng, Kind: kind, Names: names}
}

// ParseText classifies raw comment text.
func ParseText(text string) (Kind, []string) {
	matches := directivePattern.FindStringSubmatch(text)
	if matches == nil {
		return KindNone, nil
	}
	return modeKinds[matches[1]], parseRuleList(matches[2])
}

func parseRuleList(s string) []string {
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// IsDirective reports whether the comment is any rubocop directive.
func (c Comment) IsDirective() bool {
	return c.Kind != KindNone
}

// IsTodo reports whether the comment is a todo directive.
func (c Comment) IsTodo() bool {
	return c.Kind == KindTodo
}

// Disables reports whether the comment starts a suppression.
func (c Comment) Disables() bool {
	return c.Kind == KindTodo || c.Kind == KindDisable
}

// AllRules reports whether the directive addresses every rule.
func (c Comment) AllRules() bool {
	return len(c.Names) == 1 && c.Names[0] == AllRules
}

// Matches reports whether the directive names the given rule, directly,
// through its department, or through "all".
func (c Comment) Matches(rule string) bool {
	for _, name := range c.Names {
		if nameMatches(name, rule) {
			return true
		}
	}
	return false
}

func nameMatches(name, rule string) bool {
	if name == AllRules || name == rule {
		return true
	}
	return strings.HasPrefix(rule, name+"/")
}
