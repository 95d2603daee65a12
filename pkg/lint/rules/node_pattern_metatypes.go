package rules

import (
	"errors"

	"github.com/yaklabco/rbfix/internal/logging"
	"github.com/yaklabco/rbfix/pkg/lint"
	"github.com/yaklabco/rbfix/pkg/metatype"
	"github.com/yaklabco/rbfix/pkg/nodepattern"
	"github.com/yaklabco/rbfix/pkg/rubyast"
)

// NodePatternMetatypesID is the ID of NodePatternMetatypesRule.
const NodePatternMetatypesID = "InternalAffairs/NodePatternMetatypes"

// patternMethods are the matcher definitions whose second argument is a node
// pattern.
var patternMethods = []string{"def_node_matcher", "def_node_search"}

// NodePatternMetatypesRule flags node pattern unions that spell out every
// member of a metatype and replaces them with the metatype name.
type NodePatternMetatypesRule struct {
	lint.BaseRule
}

// NewNodePatternMetatypesRule creates the rule.
func NewNodePatternMetatypesRule() *NodePatternMetatypesRule {
	return &NodePatternMetatypesRule{
		BaseRule: lint.NewBaseRule(
			NodePatternMetatypesID,
			"node-pattern-metatypes",
			"Use node metatypes (argument, boolean, call, numeric, range) in node patterns "+
				"instead of a union of their member types",
			[]string{"internal_affairs", "node_pattern"},
			true,
		),
	}
}

// Apply inspects every def_node_matcher and def_node_search pattern given as
// a plain string literal or a heredoc without interpolation.
func (r *NodePatternMetatypesRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, send := range ctx.Nodes().SendsNamed(patternMethods...) {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}
		if len(send.Args) < 2 {
			continue
		}

		text, loc, ok := patternSource(send.Args[1])
		if !ok {
			continue
		}

		root, err := nodepattern.Parse(text)
		if err != nil {
			if errors.Is(err, nodepattern.ErrInvalidPattern) {
				ctx.Logger().Debug("skipping invalid node pattern",
					logging.FieldPath, ctx.File.Path,
					logging.FieldLine, send.Args[1].Range.FirstLine(),
					logging.FieldError, err)
				continue
			}
			return diags, err
		}

		for _, match := range metatype.Scan(root) {
			offense, edits := metatype.Rewrite(match, loc)
			diags = append(diags,
				lint.NewDiagnosticWithRegistry(r.ID(), offense, metatype.Message(match), ctx.Registry).
					WithSuggestion("Use `"+match.Metatype.Name+"`").
					WithEdits(edits...).
					Build())
		}
	}

	return diags, nil
}

// patternSource returns the pattern text of a matcher argument and where it
// sits in the file. Heredocs are read from their raw body.
func patternSource(arg *rubyast.Node) (string, metatype.Location, bool) {
	switch {
	case arg.IsPlainString():
		return arg.Value, metatype.StringLocation(arg.Range), true
	case arg.IsHeredoc() && arg.Kind == rubyast.KindStr:
		return arg.Heredoc.Body.Source(), metatype.HeredocLocation(arg.Heredoc.Body), true
	default:
		return "", metatype.Location{}, false
	}
}
