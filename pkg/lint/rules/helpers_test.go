package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/fix"
	"github.com/yaklabco/rbfix/pkg/lint"
	"github.com/yaklabco/rbfix/pkg/parser/treesitter"
)

// applyRule parses src and runs rule over it.
func applyRule(t *testing.T, rule lint.Rule, src string, cfg *config.Config) []lint.Diagnostic {
	t.Helper()

	file, err := treesitter.New().Parse(context.Background(), "test.rb", []byte(src))
	require.NoError(t, err)

	if cfg == nil {
		cfg = config.NewConfig()
	}
	var ruleCfg *config.RuleConfig
	if rc, ok := cfg.Rules[rule.ID()]; ok {
		ruleCfg = &rc
	}

	diags, err := rule.Apply(lint.NewRuleContext(context.Background(), file, cfg, ruleCfg))
	require.NoError(t, err)
	return diags
}

// applyFixes applies the fix edits of all diagnostics to src.
func applyFixes(t *testing.T, src string, diags []lint.Diagnostic) string {
	t.Helper()

	var edits []fix.TextEdit
	for _, d := range diags {
		edits = append(edits, d.FixEdits...)
	}
	prepared, err := fix.PrepareEdits(edits, len(src))
	require.NoError(t, err)
	return string(fix.ApplyEdits([]byte(src), prepared))
}
