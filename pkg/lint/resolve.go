package lint

import (
	"slices"

	"github.com/yaklabco/rbfix/pkg/config"
)

// ResolvedRule is a rule with the settings that apply to it in one run.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity

	// Autocorrect is set when the rule's fix edits may be applied.
	Autocorrect bool

	// DisableUncorrectable is set when offenses left without a fix get a
	// todo directive.
	DisableUncorrectable bool

	// Config is the rule's entry in the rules section, or nil.
	Config *config.RuleConfig
}

// ResolveRules returns the enabled rules of registry, ordered by ID, with
// their settings under cfg. The precedence, lowest first, is the rule's own
// defaults, the rules section of the config, then --enable and --disable.
// --fix-rules restricts autocorrection to the listed rules.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var policy Policy
	if cfg != nil {
		policy = NewPolicy(cfg)
	}

	var out []ResolvedRule
	for _, rule := range registry.Rules() {
		rr := ResolvedRule{Rule: rule, Enabled: rule.DefaultEnabled(), Severity: rule.DefaultSeverity()}
		if cfg != nil {
			applyConfig(&rr, cfg, policy)
		}
		if rr.Enabled {
			out = append(out, rr)
		}
	}
	return out
}

func applyConfig(rr *ResolvedRule, cfg *config.Config, policy Policy) {
	id := rr.Rule.ID()

	if ruleCfg, ok := cfg.Rules[id]; ok {
		rr.Config = &ruleCfg
		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
	}

	switch {
	case slices.Contains(cfg.DisableRules, id):
		rr.Enabled = false
	case slices.Contains(cfg.EnableRules, id):
		rr.Enabled = true
	}

	rr.Autocorrect = policy.Autocorrect(rr.Rule, rr.Config) &&
		(len(cfg.FixRules) == 0 || slices.Contains(cfg.FixRules, id))
	rr.DisableUncorrectable = policy.DisableUncorrectable(rr.Config)
}
