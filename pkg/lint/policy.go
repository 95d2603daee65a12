package lint

import "github.com/yaklabco/rbfix/pkg/config"

// Policy decides, per rule, whether offenses are corrected, silenced with a
// todo directive, or only reported.
type Policy struct {
	Config *config.Config
}

// NewPolicy creates a Policy over cfg. A nil cfg requests nothing.
func NewPolicy(cfg *config.Config) Policy {
	return Policy{Config: cfg}
}

// AutocorrectRequested reports whether the run asked for corrections.
func (p Policy) AutocorrectRequested() bool {
	return p.Config != nil && p.Config.Fix
}

// AutocorrectEnabled reports whether the rule's configuration allows
// correction. auto_correct false or disabled turns it off; under safe fixing
// the rule must also be safe and have safe corrections.
func (p Policy) AutocorrectEnabled(ruleCfg *config.RuleConfig) bool {
	if optedOut(ruleCfg) {
		return false
	}
	if p.Config != nil && p.Config.SafeFix {
		return ruleCfg.IsSafe() && ruleCfg.IsSafeAutoCorrect()
	}
	return true
}

// Autocorrect reports whether the rule's offenses are corrected.
func (p Policy) Autocorrect(rule Rule, ruleCfg *config.RuleConfig) bool {
	return p.AutocorrectRequested() && rule.CanFix() && p.AutocorrectEnabled(ruleCfg)
}

// DisableUncorrectable reports whether offenses of the rule that are not
// corrected get a todo directive instead. An unsafe rule left uncorrected
// under safe fixing still gets one; only auto_correct false or disabled
// opts out.
func (p Policy) DisableUncorrectable(ruleCfg *config.RuleConfig) bool {
	return p.AutocorrectRequested() &&
		p.Config.DisableUncorrectable &&
		!optedOut(ruleCfg)
}

func optedOut(ruleCfg *config.RuleConfig) bool {
	switch ruleCfg.AutoCorrectMode() {
	case config.AutoCorrectFalse, config.AutoCorrectDisabled:
		return true
	}
	return false
}

// MaxLineLength is the line length limit directive placement respects.
func (p Policy) MaxLineLength() int {
	return p.Config.MaxLineLength()
}
