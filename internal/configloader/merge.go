package configloader

import (
	"maps"

	"github.com/yaklabco/rbfix/pkg/config"
)

// MergeAll folds configs left to right, later ones winning. Nil entries are
// skipped.
//
// A field of a later config wins when it is set: non-zero scalars, non-nil
// pointers and slices. Booleans can only be switched on because false is
// indistinguishable from unset. Rule entries are merged field by field and
// their options key by key.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, cfg := range configs {
		out = merge(out, cfg)
	}
	return out
}

func merge(base, over *config.Config) *config.Config {
	if base == nil {
		return over
	}
	if over == nil {
		return base
	}

	out := *base
	out.SeverityDefault = pick(base.SeverityDefault, over.SeverityDefault)
	out.Format = pick(base.Format, over.Format)
	out.RuleFormat = pick(base.RuleFormat, over.RuleFormat)
	out.Jobs = pick(base.Jobs, over.Jobs)
	out.Backups.Mode = pick(base.Backups.Mode, over.Backups.Mode)

	out.Fix = base.Fix || over.Fix
	out.DryRun = base.DryRun || over.DryRun
	out.DisableUncorrectable = base.DisableUncorrectable || over.DisableUncorrectable
	out.SafeFix = base.SafeFix || over.SafeFix
	out.NoBackups = base.NoBackups || over.NoBackups
	out.Backups.Enabled = base.Backups.Enabled || over.Backups.Enabled

	out.Ignore = pickSlice(base.Ignore, over.Ignore)
	out.EnableRules = pickSlice(base.EnableRules, over.EnableRules)
	out.DisableRules = pickSlice(base.DisableRules, over.DisableRules)
	out.FixRules = pickSlice(base.FixRules, over.FixRules)

	out.Rules = mergeRules(base.Rules, over.Rules)
	return &out
}

// mergeRules returns a new map; neither input is modified.
func mergeRules(base, over map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && over == nil {
		return nil
	}

	out := make(map[string]config.RuleConfig, len(base)+len(over))
	for id, rc := range base {
		out[id] = rc.Clone()
	}
	for id, rc := range over {
		prev, ok := out[id]
		if !ok {
			out[id] = rc.Clone()
			continue
		}
		out[id] = mergeRuleConfig(prev, rc)
	}
	return out
}

func mergeRuleConfig(prev, rc config.RuleConfig) config.RuleConfig {
	return config.RuleConfig{
		Enabled:         pickPtr(prev.Enabled, rc.Enabled),
		Severity:        pickPtr(prev.Severity, rc.Severity),
		AutoCorrect:     pickPtr(prev.AutoCorrect, rc.AutoCorrect),
		Safe:            pickPtr(prev.Safe, rc.Safe),
		SafeAutoCorrect: pickPtr(prev.SafeAutoCorrect, rc.SafeAutoCorrect),
		Options:         mergeOptions(prev.Options, rc.Options),
	}
}

func mergeOptions(base, over map[string]any) map[string]any {
	if base == nil && over == nil {
		return nil
	}
	out := make(map[string]any, len(base)+len(over))
	maps.Copy(out, base)
	maps.Copy(out, over)
	return out
}

func pick[T comparable](base, over T) T {
	var zero T
	if over != zero {
		return over
	}
	return base
}

func pickPtr[T any](base, over *T) *T {
	if over != nil {
		return over
	}
	return base
}

func pickSlice[T any](base, over []T) []T {
	if over != nil {
		return over
	}
	return base
}
