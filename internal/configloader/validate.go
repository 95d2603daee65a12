package configloader

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.Layout/LineLength.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownSeverities lists valid severity values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownSeverities = map[string]bool{
	string(config.SeverityError):   true,
	string(config.SeverityWarning): true,
	string(config.SeverityInfo):    true,
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:     true,
	config.FormatJSON:     true,
	config.FormatDiff:     true,
	config.FormatSARIF:    true,
	config.FormatOffenses: true,
}

// knownRuleFormats lists valid rule identifier formats.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownRuleFormats = map[config.RuleFormat]bool{
	config.RuleFormatID:       true,
	config.RuleFormatName:     true,
	config.RuleFormatCombined: true,
}

// knownAutoCorrect lists valid auto_correct values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownAutoCorrect = map[string]bool{
	config.AutoCorrectTrue:       true,
	config.AutoCorrectFalse:      true,
	config.AutoCorrectDisabled:   true,
	config.AutoCorrectAlways:     true,
	config.AutoCorrectContextual: true,
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration against the default registry.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWithRegistry(cfg, lint.DefaultRegistry)
}

// ValidateWithRegistry checks a configuration for errors and warnings. Rule
// keys are looked up in registry.
func ValidateWithRegistry(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.SeverityDefault != "" && !knownSeverities[cfg.SeverityDefault] {
		result.addError("severity_default", cfg.SeverityDefault,
			fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault))
	}
	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: text, json, diff, sarif, offenses", cfg.Format))
	}
	if cfg.RuleFormat != "" && !knownRuleFormats[cfg.RuleFormat] {
		result.addError("rule_format", cfg.RuleFormat,
			fmt.Sprintf("invalid rule format %q; must be one of: id, name, combined", cfg.RuleFormat))
	}
	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.addError("backups.mode", cfg.Backups.Mode,
			fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode))
	}
	if cfg.DryRun && !cfg.Fix {
		result.addWarning("dry_run", cfg.DryRun, "dry run has no effect without fix")
	}
	if cfg.DisableUncorrectable && !cfg.Fix {
		result.addWarning("disable_uncorrectable", cfg.DisableUncorrectable,
			"disable uncorrectable has no effect without fix")
	}

	validateRules(cfg, registry, result)
	validateRuleLists(cfg, registry, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func (r *ValidationResult) addWarning(field string, value any, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: message})
}

// validateRules checks per-rule configuration.
func validateRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	for _, ruleID := range slices.Sorted(maps.Keys(cfg.Rules)) {
		ruleCfg := cfg.Rules[ruleID]
		field := "rules." + ruleID

		if _, exists := registry.Get(ruleID); !exists && !IsDepartment(registry, ruleID) {
			result.addWarning(field, ruleID, fmt.Sprintf("unknown rule %q; it will be ignored", ruleID))
		}

		if ruleCfg.Severity != nil && !knownSeverities[*ruleCfg.Severity] {
			result.addError(field+".severity", *ruleCfg.Severity,
				fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity))
		}

		if ruleCfg.AutoCorrect != nil && !knownAutoCorrect[*ruleCfg.AutoCorrect] {
			result.addError(field+".auto_correct", *ruleCfg.AutoCorrect,
				fmt.Sprintf("invalid auto_correct %q; must be one of: true, false, disabled, always, contextual",
					*ruleCfg.AutoCorrect))
		}
	}

	if v, set := cfg.Rules[config.LineLengthRuleID].Options["max"]; set && !isPositiveInt(v) {
		result.addError("rules."+config.LineLengthRuleID+".options.max", v, "max must be a positive integer")
	}
}

func isPositiveInt(v any) bool {
	switch n := v.(type) {
	case int:
		return n > 0
	case int64:
		return n > 0
	case float64:
		return n > 0 && n == float64(int(n))
	default:
		return false
	}
}

// validateRuleLists warns about unknown keys in --enable, --disable, and
// --fix-rules.
func validateRuleLists(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	lists := []struct {
		field string
		keys  []string
	}{
		{"enable", cfg.EnableRules},
		{"disable", cfg.DisableRules},
		{"fix_rules", cfg.FixRules},
	}
	for _, list := range lists {
		_, unknown := ExpandRuleKeys(registry, list.keys)
		for _, key := range unknown {
			result.addWarning(list.field, key, fmt.Sprintf("unknown rule %q", key))
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// IsValidSeverity returns true if the severity string is valid.
func IsValidSeverity(s string) bool {
	return knownSeverities[s]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
