// Package config defines the configuration types for rbfix.
// These types are plain data with YAML tags; discovery and merging live in
// internal/configloader.
package config

import "maps"

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Values accepted by the auto_correct rule key.
const (
	AutoCorrectTrue       = "true"
	AutoCorrectFalse      = "false"
	AutoCorrectDisabled   = "disabled"
	AutoCorrectAlways     = "always"
	AutoCorrectContextual = "contextual"
)

// LineLengthRuleID is the rule whose max option bounds directive placement.
const LineLengthRuleID = "Layout/LineLength"

// DefaultMaxLineLength applies when Layout/LineLength sets no max.
const DefaultMaxLineLength = 120

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool   `yaml:"enabled,omitempty"`
	Severity *string `yaml:"severity,omitempty"`

	// AutoCorrect is one of the AutoCorrect* values. YAML booleans decode
	// to "true" and "false".
	AutoCorrect *string `yaml:"auto_correct,omitempty"`

	// Safe marks the rule's findings as reliable.
	Safe *bool `yaml:"safe,omitempty"`

	// SafeAutoCorrect marks the rule's corrections as behavior preserving.
	SafeAutoCorrect *bool `yaml:"safe_auto_correct,omitempty"`

	Options map[string]any `yaml:"options,omitempty"`
}

// AutoCorrectMode returns the configured auto_correct value, or
// AutoCorrectTrue when unset.
func (rc *RuleConfig) AutoCorrectMode() string {
	if rc == nil || rc.AutoCorrect == nil {
		return AutoCorrectTrue
	}
	return *rc.AutoCorrect
}

// IsSafe reports the safe key, defaulting to true.
func (rc *RuleConfig) IsSafe() bool {
	return rc == nil || rc.Safe == nil || *rc.Safe
}

// IsSafeAutoCorrect reports the safe_auto_correct key, defaulting to true.
func (rc *RuleConfig) IsSafeAutoCorrect() bool {
	return rc == nil || rc.SafeAutoCorrect == nil || *rc.SafeAutoCorrect
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // only "sidecar" is supported
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatJSON     OutputFormat = "json"
	FormatDiff     OutputFormat = "diff"
	FormatSARIF    OutputFormat = "sarif"
	FormatOffenses OutputFormat = "offenses"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "line-length"
	RuleFormatID       RuleFormat = "id"       // "Layout/LineLength"
	RuleFormatCombined RuleFormat = "combined" // "Layout/LineLength (line-length)"
)

// Config is the root configuration structure for rbfix.
type Config struct {
	// SeverityDefault is the default severity for rules that don't specify one.
	SeverityDefault string `yaml:"severity_default,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Fix enables autocorrection.
	Fix bool `yaml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `yaml:"-"`

	// DisableUncorrectable inserts todo directives for offenses that
	// cannot be corrected.
	DisableUncorrectable bool `yaml:"-"`

	// SafeFix restricts autocorrection to rules marked safe.
	SafeFix bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-"`

	// FixRules limits auto-fixing to specific rule IDs.
	FixRules []string `yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		RuleFormat: RuleFormatID,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// MaxLineLength returns the max option of Layout/LineLength, or
// DefaultMaxLineLength when it is unset or not a positive number.
func (c *Config) MaxLineLength() int {
	if c == nil {
		return DefaultMaxLineLength
	}
	rc, ok := c.Rules[LineLengthRuleID]
	if !ok {
		return DefaultMaxLineLength
	}
	var n int
	switch v := rc.Options["max"].(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	}
	if n <= 0 {
		return DefaultMaxLineLength
	}
	return n
}

// SetMaxLineLength stores max as the Layout/LineLength max option.
func (c *Config) SetMaxLineLength(maxLen int) {
	if c.Rules == nil {
		c.Rules = make(map[string]RuleConfig)
	}
	rc := c.Rules[LineLengthRuleID]
	opts := make(map[string]any, len(rc.Options)+1)
	maps.Copy(opts, rc.Options)
	opts["max"] = maxLen
	rc.Options = opts
	c.Rules[LineLengthRuleID] = rc
}
