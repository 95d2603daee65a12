package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/rbfix/pkg/config"
)

// envVarPrefix is the prefix for all rbfix environment variables.
const envVarPrefix = "RBFIX_"

// envSetter applies one environment value to the configuration.
type envSetter struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringSetter(description string, set func(*config.Config, string)) envSetter {
	return envSetter{description: description, apply: func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}}
}

func boolSetter(description string, set func(*config.Config, bool)) envSetter {
	return envSetter{description: description, apply: func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}}
}

func intSetter(description string, set func(*config.Config, int)) envSetter {
	return envSetter{description: description, apply: func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, i)
		return nil
	}}
}

func sliceSetter(description string, set func(*config.Config, []string)) envSetter {
	return envSetter{description: description, apply: func(cfg *config.Config, value string) error {
		set(cfg, parseSliceValue(value))
		return nil
	}}
}

// envMappings maps environment variable names (without prefix) to setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envSetter{
	"SEVERITY_DEFAULT": stringSetter("Default severity: error, warning, or info",
		func(c *config.Config, v string) { c.SeverityDefault = v }),
	"FORMAT": stringSetter("Output format: text, json, or diff",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	"RULE_FORMAT": stringSetter("Rule identifiers in output: id, name, or combined",
		func(c *config.Config, v string) { c.RuleFormat = config.RuleFormat(v) }),
	"BACKUPS_MODE": stringSetter("Backup mode: sidecar or none",
		func(c *config.Config, v string) { c.Backups.Mode = v }),
	"FIX": boolSetter("Correct offenses: true or false",
		func(c *config.Config, v bool) { c.Fix = v }),
	"DRY_RUN": boolSetter("Show corrections as a diff without writing: true or false",
		func(c *config.Config, v bool) { c.DryRun = v }),
	"DISABLE_UNCORRECTABLE": boolSetter("Silence uncorrectable offenses with rubocop:todo: true or false",
		func(c *config.Config, v bool) { c.DisableUncorrectable = v }),
	"SAFE": boolSetter("Only apply safe corrections: true or false",
		func(c *config.Config, v bool) { c.SafeFix = v }),
	"BACKUPS_ENABLED": boolSetter("Enable backups when fixing: true or false",
		func(c *config.Config, v bool) { c.Backups.Enabled = v }),
	"NO_BACKUPS": boolSetter("Disable backups: true or false",
		func(c *config.Config, v bool) { c.NoBackups = v }),
	"JOBS": intSetter("Number of parallel workers (0 = auto)",
		func(c *config.Config, v int) { c.Jobs = v }),
	"MAX_LINE_LENGTH": intSetter("Line length limit for Layout/LineLength and directive placement",
		func(c *config.Config, v int) { c.SetMaxLineLength(v) }),
	"IGNORE": sliceSetter("Comma-separated list of ignore patterns",
		func(c *config.Config, v []string) { c.Ignore = v }),
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Variables are prefixed with RBFIX_ (e.g., RBFIX_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, setter := range envMappings {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if err := setter.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
	}

	return nil
}

// parseSliceValue splits a comma-separated list, trimming each element and
// dropping empty ones.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, setter := range envMappings {
		vars[envVarPrefix+suffix] = setter.description
	}
	return vars
}
