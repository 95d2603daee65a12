package rules

import "github.com/yaklabco/rbfix/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewNodePatternMetatypesRule())
	registry.Register(NewLineLengthRule())
}

// RegisterRenamedAliases registers the former IDs of renamed rules.
func RegisterRenamedAliases(registry *lint.Registry) {
	registry.RegisterAlias("Metrics/LineLength", LineLengthID)
}

//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterRenamedAliases(lint.DefaultRegistry)
}
