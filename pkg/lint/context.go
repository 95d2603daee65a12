package lint

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/rbfix/internal/logging"
	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/fix"
	"github.com/yaklabco/rbfix/pkg/rubyast"
)

// RuleContext is what a rule sees while inspecting one file. The engine
// builds a fresh one for every rule invocation, which is why it carries the
// request context as a field.
type RuleContext struct {
	Ctx  context.Context
	File *rubyast.File
	Root *rubyast.Node

	Config     *config.Config
	RuleConfig *config.RuleConfig

	// Builder collects edits that are not attached to a diagnostic.
	Builder *fix.EditBuilder

	// Registry resolves rule names for diagnostics. It may be nil.
	Registry *Registry

	nodes *NodeCache
}

// NewRuleContext returns a context for file under cfg and ruleCfg.
func NewRuleContext(
	ctx context.Context,
	file *rubyast.File,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	rc := &RuleContext{
		Ctx:        ctx,
		File:       file,
		Config:     cfg,
		RuleConfig: ruleCfg,
		Builder:    fix.NewEditBuilder(),
	}
	if file != nil {
		rc.Root = file.Root
	}
	return rc
}

// Logger returns the logger attached to Ctx.
func (rc *RuleContext) Logger() *log.Logger {
	return logging.FromContext(rc.Ctx)
}

// Nodes indexes the tree on first use. Rules in one invocation share it.
func (rc *RuleContext) Nodes() *NodeCache {
	if rc.nodes == nil {
		rc.nodes = NewNodeCache(rc.Root)
	}
	return rc.nodes
}

// Cancelled reports whether Ctx is done.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx.Err() != nil
}

// Option returns the raw value of an entry under the rule's options, or def.
func (rc *RuleContext) Option(key string, def any) any {
	if rc.RuleConfig != nil {
		if v, ok := rc.RuleConfig.Options[key]; ok {
			return v
		}
	}
	return def
}

// OptionInt reads an integer option. YAML may decode numbers as int, int64,
// or float64.
func (rc *RuleContext) OptionInt(key string, def int) int {
	switch n := rc.Option(key, def).(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}

// OptionBool reads a boolean option.
func (rc *RuleContext) OptionBool(key string, def bool) bool {
	if b, ok := rc.Option(key, def).(bool); ok {
		return b
	}
	return def
}

// OptionStringSlice reads a list of strings. Non-string items of a decoded
// YAML list are dropped; a list with no strings yields def.
func (rc *RuleContext) OptionStringSlice(key string, def []string) []string {
	switch v := rc.Option(key, def).(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
