package lint

import (
	"maps"
	"slices"
	"sync"
)

// Registry indexes rules by ID, by short name, and by former IDs. It is safe
// for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	rules   map[string]Rule
	names   map[string]string
	renamed map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules:   map[string]Rule{},
		names:   map[string]string{},
		renamed: map[string]string{},
	}
}

// Register adds rule, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules[rule.ID()] = rule
	r.names[rule.Name()] = rule.ID()
}

// RegisterAlias keeps a renamed rule addressable under its old ID, for
// example "Metrics/LineLength" for "Layout/LineLength".
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.renamed[alias] = ruleID
}

// Get looks key up as an ID, then as a name.
func (r *Registry) Get(key string) (Rule, bool) {
	if rule, ok := r.GetByID(key); ok {
		return rule, true
	}
	return r.GetByName(key)
}

// GetByID looks up a rule by its exact ID.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[id]
	return rule, ok
}

// GetByName looks up a rule by its short name.
func (r *Registry) GetByName(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[r.names[name]]
	return rule, ok
}

// Resolve maps an ID, a name, or a former ID to the canonical ID and rule.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range []string{key, r.names[key], r.renamed[key]} {
		if rule, ok := r.rules[id]; ok {
			return id, rule, true
		}
	}
	return "", nil, false
}

// Rules returns every rule ordered by ID.
func (r *Registry) Rules() []Rule {
	ids := r.IDs()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.rules[id])
	}
	return out
}

// IDs returns every rule ID in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.rules))
}

// InDepartment returns the sorted IDs of the rules in dept.
func (r *Registry) InDepartment(dept string) []string {
	var ids []string
	for _, id := range r.IDs() {
		if Department(id) == dept {
			ids = append(ids, id)
		}
	}
	return ids
}

// DefaultRegistry holds the built-in rules, registered by the rules package.
//
//nolint:gochecknoglobals // rules register themselves from init
var DefaultRegistry = NewRegistry()
