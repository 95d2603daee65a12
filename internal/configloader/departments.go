package configloader

import (
	"slices"
	"strings"

	"github.com/yaklabco/rbfix/pkg/lint"
)

// IsDepartment reports whether key names a department of registered rules,
// such as "Layout" for "Layout/LineLength".
func IsDepartment(registry *lint.Registry, key string) bool {
	if key == "" || strings.Contains(key, "/") {
		return false
	}
	return len(DepartmentRules(registry, key)) > 0
}

// DepartmentRules returns the sorted IDs of the registered rules in dept.
func DepartmentRules(registry *lint.Registry, dept string) []string {
	if dept == "" {
		return nil
	}
	return registry.InDepartment(dept)
}

// ExpandRuleKeys resolves rule IDs, names, renamed IDs, and departments to
// canonical rule IDs, dropping duplicates. Unknown keys are returned
// separately.
func ExpandRuleKeys(registry *lint.Registry, keys []string) ([]string, []string) {
	var ids, unknown []string
	add := func(id string) {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	for _, key := range keys {
		if IsDepartment(registry, key) {
			for _, id := range DepartmentRules(registry, key) {
				add(id)
			}
			continue
		}
		if id, _, ok := registry.Resolve(key); ok {
			add(id)
			continue
		}
		unknown = append(unknown, key)
	}
	return ids, unknown
}
