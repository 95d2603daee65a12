package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rbfix/pkg/config"
)

type mockRule struct {
	id   string
	name string
}

func (m *mockRule) ID() string                               { return m.id }
func (m *mockRule) Name() string                             { return m.name }
func (m *mockRule) Description() string                      { return "mock" }
func (m *mockRule) DefaultEnabled() bool                     { return true }
func (m *mockRule) DefaultSeverity() config.Severity         { return config.SeverityWarning }
func (m *mockRule) Tags() []string                           { return nil }
func (m *mockRule) CanFix() bool                             { return false }
func (m *mockRule) Apply(*RuleContext) ([]Diagnostic, error) { return nil, nil }

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "Layout/LineLength", name: "line-length"})

	got, ok := reg.GetByID("Layout/LineLength")
	require.True(t, ok)
	assert.Equal(t, "line-length", got.Name())

	got, ok = reg.GetByName("line-length")
	require.True(t, ok)
	assert.Equal(t, "Layout/LineLength", got.ID())

	got, ok = reg.Get("line-length")
	require.True(t, ok, "Get falls back to names")
	assert.Equal(t, "Layout/LineLength", got.ID())

	_, ok = reg.GetByID("line-length")
	assert.False(t, ok)
	_, ok = reg.GetByName("missing")
	assert.False(t, ok)
}

func TestRegistry_Resolve(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "Layout/LineLength", name: "line-length"})
	reg.RegisterAlias("Metrics/LineLength", "Layout/LineLength")

	tests := []struct {
		key    string
		wantID string
		wantOK bool
	}{
		{"Layout/LineLength", "Layout/LineLength", true},
		{"line-length", "Layout/LineLength", true},
		{"Metrics/LineLength", "Layout/LineLength", true},
		{"Layout/Missing", "", false},
	}

	for _, tt := range tests {
		id, rule, ok := reg.Resolve(tt.key)
		assert.Equal(t, tt.wantOK, ok, "key: %s", tt.key)
		if tt.wantOK {
			assert.Equal(t, tt.wantID, id, "key: %s", tt.key)
			assert.Equal(t, tt.wantID, rule.ID(), "key: %s", tt.key)
		}
	}
}

func TestRegistry_RegisterAlias_UnknownRule(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterAlias("Old/Name", "New/Missing")

	_, _, ok := reg.Resolve("Old/Name")
	assert.False(t, ok)
}

func TestRegistry_RulesSortedByID(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "Style/Zeta", name: "zeta"})
	reg.Register(&mockRule{id: "InternalAffairs/NodePatternMetatypes", name: "node-pattern-metatypes"})
	reg.Register(&mockRule{id: "Layout/LineLength", name: "line-length"})

	want := []string{"InternalAffairs/NodePatternMetatypes", "Layout/LineLength", "Style/Zeta"}
	assert.Equal(t, want, reg.IDs())

	rules := reg.Rules()
	require.Len(t, rules, 3)
	assert.Equal(t, want[0], rules[0].ID())
	assert.Equal(t, want[2], rules[2].ID())
}

func TestRegistry_InDepartment(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "Lint/Debugger", name: "debugger"})
	reg.Register(&mockRule{id: "Layout/TrailingWhitespace", name: "trailing-whitespace"})
	reg.Register(&mockRule{id: "Layout/LineLength", name: "line-length"})

	assert.Equal(t, []string{"Layout/LineLength", "Layout/TrailingWhitespace"}, reg.InDepartment("Layout"))
	assert.Equal(t, []string{"Lint/Debugger"}, reg.InDepartment("Lint"))
	assert.Empty(t, reg.InDepartment("Style"))
}
