package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/rbfix/pkg/config"
)

func TestBaseRule(t *testing.T) {
	rule := NewBaseRule("Layout/LineLength", "line-length", "checks lines", []string{"layout"}, false)

	assert.Equal(t, "Layout/LineLength", rule.ID())
	assert.Equal(t, "line-length", rule.Name())
	assert.Equal(t, "checks lines", rule.Description())
	assert.Equal(t, []string{"layout"}, rule.Tags())
	assert.Equal(t, "Layout", rule.Department())
	assert.True(t, rule.DefaultEnabled())
	assert.Equal(t, config.SeverityWarning, rule.DefaultSeverity())
	assert.False(t, rule.CanFix())

	diags, err := rule.Apply(nil)
	assert.NoError(t, err)
	assert.Empty(t, diags)
}

func TestBaseRule_DepartmentWithoutSlash(t *testing.T) {
	rule := NewBaseRule("Standalone", "standalone", "", nil, true)
	assert.Empty(t, rule.Department())
	assert.True(t, rule.CanFix())
}
