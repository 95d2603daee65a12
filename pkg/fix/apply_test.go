package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rbfix/pkg/fix"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{
			name:    "no edits",
			content: "puts 1\n",
			want:    "puts 1\n",
		},
		{
			name:    "replace node pattern",
			content: "def_node_matcher :m, '(send nil? :foo)'\n",
			edits:   []fix.TextEdit{{StartOffset: 23, EndOffset: 27, NewText: "call"}},
			want:    "def_node_matcher :m, '(call nil? :foo)'\n",
		},
		{
			name:    "append todo comment",
			content: "foo(1)\nbar\n",
			edits:   []fix.TextEdit{{StartOffset: 6, EndOffset: 6, NewText: " # rubocop:todo Layout/LineLength"}},
			want:    "foo(1) # rubocop:todo Layout/LineLength\nbar\n",
		},
		{
			name:    "several edits",
			content: "{send csend}",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 1},
				{StartOffset: 1, EndOffset: 11, NewText: "call"},
				{StartOffset: 11, EndOffset: 12},
			},
			want: "call",
		},
		{
			name:    "insert at both ends",
			content: "x",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 0, NewText: "["},
				{StartOffset: 1, EndOffset: 1, NewText: "]"},
			},
			want: "[x]",
		},
		{
			name:    "delete everything",
			content: "gone",
			edits:   []fix.TextEdit{{StartOffset: 0, EndOffset: 4}},
			want:    "",
		},
		{
			name:    "multibyte content",
			content: "é = 1",
			edits:   []fix.TextEdit{{StartOffset: 0, EndOffset: 2, NewText: "e"}},
			want:    "e = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prepared, err := fix.PrepareEdits(tt.edits, len(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(fix.ApplyEdits([]byte(tt.content), prepared)))
		})
	}
}

func TestApplyEdits_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	content := []byte("foo bar")
	edits := []fix.TextEdit{{StartOffset: 0, EndOffset: 3, NewText: "baz"}}

	got := fix.ApplyEdits(content, edits)
	assert.Equal(t, "baz bar", string(got))
	assert.Equal(t, "foo bar", string(content))
	assert.Equal(t, "baz", edits[0].NewText)
}
