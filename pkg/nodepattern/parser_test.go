package nodepattern_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rbfix/pkg/nodepattern"
)

func TestParse_Structure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{name: "node type", pattern: "send", want: "send"},
		{name: "union", pattern: "{send csend}", want: "(union send csend)"},
		{name: "sequence", pattern: "(send nil? :foo)", want: "(sequence send predicate symbol)"},
		{
			name:    "nested",
			pattern: "({send csend} (const {nil? cbase} :FileUtils) :cd ...)",
			want:    "(sequence (union send csend) (sequence const (union predicate cbase) symbol) symbol rest)",
		},
		{name: "piped union", pattern: "{send | csend}", want: "(union send csend)"},
		{
			name:    "piped union with subsequence",
			pattern: "({send ... csend | def})",
			want:    "(sequence (union (subsequence send rest csend) def))",
		},
		{name: "capture", pattern: "$send", want: "(other:capture send)"},
		{name: "negation of predicate", pattern: "(send nil !nil?)", want: "(sequence send nil (other:negation predicate))"},
		{name: "repetition", pattern: "(send _ int+)", want: "(sequence send wildcard (other:repetition int))"},
		{name: "intersection", pattern: "[!nil send]", want: "(other:intersection (other:negation nil) send)"},
		{name: "function call args", pattern: "#foo?(%1, _)", want: "(other:function_call param wildcard)"},
		{name: "comment", pattern: "{send # call\n csend}", want: "(union send csend)"},
		{name: "params and strings", pattern: `(str %1 "x" 1.5 -2 /re/i Foo::Bar _name)`, want: "(sequence str param string number number regexp constant unify)"},
		{name: "dashed node type", pattern: "(block-pass _)", want: "(sequence block-pass wildcard)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			node, err := nodepattern.Parse(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, node.String())
		})
	}
}

func TestParse_Spans(t *testing.T) {
	t.Parallel()

	pattern := "(send {send | csend} $def)"
	node, err := nodepattern.Parse(pattern)
	require.NoError(t, err)

	require.Len(t, node.Children, 3)
	union := node.Children[1]
	assert.Equal(t, nodepattern.KindUnion, union.Kind)
	assert.True(t, union.Piped)
	assert.Equal(t, "{send | csend}", union.Text(pattern))
	assert.Equal(t, "csend", union.Children[1].Text(pattern))
	assert.Equal(t, 5, union.Children[1].Span.Len())

	capture := node.Children[2]
	assert.Equal(t, "$def", capture.Text(pattern))
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	patterns := []string{
		"({send csend",
		"{send csend",
		"(send",
		"{}",
		"()",
		"{send |}",
		"{| send}",
		"send csend",
		"(send))",
		"\"unterminated",
		"#foo(1 2)",
		"@",
		"",
	}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			t.Parallel()

			node, err := nodepattern.Parse(pattern)
			require.Error(t, err)
			assert.Nil(t, node)
			assert.True(t, errors.Is(err, nodepattern.ErrInvalidPattern))

			var syntaxErr *nodepattern.SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, pattern, syntaxErr.Pattern)
		})
	}
}
