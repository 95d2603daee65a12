package treesitter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rbfix/pkg/parser/treesitter"
	"github.com/yaklabco/rbfix/pkg/rubyast"
)

func parse(t *testing.T, src string) *rubyast.File {
	t.Helper()
	file, err := treesitter.New().Parse(context.Background(), "test.rb", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, file.Root)
	return file
}

func TestParse_Send(t *testing.T) {
	t.Parallel()

	file := parse(t, "def_node_matcher :my_matcher, '{send csend}'\n")

	assert.Equal(t, rubyast.KindProgram, file.Root.Kind)
	sends := rubyast.FindAll(file.Root, func(n *rubyast.Node) bool {
		return n.IsSend("def_node_matcher")
	})
	require.Len(t, sends, 1)

	send := sends[0]
	require.Len(t, send.Args, 2)
	assert.Equal(t, rubyast.KindSym, send.Args[0].Kind)
	assert.Equal(t, "my_matcher", send.Args[0].Value)

	pattern := send.Args[1]
	assert.Equal(t, rubyast.KindStr, pattern.Kind)
	assert.Equal(t, "'{send csend}'", pattern.Source())
	assert.Equal(t, "{send csend}", pattern.Value)
	assert.False(t, pattern.IsHeredoc())
}

func TestParse_InterpolatedString(t *testing.T) {
	t.Parallel()

	file := parse(t, "def_node_matcher :m, \"{ #{TYPES.join(' ')} }\"\n")

	strs := rubyast.FindAll(file.Root, func(n *rubyast.Node) bool {
		return n.Type == "string" && n.Interpolated
	})
	require.Len(t, strs, 1)
	assert.Equal(t, rubyast.KindDStr, strs[0].Kind)
	assert.Empty(t, strs[0].Value)
}

func TestParse_Heredoc(t *testing.T) {
	t.Parallel()

	src := "def_node_matcher :my_matcher, <<~PATTERN\n  {send csend}\nPATTERN\nputs 1\n"
	file := parse(t, src)

	heredocs := rubyast.FindAll(file.Root, (*rubyast.Node).IsHeredoc)
	require.Len(t, heredocs, 1)

	heredoc := heredocs[0]
	assert.Equal(t, "<<~PATTERN", heredoc.Source())
	assert.Equal(t, "  {send csend}\n", heredoc.Heredoc.Body.Source())
	assert.Equal(t, "PATTERN", heredoc.Heredoc.End.Source())
	assert.False(t, heredoc.Interpolated)
	assert.True(t, heredoc.HeredocRange().Contains(heredoc.Heredoc.Body))
}

func TestParse_PercentArrayAndComments(t *testing.T) {
	t.Parallel()

	src := "# leading\nwords = %w[\n  a\n  b\n] # trailing\nlist = [1, 2]\n"
	file := parse(t, src)

	arrays := rubyast.FindAll(file.Root, func(n *rubyast.Node) bool {
		return n.Kind == rubyast.KindArray
	})
	require.Len(t, arrays, 2)
	assert.True(t, arrays[0].IsPercentArray())
	assert.False(t, arrays[1].IsPercentArray())

	require.Len(t, file.Comments, 2)
	comment, ok := file.CommentAtLine(5)
	require.True(t, ok)
	assert.Equal(t, "# trailing", comment.Source())

	_, ok = file.CommentAtLine(2)
	assert.False(t, ok)
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := treesitter.New().Parse(ctx, "x.rb", []byte("1"))
	require.Error(t, err)
}
