// Package treesitter provides a Ruby parser built on the tree-sitter Ruby
// grammar. It implements lint.Parser by converting the concrete syntax tree
// into a rubyast.File.
package treesitter

import (
	"context"
	"errors"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"

	"github.com/yaklabco/rbfix/pkg/rubyast"
	"github.com/yaklabco/rbfix/pkg/srcrange"
)

// ErrNoTree is returned when tree-sitter produces no tree for the input.
var ErrNoTree = errors.New("tree-sitter returned no tree")

// Parser parses Ruby source. It is safe for concurrent use: every call to
// Parse uses its own tree-sitter parser.
type Parser struct {
	language *tree_sitter.Language
}

// New creates a Ruby parser.
func New() *Parser {
	return &Parser{
		language: tree_sitter.NewLanguage(tree_sitter_ruby.Language()),
	}
}

// Parse converts Ruby source into a rubyast.File. Syntax errors do not fail
// the parse: the recovered tree is returned with HasErrors set.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*rubyast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	tsParser := tree_sitter.NewParser()
	defer tsParser.Close()

	if err := tsParser.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("set ruby language: %w", err)
	}

	src := copyContent(content)
	tree := tsParser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTree)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	buf := srcrange.NewBuffer(path, src)
	root := tree.RootNode()

	m := newMapper(src, buf)
	m.collect(root)

	return &rubyast.File{
		Path:      path,
		Buffer:    buf,
		Root:      m.convert(root),
		Comments:  m.comments,
		HasErrors: root.HasError(),
	}, nil
}

// copyContent returns a copy so the tree never aliases caller memory.
func copyContent(content []byte) []byte {
	if content == nil {
		return []byte{}
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out
}
