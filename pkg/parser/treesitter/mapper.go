package treesitter

import (
	"bytes"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/yaklabco/rbfix/pkg/rubyast"
	"github.com/yaklabco/rbfix/pkg/srcrange"
)

// Grammar node types consumed by the mapper.
const (
	nodeProgram          = "program"
	nodeComment          = "comment"
	nodeCall             = "call"
	nodeString           = "string"
	nodeChainedString    = "chained_string"
	nodeSubshell         = "subshell"
	nodeEscapeSequence   = "escape_sequence"
	nodeInterpolation    = "interpolation"
	nodeHeredocBeginning = "heredoc_beginning"
	nodeHeredocBody      = "heredoc_body"
	nodeHeredocEnd       = "heredoc_end"
	nodeArray            = "array"
	nodeStringArray      = "string_array"
	nodeSymbolArray      = "symbol_array"
	nodeSimpleSymbol     = "simple_symbol"
)

const (
	fieldMethod    = "method"
	fieldReceiver  = "receiver"
	fieldArguments = "arguments"
)

// mapper converts a tree-sitter tree into rubyast nodes.
//
// tree-sitter reports a heredoc as two separate nodes: the opener where the
// literal is used and the body after the end of the line. Bodies are paired
// with openers in document order.
type mapper struct {
	src      []byte
	buf      *srcrange.Buffer
	bodies   []*tree_sitter.Node
	next     int
	comments []srcrange.Range
}

func newMapper(src []byte, buf *srcrange.Buffer) *mapper {
	return &mapper{src: src, buf: buf}
}

// collect records comments and heredoc bodies in document order.
func (m *mapper) collect(n *tree_sitter.Node) {
	switch n.Kind() {
	case nodeComment:
		m.comments = append(m.comments, m.rng(n))
		return
	case nodeHeredocBody:
		m.bodies = append(m.bodies, n)
		return
	}
	for i := range n.ChildCount() {
		if child := n.Child(i); child != nil {
			m.collect(child)
		}
	}
}

func (m *mapper) convert(n *tree_sitter.Node) *rubyast.Node {
	switch n.Kind() {
	case nodeComment, nodeHeredocBody:
		return nil
	case nodeProgram:
		return m.generic(n, rubyast.KindProgram)
	case nodeCall:
		return m.call(n)
	case nodeString:
		return m.str(n)
	case nodeChainedString:
		node := m.generic(n, rubyast.KindDStr)
		node.Interpolated = hasChild(n, nodeInterpolation)
		for _, child := range node.Children {
			node.Interpolated = node.Interpolated || child.Interpolated
		}
		return node
	case nodeSubshell:
		node := m.generic(n, rubyast.KindXStr)
		node.Interpolated = hasChild(n, nodeInterpolation)
		return node
	case nodeHeredocBeginning:
		return m.heredoc(n)
	case nodeArray:
		return m.generic(n, rubyast.KindArray)
	case nodeStringArray, nodeSymbolArray:
		node := m.generic(n, rubyast.KindArray)
		node.PercentLiteral = true
		return node
	case nodeSimpleSymbol:
		node := m.leaf(n, rubyast.KindSym)
		node.Value = strings.TrimPrefix(node.Source(), ":")
		return node
	default:
		return m.generic(n, rubyast.KindOther)
	}
}

func (m *mapper) leaf(n *tree_sitter.Node, kind rubyast.Kind) *rubyast.Node {
	return &rubyast.Node{Kind: kind, Type: n.Kind(), Range: m.rng(n)}
}

func (m *mapper) generic(n *tree_sitter.Node, kind rubyast.Kind) *rubyast.Node {
	node := m.leaf(n, kind)
	node.Children = m.namedChildren(n)
	return node
}

func (m *mapper) namedChildren(n *tree_sitter.Node) []*rubyast.Node {
	var out []*rubyast.Node
	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		if converted := m.convert(child); converted != nil {
			out = append(out, converted)
		}
	}
	return out
}

func (m *mapper) call(n *tree_sitter.Node) *rubyast.Node {
	node := m.leaf(n, rubyast.KindSend)

	method := n.ChildByFieldName(fieldMethod)
	receiver := n.ChildByFieldName(fieldReceiver)
	args := n.ChildByFieldName(fieldArguments)

	if method != nil {
		node.Method = string(m.text(method))
	}
	if receiver != nil {
		node.Receiver = m.convert(receiver)
	}
	if args != nil {
		node.Args = m.namedChildren(args)
	}

	if node.Receiver != nil {
		node.Children = append(node.Children, node.Receiver)
	}
	node.Children = append(node.Children, node.Args...)

	// Blocks and anything else hanging off the call.
	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		if child == nil || sameNode(child, method) || sameNode(child, receiver) || sameNode(child, args) {
			continue
		}
		if converted := m.convert(child); converted != nil {
			node.Children = append(node.Children, converted)
		}
	}

	return node
}

func (m *mapper) str(n *tree_sitter.Node) *rubyast.Node {
	node := m.leaf(n, rubyast.KindStr)
	node.Interpolated = hasChild(n, nodeInterpolation)
	node.Escaped = hasChild(n, nodeEscapeSequence)
	if node.Interpolated {
		node.Kind = rubyast.KindDStr
	}
	node.Children = m.namedChildren(n)

	text := m.text(n)
	if len(text) >= 2 && (text[0] == '\'' || text[0] == '"') && text[len(text)-1] == text[0] {
		inner := text[1 : len(text)-1]
		if bytes.IndexByte(inner, '\\') >= 0 {
			node.Escaped = true
		}
		if !node.Interpolated && !node.Escaped {
			node.Value = string(inner)
		}
	}

	return node
}

func (m *mapper) heredoc(n *tree_sitter.Node) *rubyast.Node {
	if m.next >= len(m.bodies) {
		return m.leaf(n, rubyast.KindOther)
	}
	body := m.bodies[m.next]
	m.next++

	var end *tree_sitter.Node
	for i := range body.NamedChildCount() {
		if child := body.NamedChild(i); child != nil && child.Kind() == nodeHeredocEnd {
			end = child
		}
	}
	if end == nil {
		return m.leaf(n, rubyast.KindOther)
	}

	endRange := m.rng(end)
	bodyEnd := m.buf.LineStart(endRange.FirstLine())
	bodyBegin := min(m.lineStartAtOrAfter(int(body.StartByte())), bodyEnd)

	node := m.leaf(n, rubyast.KindStr)
	node.Interpolated = hasChild(body, nodeInterpolation)
	if node.Interpolated {
		node.Kind = rubyast.KindDStr
	}
	if bytes.Contains(m.text(n), []byte("`")) {
		node.Kind = rubyast.KindXStr
	}
	node.Heredoc = &rubyast.Heredoc{
		Body: srcrange.New(m.buf, bodyBegin, bodyEnd),
		End:  endRange,
	}

	return node
}

// lineStartAtOrAfter returns offset if it begins a line, otherwise the start
// of the following line.
func (m *mapper) lineStartAtOrAfter(offset int) int {
	if offset == 0 || m.src[offset-1] == '\n' {
		return offset
	}
	if idx := bytes.IndexByte(m.src[offset:], '\n'); idx >= 0 {
		return offset + idx + 1
	}
	return len(m.src)
}

func (m *mapper) rng(n *tree_sitter.Node) srcrange.Range {
	return srcrange.New(m.buf, int(n.StartByte()), int(n.EndByte()))
}

func (m *mapper) text(n *tree_sitter.Node) []byte {
	return m.src[n.StartByte():n.EndByte()]
}

func hasChild(n *tree_sitter.Node, kind string) bool {
	for i := range n.NamedChildCount() {
		if child := n.NamedChild(i); child != nil && child.Kind() == kind {
			return true
		}
	}
	return false
}

func sameNode(a, b *tree_sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Kind() == b.Kind()
}
