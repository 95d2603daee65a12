// Package rubyast provides a compact Ruby syntax tree for correction engines.
//
// The tree keeps only what the correction rules need: node kinds for calls,
// string-like literals, heredocs, arrays, and symbols, each with a source
// range. Everything else is kept as KindOther so that traversal still reaches
// nested literals.
package rubyast

import "github.com/yaklabco/rbfix/pkg/srcrange"

// Kind identifies the variant of a Node.
type Kind uint8

const (
	// KindOther is any construct without a dedicated variant.
	KindOther Kind = iota
	// KindProgram is the root of a file.
	KindProgram
	// KindSend is a method call.
	KindSend
	// KindStr is a string literal without interpolation.
	KindStr
	// KindDStr is an interpolated or concatenated string literal.
	KindDStr
	// KindXStr is a backtick or %x shell literal.
	KindXStr
	// KindArray is an array literal.
	KindArray
	// KindSym is a symbol literal.
	KindSym
)

var kindNames = [...]string{
	KindOther:   "other",
	KindProgram: "program",
	KindSend:    "send",
	KindStr:     "str",
	KindDStr:    "dstr",
	KindXStr:    "xstr",
	KindArray:   "array",
	KindSym:     "sym",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Heredoc holds the extra locations of a heredoc literal.
type Heredoc struct {
	// Body spans the body lines, including the final newline before the
	// terminator.
	Body srcrange.Range

	// End spans the terminator identifier.
	End srcrange.Range
}

// Node is one syntax tree node.
type Node struct {
	Kind Kind

	// Type is the grammar node type the node was built from.
	Type string

	// Range is the node's source range. For a heredoc it covers the opener
	// only, as in `<<~PATTERN`.
	Range srcrange.Range

	Children []*Node

	// Method is the called method name of a KindSend node.
	Method string

	// Receiver is the explicit receiver of a KindSend node, if any.
	Receiver *Node

	// Args are the arguments of a KindSend node.
	Args []*Node

	// Value is the literal content of a KindStr or KindSym node. It is only
	// set when the content equals the source text between the delimiters.
	Value string

	// Escaped marks string literals whose content contains escape sequences.
	Escaped bool

	// Interpolated marks string literals containing #{} interpolation.
	Interpolated bool

	// PercentLiteral marks arrays written as %w[], %i[], and similar.
	PercentLiteral bool

	// Heredoc is set for heredoc literals.
	Heredoc *Heredoc
}

// IsHeredoc reports whether the node is a heredoc literal.
func (n *Node) IsHeredoc() bool {
	return n.Heredoc != nil
}

// IsPercentArray reports whether the node is an array in percent-literal form.
func (n *Node) IsPercentArray() bool {
	return n.Kind == KindArray && n.PercentLiteral
}

// IsStringLike reports whether the node is a str, dstr or xstr literal.
func (n *Node) IsStringLike() bool {
	return n.Kind == KindStr || n.Kind == KindDStr || n.Kind == KindXStr
}

// IsSend reports whether the node calls the named method.
func (n *Node) IsSend(method string) bool {
	return n.Kind == KindSend && n.Method == method
}

// Source returns the source text of the node's range.
func (n *Node) Source() string {
	return n.Range.Source()
}

// HeredocRange returns the heredoc opener joined with its terminator.
func (n *Node) HeredocRange() srcrange.Range {
	return n.Range.Join(n.Heredoc.End)
}

// IsPlainString reports whether the node is a quoted string literal whose
// Value equals its source text between the quotes.
func (n *Node) IsPlainString() bool {
	if n.Kind != KindStr || n.Heredoc != nil || n.Escaped || n.Interpolated {
		return false
	}
	src := n.Source()
	return len(src) >= 2 && (src[0] == '\'' || src[0] == '"')
}
