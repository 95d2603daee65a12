// Package nodepattern parses the node pattern language used to describe
// syntax tree shapes in def_node_matcher and def_node_search definitions.
//
// The parser keeps the positions of every node relative to the pattern text
// so that a caller can map pattern nodes back to source ranges. It covers the
// structural part of the language (sequences, unions, node types) precisely;
// everything else is parsed for validity and kept as KindOther.
package nodepattern

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a pattern Node.
type Kind uint8

const (
	// KindOther is any pattern element without structural meaning here,
	// such as wildcards, literals, predicates, captures, and negations.
	KindOther Kind = iota
	// KindSequence is a parenthesized node match: (send nil? :foo).
	KindSequence
	// KindUnion is a set of alternatives: {send csend}.
	KindUnion
	// KindSubsequence is a multi-element alternative inside a piped union.
	KindSubsequence
	// KindNodeType is a bare node type such as send.
	KindNodeType
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindUnion:
		return "union"
	case KindSubsequence:
		return "subsequence"
	case KindNodeType:
		return "node_type"
	default:
		return "other"
	}
}

// Span is a byte range in the pattern text.
type Span struct {
	Begin int
	End   int
}

// Len returns the span length.
func (s Span) Len() int {
	return s.End - s.Begin
}

// Node is one element of a parsed pattern.
type Node struct {
	Kind Kind

	// Tag is the node type name for KindNodeType and a short description
	// for KindOther nodes, such as "capture" or "symbol".
	Tag string

	// Span locates the node in the pattern text.
	Span Span

	Children []*Node

	// Piped is set on unions written with | separators.
	Piped bool
}

// Text returns the node's text within pattern.
func (n *Node) Text(pattern string) string {
	return pattern[n.Span.Begin:n.Span.End]
}

// String renders the node structure for debugging.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Kind {
	case KindNodeType:
		sb.WriteString(n.Tag)
		return
	case KindOther:
		if len(n.Children) == 0 {
			sb.WriteString(n.Tag)
			return
		}
	}

	fmt.Fprintf(sb, "(%s", n.Kind)
	if n.Kind == KindOther {
		fmt.Fprintf(sb, ":%s", n.Tag)
	}
	for _, child := range n.Children {
		sb.WriteByte(' ')
		child.write(sb)
	}
	sb.WriteByte(')')
}
