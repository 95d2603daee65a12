package metatype

import (
	"slices"

	"github.com/yaklabco/rbfix/pkg/nodepattern"
)

// Member is a bare node type written directly inside a union, either as
// `send` or as `(send)`.
type Member struct {
	Tag  string
	Node *nodepattern.Node
}

// Match describes one union that can use a metatype.
type Match struct {
	Metatype Metatype

	// Union is the matched union node.
	Union *nodepattern.Node

	// Matched holds the members replaced by the metatype, in the order
	// they appear in the union.
	Matched []Member

	// Others holds the remaining direct members of the union, in order.
	Others []*nodepattern.Node

	// StartIndex is the position of the first matched member among all
	// direct members of the union.
	StartIndex int
}

// Names returns the distinct matched tags in the order they appear.
func (m Match) Names() []string {
	var names []string
	for _, member := range m.Matched {
		if !slices.Contains(names, member.Tag) {
			names = append(names, member.Tag)
		}
	}
	return names
}

// FullReplacement reports whether the whole union collapses to the metatype.
func (m Match) FullReplacement() bool {
	return len(m.Others) == 0
}

// Scan returns the metatype matches of every union in the pattern, ordered
// by the position of the union, outer unions first.
func Scan(root *nodepattern.Node) []Match {
	var s scanner
	s.visit(root, nil)
	slices.SortStableFunc(s.matches, func(a, b Match) int {
		return a.Union.Span.Begin - b.Union.Span.Begin
	})
	return s.matches
}

type scanner struct {
	matches []Match
}

// scope collects the direct members of the innermost union being visited.
type scope struct {
	union   *nodepattern.Node
	members []scopeMember
}

type scopeMember struct {
	tag  string
	node *nodepattern.Node
}

func (sc *scope) add(tag string, node *nodepattern.Node) {
	if sc != nil {
		sc.members = append(sc.members, scopeMember{tag: tag, node: node})
	}
}

// visit walks n. The scope is non-nil only while n is a direct member of a
// union; anything below a member is visited without scope, so bare node
// types nested in compound members never count as members of an outer union.
func (s *scanner) visit(n *nodepattern.Node, sc *scope) {
	switch n.Kind {
	case nodepattern.KindNodeType:
		sc.add(n.Tag, n)

	case nodepattern.KindUnion:
		sc.add("", n)
		s.union(n)

	case nodepattern.KindSequence:
		if len(n.Children) == 1 && n.Children[0].Kind == nodepattern.KindNodeType {
			sc.add(n.Children[0].Tag, n)
			return
		}
		sc.add("", n)
		s.visitChildren(n)

	default:
		// Subsequences and other compound elements are opaque members.
		sc.add("", n)
		s.visitChildren(n)
	}
}

func (s *scanner) visitChildren(n *nodepattern.Node) {
	for _, child := range n.Children {
		s.visit(child, nil)
	}
}

// union opens a fresh scope for n, visits its members, and evaluates them.
func (s *scanner) union(n *nodepattern.Node) {
	sc := &scope{union: n}
	for _, child := range n.Children {
		s.visit(child, sc)
	}
	if match, ok := evaluate(sc); ok {
		s.matches = append(s.matches, match)
	}
}

func evaluate(sc *scope) (Match, bool) {
	var tags []string
	for _, member := range sc.members {
		if member.tag != "" && !slices.Contains(tags, member.tag) {
			tags = append(tags, member.tag)
		}
	}

	metatype, ok := lookup(tags)
	if !ok {
		return Match{}, false
	}

	match := Match{Metatype: metatype, Union: sc.union, StartIndex: -1}
	for i, member := range sc.members {
		if member.tag != "" && metatype.Requires(member.tag) {
			if match.StartIndex < 0 {
				match.StartIndex = i
			}
			match.Matched = append(match.Matched, Member{Tag: member.tag, Node: member.node})
			continue
		}
		match.Others = append(match.Others, member.node)
	}

	// Removing members from a piped union would leave dangling separators.
	if sc.union.Piped && len(match.Others) > 0 {
		return Match{}, false
	}

	return match, true
}
