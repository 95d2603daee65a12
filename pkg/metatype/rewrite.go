package metatype

import (
	"fmt"
	"strings"

	"github.com/yaklabco/rbfix/pkg/fix"
	"github.com/yaklabco/rbfix/pkg/nodepattern"
	"github.com/yaklabco/rbfix/pkg/srcrange"
)

// Location maps pattern text offsets to the source buffer.
type Location struct {
	// Anchor is the source range the pattern text is measured from.
	Anchor srcrange.Range

	// Offset is added to pattern offsets before mapping.
	Offset int

	// Heredoc is set when the pattern is a heredoc body.
	Heredoc bool
}

// StringLocation locates a pattern written as a quoted string literal. The
// pattern text starts one byte after the opening quote.
func StringLocation(literal srcrange.Range) Location {
	return Location{Anchor: literal, Offset: 1}
}

// HeredocLocation locates a pattern written as a heredoc body.
func HeredocLocation(body srcrange.Range) Location {
	return Location{Anchor: body, Heredoc: true}
}

// Range maps a pattern span to the source buffer.
func (l Location) Range(span nodepattern.Span) srcrange.Range {
	return l.Anchor.Adjust(span.Begin+l.Offset, 0).Resize(span.Len())
}

// Message returns the offense message for a match.
func Message(m Match) string {
	return fmt.Sprintf("Replace `%s` in node pattern union with `%s`.",
		strings.Join(m.Names(), "`, `"), m.Metatype.Name)
}

// Rewrite computes the offense range and the edits that apply a match.
//
// A union with no other members is replaced as a whole by the metatype name.
// Otherwise each matched member is removed together with the blanks on its
// left, and for every member after the first also the line breaks before
// it, and the metatype name is inserted where the first member was.
func Rewrite(m Match, loc Location) (srcrange.Range, []fix.Edit) {
	offense := loc.Range(m.Union.Span)

	if m.FullReplacement() {
		return offense, []fix.Edit{fix.Replace(offense, m.Metatype.Name)}
	}

	edits := make([]fix.Edit, 0, len(m.Matched)+1)
	var first srcrange.Range
	for i, member := range m.Matched {
		removed := loc.Range(member.Node.Span).WithSurroundingSpace(srcrange.SideLeft, i > 0)
		if i == 0 {
			first = removed
		}
		edits = append(edits, fix.Remove(removed))
	}

	edits = append(edits, fix.InsertBefore(first, padding(m, loc, first)+m.Metatype.Name))

	return offense, edits
}

func padding(m Match, loc Location, first srcrange.Range) string {
	// Heredoc indentation is restored only when the removal took it, that is
	// when the first removed range starts at column 0. Elsewhere the removal
	// took a single blank, so a single space goes back.
	if loc.Heredoc && first.Column() == 0 {
		line := first.SourceLine()
		return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	}
	if m.StartIndex > 0 {
		return " "
	}
	return ""
}
