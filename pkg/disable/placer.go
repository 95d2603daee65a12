package disable

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/rbfix/pkg/directive"
	"github.com/yaklabco/rbfix/pkg/fix"
	"github.com/yaklabco/rbfix/pkg/rubyast"
	"github.com/yaklabco/rbfix/pkg/srcrange"
)

// DefaultMaxLineLength applies when no positive limit is configured.
const DefaultMaxLineLength = 120

// Placer computes the edits that silence offenses of a fixed set of rules in
// one file.
type Placer struct {
	file          *rubyast.File
	names         string
	maxLineLength int
}

// NewPlacer creates a Placer for the given rules. Duplicate rule names are
// dropped, keeping the first occurrence.
func NewPlacer(file *rubyast.File, ruleNames []string, maxLineLength int) *Placer {
	if maxLineLength <= 0 {
		maxLineLength = DefaultMaxLineLength
	}
	return &Placer{
		file:          file,
		names:         strings.Join(uniq(ruleNames), ", "),
		maxLineLength: maxLineLength,
	}
}

// Place returns the edits that put violation under a rubocop:todo directive.
//
// A violation inside a heredoc, percent literal array, or continued string is
// wrapped together with the whole construct. Otherwise a trailing directive is
// appended to the line, or merged into a trailing todo directive already
// there, unless the line would grow past the length limit or already ends in
// an unrelated comment. In those cases the line is wrapped in a todo/enable
// pair instead.
func (p *Placer) Place(violation srcrange.Range) []fix.Edit {
	if span, ok := FindAtomicSpan(violation, p.file.Root); ok {
		return []fix.Edit{p.wrap(span.ExpandToWholeLines())}
	}

	var comment directive.Comment
	existing, hasComment := p.file.CommentAtLine(violation.FirstLine())
	if hasComment {
		comment = directive.Parse(existing)
	}

	eol := p.eolComment(comment)
	needed := utf8.RuneCountInString(violation.SourceLine() + eol)

	if (hasComment && !comment.IsTodo()) || needed > p.maxLineLength {
		return []fix.Edit{p.wrap(violation.ExpandToWholeLines())}
	}

	return []fix.Edit{fix.InsertAfter(violation.FirstLineRange(), eol)}
}

func (p *Placer) eolComment(existing directive.Comment) string {
	if existing.IsTodo() {
		return ", " + p.names
	}
	return " # rubocop:todo " + p.names
}

func (p *Placer) wrap(lines srcrange.Range) fix.Edit {
	buf := lines.Buffer()
	withTerminator := srcrange.New(buf, lines.Begin(), buf.LineEnd(lines.LastLine()))
	indent := leadingWhitespace(lines.SourceLine())
	nl := buf.Newline()

	prefix := indent + "# rubocop:todo " + p.names + nl
	suffix := indent + "# rubocop:enable " + p.names + nl

	// The last line of a file may lack its terminator.
	if withTerminator.End() == lines.End() {
		suffix = nl + suffix
	}

	return fix.Wrap(withTerminator, prefix, suffix)
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t\r\f\v"))]
}

func uniq(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}
