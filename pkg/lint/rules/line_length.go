package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/rbfix/pkg/directive"
	"github.com/yaklabco/rbfix/pkg/lint"
	"github.com/yaklabco/rbfix/pkg/srcrange"
)

// LineLengthID is the ID of LineLengthRule.
const LineLengthID = "Layout/LineLength"

var uriPattern = regexp.MustCompile(`[a-z][a-z0-9+.-]*://\S+`)

// LineLengthRule flags lines longer than the configured maximum. It has no
// correction; its offenses are the usual input for todo directive placement.
type LineLengthRule struct {
	lint.BaseRule
}

// NewLineLengthRule creates the rule.
func NewLineLengthRule() *LineLengthRule {
	return &LineLengthRule{
		BaseRule: lint.NewBaseRule(
			LineLengthID,
			"line-length",
			"Checks the length of lines in the source code",
			[]string{"layout"},
			false,
		),
	}
}

// Apply checks every line against the max option.
//
// Options:
//   - max: the limit in characters (default 120).
//   - allow_uri: skip lines whose overflow is a URI running to the end of
//     the line (default true).
//   - ignore_cop_directives: do not count a trailing rubocop directive
//     comment (default true).
func (r *LineLengthRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	maxLen := ctx.Config.MaxLineLength()
	allowURI := ctx.OptionBool("allow_uri", true)
	ignoreDirectives := ctx.OptionBool("ignore_cop_directives", true)

	buf := ctx.File.Buffer
	var diags []lint.Diagnostic

	for line := 1; line <= buf.LineCount(); line++ {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}

		text := buf.Line(line)
		if utf8.RuneCountInString(text) <= maxLen {
			continue
		}

		measured := text
		if ignoreDirectives {
			measured = withoutDirective(ctx, line, text)
		}
		length := utf8.RuneCountInString(measured)
		if length <= maxLen {
			continue
		}

		overflow := byteIndexOfRune(measured, maxLen)
		if allowURI && uriRunsToEnd(measured, overflow) {
			continue
		}

		start := buf.LineStart(line)
		rng := srcrange.New(buf, start+overflow, start+len(measured))
		diags = append(diags,
			lint.NewDiagnosticWithRegistry(r.ID(), rng,
				fmt.Sprintf("Line is too long. [%d/%d]", length, maxLen), ctx.Registry).
				WithSuggestion(fmt.Sprintf("Shorten the line to at most %d characters", maxLen)).
				Build())
	}

	return diags, nil
}

// withoutDirective strips a trailing rubocop directive comment, and the
// blanks before it, from the line text.
func withoutDirective(ctx *lint.RuleContext, line int, text string) string {
	comment, ok := ctx.File.CommentAtLine(line)
	if !ok || comment.LastLine() != line {
		return text
	}
	if !directive.Parse(comment).IsDirective() {
		return text
	}
	return strings.TrimRight(text[:comment.Column()], " \t")
}

// byteIndexOfRune returns the byte offset of the n-th rune (0-based) of s.
func byteIndexOfRune(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}

// uriRunsToEnd reports whether a URI starts at or before offset and ends at
// the end of the line, so that no break could shorten the line.
func uriRunsToEnd(line string, offset int) bool {
	for _, loc := range uriPattern.FindAllStringIndex(line, -1) {
		if loc[0] <= offset && loc[1] >= offset && strings.TrimSpace(line[loc[1]:]) == "" {
			return true
		}
	}
	return false
}
