// Package disable places rubocop:todo directives around offenses that cannot
// be corrected automatically.
package disable

import (
	"regexp"

	"github.com/yaklabco/rbfix/pkg/rubyast"
	"github.com/yaklabco/rbfix/pkg/srcrange"
)

// A backslash followed only by blanks before a line end.
var continuationPattern = regexp.MustCompile(`(?m)\\[ \t\r\f\v]*$`)

// FindAtomicSpan returns the multi-line construct that must not be split by a
// comment inserted for violation. Heredocs are probed first, then percent
// literal arrays, then strings continued with a trailing backslash. The first
// candidate found in document order wins. Empty violations never match.
func FindAtomicSpan(violation srcrange.Range, root *rubyast.Node) (srcrange.Range, bool) {
	if violation.Empty() {
		return srcrange.Range{}, false
	}

	nodes := rubyast.Descendants(root)

	for _, n := range nodes {
		if n.IsHeredoc() {
			if span := n.HeredocRange(); span.Contains(violation) {
				return span, true
			}
		}
	}

	for _, n := range nodes {
		if n.IsPercentArray() && overlapsViolation(violation, n.Range) {
			return n.Range, true
		}
	}

	for _, n := range nodes {
		if !isStringContinuation(n) {
			continue
		}
		if span := n.Range.ExpandToWholeLines(); overlapsViolation(violation, span) {
			return span, true
		}
	}

	return srcrange.Range{}, false
}

func overlapsViolation(violation, candidate srcrange.Range) bool {
	return violation.Begin() >= candidate.Begin() && candidate.Overlaps(violation)
}

func isStringContinuation(n *rubyast.Node) bool {
	return n.IsStringLike() && continuationPattern.MatchString(n.Source())
}
