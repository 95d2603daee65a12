package directive

import (
	"math"
	"strings"

	"github.com/yaklabco/rbfix/pkg/srcrange"
)

// LineRange is an inclusive range of 1-based lines.
type LineRange struct {
	Start int
	End   int
}

// Contains reports whether line lies in the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// Suppression records one rule silenced over a range of lines.
type Suppression struct {
	Name  string
	Lines LineRange
	Kind  Kind
}

// Index answers whether a rule is suppressed on a given line.
type Index struct {
	suppressions []Suppression
}

// BuildIndex scans a file's comments in source order.
//
// A directive that shares its line with code applies to that line only. A
// directive alone on its line opens a region that lasts until an enable
// directive naming the same rule, or until the end of the file.
func BuildIndex(comments []srcrange.Range) *Index {
	idx := &Index{}
	open := make(map[string]Suppression)
	var order []string

	for _, rng := range comments {
		comment := Parse(rng)
		if !comment.IsDirective() {
			continue
		}
		line := rng.FirstLine()

		if comment.Kind == KindEnable {
			for _, name := range comment.Names {
				for _, openName := range order {
					sup, ok := open[openName]
					if !ok || !(name == AllRules || name == openName) {
						continue
					}
					sup.Lines.End = line
					idx.suppressions = append(idx.suppressions, sup)
					delete(open, openName)
				}
			}
			continue
		}

		if !ownLine(rng) {
			for _, name := range comment.Names {
				idx.suppressions = append(idx.suppressions, Suppression{
					Name:  name,
					Lines: LineRange{Start: line, End: line},
					Kind:  comment.Kind,
				})
			}
			continue
		}

		for _, name := range comment.Names {
			if _, exists := open[name]; exists {
				continue
			}
			open[name] = Suppression{
				Name:  name,
				Lines: LineRange{Start: line, End: math.MaxInt},
				Kind:  comment.Kind,
			}
			order = append(order, name)
		}
	}

	for _, name := range order {
		if sup, ok := open[name]; ok {
			idx.suppressions = append(idx.suppressions, sup)
			delete(open, name)
		}
	}

	return idx
}

// Disabled reports whether rule is suppressed on the 1-based line.
func (idx *Index) Disabled(rule string, line int) bool {
	if idx == nil {
		return false
	}
	for _, sup := range idx.suppressions {
		if sup.Lines.Contains(line) && nameMatches(sup.Name, rule) {
			return true
		}
	}
	return false
}

// Suppressions returns every recorded suppression.
func (idx *Index) Suppressions() []Suppression {
	return idx.suppressions
}

func ownLine(rng srcrange.Range) bool {
	line := rng.SourceLine()
	return strings.TrimSpace(line[:rng.Column()]) == ""
}
