// Package metatype finds node pattern unions that spell out every member of a
// node metatype, such as {send csend} for call, and rewrites them to use the
// metatype name.
package metatype

import "slices"

// Metatype is a named group of node types.
type Metatype struct {
	Name string
	Tags []string
}

// table is ordered: the first metatype whose tags are all present wins.
var table = []Metatype{
	{Name: "argument", Tags: []string{
		"arg", "optarg", "restarg", "kwarg", "kwoptarg", "kwrestarg", "blockarg", "forward_arg", "shadowarg",
	}},
	{Name: "boolean", Tags: []string{"true", "false"}},
	{Name: "call", Tags: []string{"send", "csend"}},
	{Name: "numeric", Tags: []string{"int", "float", "rational", "complex"}},
	{Name: "range", Tags: []string{"irange", "erange"}},
}

// Table returns a copy of the metatype table in match order.
func Table() []Metatype {
	out := make([]Metatype, len(table))
	for i, m := range table {
		out[i] = Metatype{Name: m.Name, Tags: slices.Clone(m.Tags)}
	}
	return out
}

// lookup returns the first metatype whose tags are all in tags.
func lookup(tags []string) (Metatype, bool) {
	for _, m := range table {
		if containsAll(tags, m.Tags) {
			return m, true
		}
	}
	return Metatype{}, false
}

func containsAll(set, required []string) bool {
	for _, tag := range required {
		if !slices.Contains(set, tag) {
			return false
		}
	}
	return true
}

// Requires reports whether tag belongs to the metatype.
func (m Metatype) Requires(tag string) bool {
	return slices.Contains(m.Tags, tag)
}
