package fix

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffContext is the number of unchanged lines shown around each change.
const DiffContext = 3

// Diff is a line-based unified diff of one file.
type Diff struct {
	// Path is the file path used in headers.
	Path string

	Original []byte
	Modified []byte

	Hunks []DiffHunk

	// Additions and Deletions count added and removed lines over all hunks.
	Additions int
	Deletions int
}

// DiffHunk is one "@@" section of a unified diff. Start lines are 1-based.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int

	Lines []DiffLine
}

// DiffLine is a line of a hunk without its diff prefix.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind tells context lines from added and removed ones.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

func (k DiffLineKind) prefix() byte {
	switch k {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	default:
		return ' '
	}
}

// GenerateDiff compares original and modified line by line and returns nil
// when they hold the same lines.
func GenerateDiff(path string, original, modified []byte) *Diff {
	before, after := splitLines(original), splitLines(modified)
	if slices.Equal(before, after) {
		return nil
	}

	diff := &Diff{Path: path, Original: original, Modified: modified}
	matcher := difflib.NewMatcher(before, after)
	for _, group := range matcher.GetGroupedOpCodes(DiffContext) {
		hunk := buildHunk(group, before, after)
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				diff.Additions++
			case DiffLineRemove:
				diff.Deletions++
			}
		}
		diff.Hunks = append(diff.Hunks, hunk)
	}
	if len(diff.Hunks) == 0 {
		return nil
	}
	return diff
}

func buildHunk(group []difflib.OpCode, before, after []string) DiffHunk {
	first, last := group[0], group[len(group)-1]
	hunk := DiffHunk{
		OriginalStart: first.I1 + 1,
		OriginalCount: last.I2 - first.I1,
		ModifiedStart: first.J1 + 1,
		ModifiedCount: last.J2 - first.J1,
	}

	for _, op := range group {
		if op.Tag == 'e' {
			for _, line := range before[op.I1:op.I2] {
				hunk.Lines = append(hunk.Lines, DiffLine{Kind: DiffLineContext, Content: line})
			}
			continue
		}
		if op.Tag == 'r' || op.Tag == 'd' {
			for _, line := range before[op.I1:op.I2] {
				hunk.Lines = append(hunk.Lines, DiffLine{Kind: DiffLineRemove, Content: line})
			}
		}
		if op.Tag == 'r' || op.Tag == 'i' {
			for _, line := range after[op.J1:op.J2] {
				hunk.Lines = append(hunk.Lines, DiffLine{Kind: DiffLineAdd, Content: line})
			}
		}
	}
	return hunk
}

// HasChanges reports whether the diff has at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the "---"/"+++" headers and the hunks.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Lines {
			sb.WriteByte(line.Kind.prefix())
			sb.WriteString(line.Content)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// splitLines splits content on "\n". A final newline does not start an extra
// empty line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}
