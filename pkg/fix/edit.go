// Package fix provides text edit types and application logic for auto-correction.
//
// Correction engines describe their changes as Edit values anchored on source
// ranges. Edits are lowered to TextEdit byte replacements, validated, sorted,
// and applied in a single pass.
package fix

import (
	"fmt"
	"slices"
)

// TextEdit represents a single text replacement in a file.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Span is anything with absolute begin and end byte offsets.
type Span interface {
	Begin() int
	End() int
}

// EditKind identifies the shape of an Edit.
type EditKind uint8

// Edit kinds.
const (
	EditInsertBefore EditKind = iota
	EditInsertAfter
	EditReplace
	EditRemove
	EditWrap
)

func (k EditKind) String() string {
	switch k {
	case EditInsertBefore:
		return "insert_before"
	case EditInsertAfter:
		return "insert_after"
	case EditReplace:
		return "replace"
	case EditRemove:
		return "remove"
	case EditWrap:
		return "wrap"
	default:
		return fmt.Sprintf("EditKind(%d)", uint8(k))
	}
}

// Edit is a range-anchored change produced by a correction engine.
type Edit struct {
	Kind  EditKind
	Start int
	End   int

	// Text is the inserted or replacement text, or the prefix of a wrap.
	Text string

	// Suffix is the text appended after the range of a wrap.
	Suffix string
}

// InsertBefore inserts text at the start of span.
func InsertBefore(span Span, text string) Edit {
	return Edit{Kind: EditInsertBefore, Start: span.Begin(), End: span.End(), Text: text}
}

// InsertAfter inserts text at the end of span.
func InsertAfter(span Span, text string) Edit {
	return Edit{Kind: EditInsertAfter, Start: span.Begin(), End: span.End(), Text: text}
}

// Replace replaces the text of span.
func Replace(span Span, text string) Edit {
	return Edit{Kind: EditReplace, Start: span.Begin(), End: span.End(), Text: text}
}

// Remove deletes the text of span.
func Remove(span Span) Edit {
	return Edit{Kind: EditRemove, Start: span.Begin(), End: span.End()}
}

// Wrap surrounds span with prefix and suffix.
func Wrap(span Span, prefix, suffix string) Edit {
	return Edit{Kind: EditWrap, Start: span.Begin(), End: span.End(), Text: prefix, Suffix: suffix}
}

// TextEdits lowers the edit to byte replacements.
func (e Edit) TextEdits() []TextEdit {
	switch e.Kind {
	case EditInsertBefore:
		return []TextEdit{{StartOffset: e.Start, EndOffset: e.Start, NewText: e.Text}}
	case EditInsertAfter:
		return []TextEdit{{StartOffset: e.End, EndOffset: e.End, NewText: e.Text}}
	case EditReplace:
		return []TextEdit{{StartOffset: e.Start, EndOffset: e.End, NewText: e.Text}}
	case EditRemove:
		return []TextEdit{{StartOffset: e.Start, EndOffset: e.End}}
	case EditWrap:
		return []TextEdit{
			{StartOffset: e.Start, EndOffset: e.Start, NewText: e.Text},
			{StartOffset: e.End, EndOffset: e.End, NewText: e.Suffix},
		}
	default:
		return nil
	}
}

func (e Edit) String() string {
	if e.Kind == EditWrap {
		return fmt.Sprintf("%s[%d:%d](%q, %q)", e.Kind, e.Start, e.End, e.Text, e.Suffix)
	}
	return fmt.Sprintf("%s[%d:%d](%q)", e.Kind, e.Start, e.End, e.Text)
}

// Lower converts edits to text edits, preserving order.
func Lower(edits []Edit) []TextEdit {
	out := make([]TextEdit, 0, len(edits))
	for _, e := range edits {
		out = append(out, e.TextEdits()...)
	}
	return out
}

// CheckDisjoint reports a ConflictError if any two of the edits touch
// overlapping bytes. Insertions at the boundary of another edit are allowed.
func CheckDisjoint(edits []Edit) error {
	lowered := Lower(edits)
	SortEdits(lowered)
	return DetectConflicts(lowered)
}

// EditBuilder accumulates text edits for a file.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates a new EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: make([]TextEdit, 0),
	}
}

// Add lowers and appends range-anchored edits.
func (b *EditBuilder) Add(edits ...Edit) {
	b.Edits = append(b.Edits, Lower(edits)...)
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Insert adds an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// Clone returns a copy of the accumulated edits.
func (b *EditBuilder) Clone() []TextEdit {
	return slices.Clone(b.Edits)
}
