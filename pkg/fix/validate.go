package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError reports a text edit whose range does not fit the content.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError reports two text edits that touch the same bytes.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.StartOffset, e.Edit1.EndOffset,
		e.Edit2.StartOffset, e.Edit2.EndOffset)
}

// ValidateEdits returns the first edit whose range falls outside
// [0, contentLen] or is reversed.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		var msg string
		switch {
		case edit.StartOffset < 0:
			msg = "start offset is negative"
		case edit.EndOffset < edit.StartOffset:
			msg = "end offset is before start offset"
		case edit.EndOffset > contentLen:
			msg = fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen)
		default:
			continue
		}
		return &ValidationError{Edit: edit, Message: msg}
	}
	return nil
}

// SortEdits orders edits by start offset, then end offset. The sort is
// stable so insertions at one offset keep the order they were produced in.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.EndOffset, b.EndOffset)
	})
}

// DetectConflicts returns a ConflictError for the first pair of sorted edits
// that overlap.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		if edits[i].StartOffset < edits[i-1].EndOffset {
			return &ConflictError{Edit1: edits[i-1], Edit2: edits[i]}
		}
	}
	return nil
}

// PrepareEdits validates a copy of edits, sorts it, and fails on the first
// overlap. The result is ready for ApplyEdits.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)
	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}

// PrepareEditsFiltered validates and sorts a copy of edits, then resolves
// overlaps instead of failing on them. Overlapping deletions are merged into
// one deletion over their union. Any other edit that overlaps an earlier
// accepted edit is skipped. The merged count is the number of deletions
// folded into another.
//
// Only range validation produces an error.
func PrepareEditsFiltered(edits []TextEdit, contentLen int) ([]TextEdit, []TextEdit, int, error) {
	if len(edits) == 0 {
		return nil, nil, 0, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, 0, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)
	accepted, skipped, merged := MergeAndFilterConflicts(sorted)
	return accepted, skipped, merged, nil
}

// MergeAndFilterConflicts resolves overlaps in sorted edits the way
// PrepareEditsFiltered does.
func MergeAndFilterConflicts(edits []TextEdit) ([]TextEdit, []TextEdit, int) {
	if len(edits) == 0 {
		return nil, nil, 0
	}

	var (
		accepted = make([]TextEdit, 0, len(edits))
		skipped  []TextEdit
		merged   int
		pending  = edits[0]
	)
	for _, edit := range edits[1:] {
		switch {
		case edit.StartOffset >= pending.EndOffset:
			accepted = append(accepted, pending)
			pending = edit
		case pending.NewText == "" && edit.NewText == "":
			pending.EndOffset = max(pending.EndOffset, edit.EndOffset)
			merged++
		default:
			skipped = append(skipped, edit)
		}
	}
	return append(accepted, pending), skipped, merged
}
