package fix

// ApplyEdits returns content with edits applied in one pass. Edits must come
// from PrepareEdits or PrepareEditsFiltered. The input slice is not modified.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	size := len(content)
	for _, edit := range edits {
		size += len(edit.NewText) - (edit.EndOffset - edit.StartOffset)
	}

	out := make([]byte, 0, size)
	pos := 0
	for _, edit := range edits {
		out = append(out, content[pos:edit.StartOffset]...)
		out = append(out, edit.NewText...)
		pos = edit.EndOffset
	}
	return append(out, content[pos:]...)
}
