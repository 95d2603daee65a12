// Package srcrange provides an immutable source buffer and byte ranges over it.
//
// A Range is a half-open byte interval [Begin, End) tied to the Buffer it was
// created from. Ranges are values: every operation returns a new Range and the
// receiver is never modified. Misuse such as mixing buffers or constructing an
// inverted interval is a programming error and panics.
package srcrange

import "sort"

// Buffer is a read-only source text with a precomputed line index.
type Buffer struct {
	name    string
	content []byte
	lines   []lineInfo
}

type lineInfo struct {
	// start is the byte index of the first byte of the line.
	start int

	// newline is the byte index where the line terminator begins.
	// For a final line without terminator it equals end.
	newline int

	// end is the byte index just after the terminator.
	end int
}

// NewBuffer creates a Buffer over content. The content slice must not be
// modified afterwards.
func NewBuffer(name string, content []byte) *Buffer {
	return &Buffer{
		name:    name,
		content: content,
		lines:   buildLines(content),
	}
}

func buildLines(content []byte) []lineInfo {
	lines := make([]lineInfo, 0, 16)
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, lineInfo{start: lineStart, newline: newlineStart, end: idx + 1})
		lineStart = idx + 1
	}

	// The last line exists even when empty so that an offset equal to the
	// content length still resolves to a line.
	lines = append(lines, lineInfo{start: lineStart, newline: len(content), end: len(content)})

	return lines
}

// Name returns the buffer name, usually a file path.
func (b *Buffer) Name() string {
	return b.name
}

// Source returns the full buffer content.
func (b *Buffer) Source() []byte {
	return b.content
}

// Len returns the content length in bytes.
func (b *Buffer) Len() int {
	return len(b.content)
}

// LineCount returns the number of lines, counting a trailing empty line.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineAt converts a byte offset to a 1-based line and 0-based byte column.
// Offsets outside the buffer panic.
func (b *Buffer) LineAt(offset int) (int, int) {
	b.checkOffset(offset)

	idx := sort.Search(len(b.lines), func(i int) bool {
		return b.lines[i].end > offset
	})
	if idx >= len(b.lines) {
		idx = len(b.lines) - 1
	}

	return idx + 1, offset - b.lines[idx].start
}

// Line returns the text of a 1-based line without its terminator.
func (b *Buffer) Line(line int) string {
	info := b.line(line)
	return string(b.content[info.start:info.newline])
}

// LineStart returns the byte offset where a 1-based line begins.
func (b *Buffer) LineStart(line int) int {
	return b.line(line).start
}

// LineEnd returns the byte offset just past the terminator of a 1-based
// line. For a final line without terminator it is the content length.
func (b *Buffer) LineEnd(line int) int {
	return b.line(line).end
}

// Newline returns the terminator of the first line, "\r\n" or "\n". A buffer
// without any terminated line reports "\n".
func (b *Buffer) Newline() string {
	if len(b.lines) < 2 {
		return "\n"
	}
	first := b.lines[0]
	return string(b.content[first.newline:first.end])
}

// LineRange returns the range of a 1-based line, excluding its terminator.
func (b *Buffer) LineRange(line int) Range {
	info := b.line(line)
	return New(b, info.start, info.newline)
}

// Slice returns the text between two offsets.
func (b *Buffer) Slice(begin, end int) string {
	return string(b.content[begin:end])
}

func (b *Buffer) line(line int) lineInfo {
	if line < 1 || line > len(b.lines) {
		panic(&ContractError{Op: "line", Message: "line number out of range"})
	}
	return b.lines[line-1]
}

func (b *Buffer) checkOffset(offset int) {
	if offset < 0 || offset > len(b.content) {
		panic(&ContractError{Op: "offset", Message: "offset outside buffer"})
	}
}
