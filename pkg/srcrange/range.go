package srcrange

import (
	"cmp"
	"fmt"
)

// ContractError is the panic value raised when a Range operation is misused.
type ContractError struct {
	Op      string
	Message string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("srcrange: %s: %s", e.Op, e.Message)
}

// Side selects which side of a range WithSurroundingSpace expands.
type Side uint8

const (
	// SideBoth expands in both directions.
	SideBoth Side = iota
	// SideLeft expands towards the start of the buffer.
	SideLeft
	// SideRight expands towards the end of the buffer.
	SideRight
)

// Range is an immutable half-open byte interval over a Buffer.
type Range struct {
	buf   *Buffer
	begin int
	end   int
}

// New creates a Range over buf. It panics if begin > end or if either offset
// lies outside the buffer.
func New(buf *Buffer, begin, end int) Range {
	if buf == nil {
		panic(&ContractError{Op: "new", Message: "nil buffer"})
	}
	if begin > end {
		panic(&ContractError{Op: "new", Message: fmt.Sprintf("begin %d after end %d", begin, end)})
	}
	buf.checkOffset(begin)
	buf.checkOffset(end)

	return Range{buf: buf, begin: begin, end: end}
}

// Buffer returns the buffer the range belongs to.
func (r Range) Buffer() *Buffer { return r.buf }

// Begin returns the inclusive start offset.
func (r Range) Begin() int { return r.begin }

// End returns the exclusive end offset.
func (r Range) End() int { return r.end }

// Size returns the length in bytes.
func (r Range) Size() int { return r.end - r.begin }

// Empty reports whether the range has zero width.
func (r Range) Empty() bool { return r.begin == r.end }

// IsZero reports whether r is the zero Range, not bound to any buffer.
func (r Range) IsZero() bool { return r.buf == nil }

// Source returns the covered text.
func (r Range) Source() string {
	return r.buf.Slice(r.begin, r.end)
}

// FirstLine returns the 1-based line of Begin.
func (r Range) FirstLine() int {
	line, _ := r.buf.LineAt(r.begin)
	return line
}

// LastLine returns the 1-based line of End.
func (r Range) LastLine() int {
	line, _ := r.buf.LineAt(r.end)
	return line
}

// Column returns the 0-based byte column of Begin.
func (r Range) Column() int {
	_, col := r.buf.LineAt(r.begin)
	return col
}

// LastColumn returns the 0-based byte column of End.
func (r Range) LastColumn() int {
	_, col := r.buf.LineAt(r.end)
	return col
}

// SourceLine returns the full text of the first line, without terminator.
func (r Range) SourceLine() string {
	return r.buf.Line(r.FirstLine())
}

// String implements fmt.Stringer.
func (r Range) String() string {
	if r.buf == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s:%d-%d", r.buf.name, r.begin, r.end)
}

// Join returns the smallest range covering both r and other.
func (r Range) Join(other Range) Range {
	r.sameBuffer("join", other)
	return New(r.buf, min(r.begin, other.begin), max(r.end, other.end))
}

// Resize returns a range with the same Begin and the given size. The end is
// clamped to the buffer length.
func (r Range) Resize(size int) Range {
	return New(r.buf, r.begin, min(r.begin+size, r.buf.Len()))
}

// Adjust returns a range with each endpoint moved by the given deltas.
func (r Range) Adjust(beginDelta, endDelta int) Range {
	return New(r.buf, r.begin+beginDelta, r.end+endDelta)
}

// Shift moves both endpoints by delta.
func (r Range) Shift(delta int) Range {
	return r.Adjust(delta, delta)
}

// Disjoint reports whether r and other share no bytes. Two empty ranges are
// disjoint unless they sit at the same offset.
func (r Range) Disjoint(other Range) bool {
	r.sameBuffer("disjoint", other)
	if r.Empty() && other.Empty() {
		return r.begin != other.begin
	}
	return r.begin >= other.end || other.begin >= r.end
}

// Overlaps is the negation of Disjoint.
func (r Range) Overlaps(other Range) bool {
	return !r.Disjoint(other)
}

// Contains reports whether other lies inside r and is not equal to it. An
// empty other must lie strictly inside.
func (r Range) Contains(other Range) bool {
	r.sameBuffer("contains", other)
	need := 1
	if other.Empty() {
		need = 2
	}
	return cmp.Compare(other.begin, r.begin)+cmp.Compare(r.end, other.end) >= need
}

// ExpandToWholeLines extends r to the start of its first line and the end of
// its last line. The terminator of the last line is not included.
func (r Range) ExpandToWholeLines() Range {
	begin := r.begin - r.Column()
	lastLine := r.buf.Line(r.LastLine())
	end := r.end + len(lastLine) - r.LastColumn()
	return New(r.buf, begin, end)
}

// FirstLineRange returns the whole first line of r without its terminator.
func (r Range) FirstLineRange() Range {
	begin := r.begin - r.Column()
	return New(r.buf, begin, begin+len(r.SourceLine()))
}

// WithSurroundingSpace expands r over adjacent spaces and tabs on the chosen
// side. With newlines set it continues over consecutive line feeds that
// follow the blanks.
func (r Range) WithSurroundingSpace(side Side, newlines bool) Range {
	src := r.buf.content
	begin, end := r.begin, r.end

	if side == SideLeft || side == SideBoth {
		for begin > 0 && isBlank(src[begin-1]) {
			begin--
		}
		for newlines && begin > 0 && src[begin-1] == '\n' {
			begin--
		}
	}

	if side == SideRight || side == SideBoth {
		for end < len(src) && isBlank(src[end]) {
			end++
		}
		for newlines && end < len(src) && src[end] == '\n' {
			end++
		}
	}

	return New(r.buf, begin, end)
}

func (r Range) sameBuffer(op string, other Range) {
	if r.buf == nil || r.buf != other.buf {
		panic(&ContractError{Op: op, Message: "ranges belong to different buffers"})
	}
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}
