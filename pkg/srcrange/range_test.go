package srcrange_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rbfix/pkg/srcrange"
)

func TestBuffer_LineAt(t *testing.T) {
	t.Parallel()

	buf := srcrange.NewBuffer("test.rb", []byte("foo\n  bar\r\nbaz"))

	tests := []struct {
		name     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{name: "start of buffer", offset: 0, wantLine: 1, wantCol: 0},
		{name: "newline belongs to its line", offset: 3, wantLine: 1, wantCol: 3},
		{name: "second line", offset: 6, wantLine: 2, wantCol: 2},
		{name: "crlf line", offset: 9, wantLine: 2, wantCol: 5},
		{name: "last line", offset: 11, wantLine: 3, wantCol: 0},
		{name: "end of buffer", offset: 14, wantLine: 3, wantCol: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			line, col := buf.LineAt(tt.offset)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantCol, col)
		})
	}

	assert.Equal(t, 3, buf.LineCount())
	assert.Equal(t, "  bar", buf.Line(2))
	assert.Equal(t, 4, buf.LineStart(2))
}

func TestBuffer_TrailingNewline(t *testing.T) {
	t.Parallel()

	buf := srcrange.NewBuffer("", []byte("a\n"))
	assert.Equal(t, 2, buf.LineCount())
	assert.Empty(t, buf.Line(2))

	line, col := buf.LineAt(2)
	assert.Equal(t, 2, line)
	assert.Equal(t, 0, col)
}

func TestBuffer_LineEndAndNewline(t *testing.T) {
	t.Parallel()

	buf := srcrange.NewBuffer("", []byte("foo\n  bar\r\nbaz"))
	assert.Equal(t, 4, buf.LineEnd(1))
	assert.Equal(t, 11, buf.LineEnd(2))
	assert.Equal(t, 14, buf.LineEnd(3))
	assert.Equal(t, "\n", buf.Newline())

	tests := []struct {
		content string
		want    string
	}{
		{"a\r\nb\n", "\r\n"},
		{"a\nb\r\n", "\n"},
		{"no terminator", "\n"},
		{"", "\n"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, srcrange.NewBuffer("", []byte(tt.content)).Newline(), "%q", tt.content)
	}
}

func TestNew_Panics(t *testing.T) {
	t.Parallel()

	buf := srcrange.NewBuffer("", []byte("abc"))

	assert.Panics(t, func() { srcrange.New(buf, 2, 1) })
	assert.Panics(t, func() { srcrange.New(buf, 0, 4) })
	assert.Panics(t, func() { srcrange.New(nil, 0, 0) })

	other := srcrange.NewBuffer("", []byte("abc"))
	assert.Panics(t, func() {
		srcrange.New(buf, 0, 1).Join(srcrange.New(other, 0, 1))
	})
}

func TestRange_Derived(t *testing.T) {
	t.Parallel()

	buf := srcrange.NewBuffer("x.rb", []byte("def foo\n  bar(1)\nend\n"))
	rng := srcrange.New(buf, 10, 16)

	assert.Equal(t, "bar(1)", rng.Source())
	assert.Equal(t, 6, rng.Size())
	assert.False(t, rng.Empty())
	assert.Equal(t, 2, rng.FirstLine())
	assert.Equal(t, 2, rng.LastLine())
	assert.Equal(t, 2, rng.Column())
	assert.Equal(t, 8, rng.LastColumn())
	assert.Equal(t, "  bar(1)", rng.SourceLine())
	assert.Equal(t, "x.rb:10-16", rng.String())
}

func TestRange_Arithmetic(t *testing.T) {
	t.Parallel()

	buf := srcrange.NewBuffer("", []byte("0123456789"))
	rng := srcrange.New(buf, 2, 5)

	joined := rng.Join(srcrange.New(buf, 4, 8))
	assert.Equal(t, 2, joined.Begin())
	assert.Equal(t, 8, joined.End())

	resized := rng.Resize(1)
	assert.Equal(t, "2", resized.Source())

	clamped := rng.Resize(100)
	assert.Equal(t, 10, clamped.End())

	adjusted := rng.Adjust(1, 2)
	assert.Equal(t, "3456", adjusted.Source())

	shifted := rng.Shift(3)
	assert.Equal(t, "567", shifted.Source())

	assert.Equal(t, "234", rng.Source(), "operations must not modify the receiver")
}

func TestRange_OverlapsAndContains(t *testing.T) {
	t.Parallel()

	buf := srcrange.NewBuffer("", []byte("0123456789"))
	r := func(b, e int) srcrange.Range { return srcrange.New(buf, b, e) }

	tests := []struct {
		name         string
		a, b         srcrange.Range
		wantOverlaps bool
		wantContains bool
	}{
		{name: "inner", a: r(0, 10), b: r(2, 4), wantOverlaps: true, wantContains: true},
		{name: "shared start", a: r(0, 10), b: r(0, 4), wantOverlaps: true, wantContains: true},
		{name: "equal", a: r(2, 4), b: r(2, 4), wantOverlaps: true, wantContains: false},
		{name: "adjacent", a: r(0, 2), b: r(2, 4), wantOverlaps: false, wantContains: false},
		{name: "partial", a: r(0, 5), b: r(3, 8), wantOverlaps: true, wantContains: false},
		{name: "empty inside", a: r(0, 5), b: r(3, 3), wantOverlaps: true, wantContains: true},
		{name: "empty at edge", a: r(0, 5), b: r(0, 0), wantOverlaps: false, wantContains: false},
		{name: "two empty same offset", a: r(3, 3), b: r(3, 3), wantOverlaps: true, wantContains: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantOverlaps, tt.a.Overlaps(tt.b))
			assert.Equal(t, !tt.wantOverlaps, tt.a.Disjoint(tt.b))
			assert.Equal(t, tt.wantContains, tt.a.Contains(tt.b))
		})
	}
}

func TestRange_ExpandToWholeLines(t *testing.T) {
	t.Parallel()

	buf := srcrange.NewBuffer("", []byte("a = %w[\n  x\n  y\n]\nputs a\n"))

	rng := srcrange.New(buf, 4, 17)
	require.Equal(t, "%w[\n  x\n  y\n]", rng.Source())

	whole := rng.ExpandToWholeLines()
	assert.Equal(t, "a = %w[\n  x\n  y\n]", whole.Source())

	first := rng.FirstLineRange()
	assert.Equal(t, "a = %w[", first.Source())

	inner := srcrange.New(buf, 10, 11)
	assert.Equal(t, "  x", inner.ExpandToWholeLines().Source())
}

func TestRange_WithSurroundingSpace(t *testing.T) {
	t.Parallel()

	buf := srcrange.NewBuffer("", []byte("{\n  send\n  csend \t\n}"))

	send := srcrange.New(buf, 4, 8)
	require.Equal(t, "send", send.Source())
	assert.Equal(t, "  send", send.WithSurroundingSpace(srcrange.SideLeft, false).Source())

	csend := srcrange.New(buf, 11, 16)
	require.Equal(t, "csend", csend.Source())
	assert.Equal(t, "\n  csend", csend.WithSurroundingSpace(srcrange.SideLeft, true).Source())
	assert.Equal(t, "csend \t\n", csend.WithSurroundingSpace(srcrange.SideRight, true).Source())
	assert.Equal(t, "  csend \t", csend.WithSurroundingSpace(srcrange.SideBoth, false).Source())

	start := srcrange.New(buf, 0, 1)
	assert.Equal(t, 0, start.WithSurroundingSpace(srcrange.SideLeft, true).Begin())
}
