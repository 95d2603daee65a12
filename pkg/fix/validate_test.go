package fix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rbfix/pkg/fix"
)

func edit(start, end int, text string) fix.TextEdit {
	return fix.TextEdit{StartOffset: start, EndOffset: end, NewText: text}
}

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edits   []fix.TextEdit
		wantMsg string
	}{
		{name: "empty"},
		{name: "in range", edits: []fix.TextEdit{edit(0, 3, "x"), edit(10, 10, "y")}},
		{name: "negative start", edits: []fix.TextEdit{edit(-1, 2, "")}, wantMsg: "start offset is negative"},
		{name: "reversed", edits: []fix.TextEdit{edit(5, 4, "")}, wantMsg: "end offset is before start offset"},
		{
			name:    "past end",
			edits:   []fix.TextEdit{edit(0, 1, ""), edit(8, 11, "")},
			wantMsg: "end offset 11 exceeds content length 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.ValidateEdits(tt.edits, 10)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}

			var invalid *fix.ValidationError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantMsg, invalid.Message)
			assert.Contains(t, err.Error(), "invalid edit [")
		})
	}
}

func TestSortEdits(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		edit(8, 9, "c"),
		edit(2, 6, "b"),
		edit(2, 2, "first"),
		edit(0, 1, "a"),
		edit(2, 2, "second"),
	}
	fix.SortEdits(edits)

	assert.Equal(t, []fix.TextEdit{
		edit(0, 1, "a"),
		edit(2, 2, "first"),
		edit(2, 2, "second"),
		edit(2, 6, "b"),
		edit(8, 9, "c"),
	}, edits)
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	t.Run("sorts a copy", func(t *testing.T) {
		t.Parallel()

		input := []fix.TextEdit{edit(4, 5, "y"), edit(0, 1, "x")}
		got, err := fix.PrepareEdits(input, 5)
		require.NoError(t, err)

		assert.Equal(t, []fix.TextEdit{edit(0, 1, "x"), edit(4, 5, "y")}, got)
		assert.Equal(t, 4, input[0].StartOffset)
	})

	t.Run("adjacent edits are allowed", func(t *testing.T) {
		t.Parallel()

		_, err := fix.PrepareEdits([]fix.TextEdit{edit(0, 2, ""), edit(2, 2, "x"), edit(2, 4, "")}, 4)
		require.NoError(t, err)
	})

	t.Run("overlap", func(t *testing.T) {
		t.Parallel()

		_, err := fix.PrepareEdits([]fix.TextEdit{edit(3, 6, "b"), edit(0, 4, "a")}, 10)

		var conflict *fix.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, edit(0, 4, "a"), conflict.Edit1)
		assert.Equal(t, edit(3, 6, "b"), conflict.Edit2)
		assert.Equal(t, "overlapping edits: [0:4] and [3:6]", err.Error())
	})

	t.Run("invalid range", func(t *testing.T) {
		t.Parallel()

		_, err := fix.PrepareEdits([]fix.TextEdit{edit(0, 20, "")}, 10)

		var invalid *fix.ValidationError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	require.NoError(t, fix.DetectConflicts(nil))
	require.NoError(t, fix.DetectConflicts([]fix.TextEdit{edit(0, 2, ""), edit(2, 3, "")}))

	err := fix.DetectConflicts([]fix.TextEdit{edit(0, 2, ""), edit(1, 1, "x")})
	var conflict *fix.ConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestPrepareEditsFiltered(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		edits        []fix.TextEdit
		wantAccepted []fix.TextEdit
		wantSkipped  []fix.TextEdit
		wantMerged   int
	}{
		{
			name: "empty",
		},
		{
			name:         "disjoint edits pass through sorted",
			edits:        []fix.TextEdit{edit(5, 6, "b"), edit(0, 1, "a")},
			wantAccepted: []fix.TextEdit{edit(0, 1, "a"), edit(5, 6, "b")},
		},
		{
			name:         "overlapping deletions merge",
			edits:        []fix.TextEdit{edit(0, 4, ""), edit(2, 7, ""), edit(6, 8, "")},
			wantAccepted: []fix.TextEdit{edit(0, 8, "")},
			wantMerged:   2,
		},
		{
			name:         "later replacement is skipped",
			edits:        []fix.TextEdit{edit(0, 4, "x"), edit(2, 6, "y"), edit(6, 7, "z")},
			wantAccepted: []fix.TextEdit{edit(0, 4, "x"), edit(6, 7, "z")},
			wantSkipped:  []fix.TextEdit{edit(2, 6, "y")},
		},
		{
			name:         "deletion overlapping a replacement is skipped",
			edits:        []fix.TextEdit{edit(1, 5, "call"), edit(3, 4, "")},
			wantAccepted: []fix.TextEdit{edit(1, 5, "call")},
			wantSkipped:  []fix.TextEdit{edit(3, 4, "")},
		},
		{
			name:         "contained deletion keeps outer end",
			edits:        []fix.TextEdit{edit(0, 9, ""), edit(2, 3, "")},
			wantAccepted: []fix.TextEdit{edit(0, 9, "")},
			wantMerged:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			accepted, skipped, merged, err := fix.PrepareEditsFiltered(tt.edits, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAccepted, accepted)
			assert.Equal(t, tt.wantSkipped, skipped)
			assert.Equal(t, tt.wantMerged, merged)
		})
	}
}

func TestPrepareEditsFiltered_Invalid(t *testing.T) {
	t.Parallel()

	_, _, _, err := fix.PrepareEditsFiltered([]fix.TextEdit{edit(-2, 0, "")}, 10)

	var invalid *fix.ValidationError
	assert.ErrorAs(t, err, &invalid)
}
