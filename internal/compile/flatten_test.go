package compile

import (
	"testing"

	"github.com/schollz/mdlc/internal/musicexpr"
	"github.com/schollz/mdlc/internal/textloc"
	"github.com/stretchr/testify/require"
)

func TestFlattenScaledExprStretchesChild(t *testing.T) {
	ids := textloc.NewCounter()
	scaled := musicexpr.New(ids, musicexpr.KindScaledExpr, textloc.Loc{})
	scaled.Length = 1.0
	scaled.Child = sequence(ids, absnote(ids, 60, 0.25), absnote(ids, 62, 0.25))

	flat, err := Flatten(ids, scaled)
	require.NoError(t, err)
	require.Equal(t, musicexpr.KindFlatSimultence, flat.Kind)
	require.InDelta(t, 1.0, flat.Length, 1e-9)
	require.Len(t, flat.Child.Children, 2)
	require.InDelta(t, 0.5, flat.Child.Children[1].Offset, 1e-9)
}

func TestFlattenScaledBelowMinLengthEmitsNothing(t *testing.T) {
	ids := textloc.NewCounter()
	scaled := musicexpr.New(ids, musicexpr.KindScaledExpr, textloc.Loc{})
	scaled.Length = musicexpr.MinLength / 2
	scaled.Child = absnote(ids, 60, 0.25)

	flat, err := Flatten(ids, scaled)
	require.NoError(t, err)
	require.Empty(t, flat.Child.Children)
}

func TestFlattenNoteOffsetExprTakesMaxAcrossSiblings(t *testing.T) {
	ids := textloc.NewCounter()
	noteOffset := musicexpr.New(ids, musicexpr.KindNoteOffsetExpr, textloc.Loc{})
	noteOffset.Offsets = []int{0, 4}
	noteOffset.Child = sequence(ids, absnote(ids, 60, 0.25), absnote(ids, 62, 0.25))

	flat, err := Flatten(ids, noteOffset)
	require.NoError(t, err)
	require.InDelta(t, 0.5, flat.Length, 1e-9)
	require.Len(t, flat.Child.Children, 4)
}

func TestFlattenSkipsOutOfRangeAndTooShortNotesInMidstream(t *testing.T) {
	ids := textloc.NewCounter()
	tooShort := absnote(ids, 60, musicexpr.MinLength/2)
	outOfRange := absnote(ids, 128, 0.25)
	seq := sequence(ids, tooShort, outOfRange, absnote(ids, 62, 0.25))

	flat, err := Flatten(ids, seq)
	require.NoError(t, err)
	events, err := BuildMidiStream(flat)
	require.NoError(t, err)

	onCount := 0
	outOfRangeCount := 0
	for _, e := range events {
		if e.Note == 60 {
			onCount++
		}
		if e.Note == 128 {
			outOfRangeCount++
		}
	}
	require.Zero(t, onCount, "too-short note must not reach the midi stream")
	require.Zero(t, outOfRangeCount, "out-of-range note must not reach the midi stream")
}
