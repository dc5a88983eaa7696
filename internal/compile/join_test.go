package compile

import (
	"testing"

	"github.com/schollz/mdlc/internal/musicexpr"
	"github.com/schollz/mdlc/internal/textloc"
	"github.com/stretchr/testify/require"
)

func absnote(ids *textloc.Counter, note int, length float64) *musicexpr.Expr {
	n := musicexpr.New(ids, musicexpr.KindAbsNote, textloc.Loc{})
	n.Note = note
	n.Length = length
	return n
}

func restExpr(ids *textloc.Counter, length float64) *musicexpr.Expr {
	n := musicexpr.New(ids, musicexpr.KindRest, textloc.Loc{})
	n.Length = length
	return n
}

func TestJoinSamePitchFuses(t *testing.T) {
	ids := textloc.NewCounter()
	join := joinExpr(ids, absnote(ids, 60, 0.25), absnote(ids, 60, 0.5))
	require.NoError(t, JoinPass(ids, join))
	require.Equal(t, musicexpr.KindAbsNote, join.Kind)
	require.Equal(t, 60, join.Note)
	require.Equal(t, 0.75, join.Length)
}

func TestJoinRestsFuse(t *testing.T) {
	ids := textloc.NewCounter()
	join := joinExpr(ids, restExpr(ids, 0.25), restExpr(ids, 0.25))
	require.NoError(t, JoinPass(ids, join))
	require.Equal(t, musicexpr.KindRest, join.Kind)
	require.Equal(t, 0.5, join.Length)
}

func TestJoinMismatchedPitchDegradesToSequence(t *testing.T) {
	ids := textloc.NewCounter()
	join := joinExpr(ids, absnote(ids, 60, 0.25), absnote(ids, 64, 0.25))
	require.NoError(t, JoinPass(ids, join))
	require.Equal(t, musicexpr.KindSequence, join.Kind)
	require.Len(t, join.Children, 2)
}

func TestJoinUnhandledCombinationMarksJoiningWithoutAborting(t *testing.T) {
	ids := textloc.NewCounter()
	// A time-offset expression on one side: a combination with no fuse
	// rule, on which the legacy reference aborted the whole compile.
	offsetChild := musicexpr.New(ids, musicexpr.KindOffsetExpr, textloc.Loc{})
	offsetChild.Child = absnote(ids, 60, 0.25)
	join := joinExpr(ids, offsetChild, absnote(ids, 60, 0.25))

	require.NoError(t, JoinPass(ids, join))
	require.Equal(t, musicexpr.KindJoinExpr, join.Kind)
	require.True(t, offsetChild.Child.Joining)
	require.True(t, join.B.Joining)
}

func TestJoinSequencesSplicesBoundary(t *testing.T) {
	ids := textloc.NewCounter()
	a := sequence(ids, absnote(ids, 60, 0.25), absnote(ids, 62, 0.25))
	b := sequence(ids, absnote(ids, 62, 0.25), absnote(ids, 64, 0.25))
	join := joinExpr(ids, a, b)

	require.NoError(t, JoinPass(ids, join))
	require.Equal(t, musicexpr.KindSequence, join.Kind)
	require.Len(t, join.Children, 3)
	require.Equal(t, 60, join.Children[0].Note)
	require.Equal(t, 62, join.Children[1].Note)
	require.Equal(t, 0.5, join.Children[1].Length) // the two note-62 halves fused
	require.Equal(t, 64, join.Children[2].Note)
}
