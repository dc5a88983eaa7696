package compile

import (
	"github.com/schollz/mdlc/internal/musicexpr"
	"github.com/schollz/mdlc/internal/textloc"
)

// JoinPass fuses runs of identical adjacent notes/rests separated by a
// JOINEXPR. It assumes the relative pass has already run: no RELNOTE
// survives, so every leaf it sees is already absolute.
func JoinPass(ids *textloc.Counter, me *musicexpr.Expr) error {
	if me.Kind == musicexpr.KindJoinExpr {
		if err := JoinPass(ids, me.A); err != nil {
			return err
		}
		if err := JoinPass(ids, me.B); err != nil {
			return err
		}
		return joinJoinExpr(ids, me)
	}
	for _, child := range musicexpr.Iter(me) {
		if err := JoinPass(ids, child); err != nil {
			return err
		}
	}
	return nil
}

// joinJoinExpr resolves a single JOINEXPR node in place, given that both
// sides have already been join-processed themselves.
func joinJoinExpr(ids *textloc.Counter, me *musicexpr.Expr) error {
	a, b := me.A, me.B

	switch {
	case a.Kind == musicexpr.KindAbsNote && b.Kind == musicexpr.KindAbsNote && a.Note == b.Note:
		a.Length += b.Length
		musicexpr.Replace(me, a)
		return nil

	case a.Kind == musicexpr.KindRest && b.Kind == musicexpr.KindRest:
		a.Length += b.Length
		musicexpr.Replace(me, a)
		return nil

	case a.Kind == musicexpr.KindSequence && b.Kind == musicexpr.KindSequence:
		return joinSequences(ids, me, a, b)

	case a.Kind == musicexpr.KindSequence && (b.Kind == musicexpr.KindAbsNote || b.Kind == musicexpr.KindRest):
		wrapped := musicexpr.New(ids, musicexpr.KindSequence, b.Loc)
		wrapped.Children = []*musicexpr.Expr{b}
		me.B = wrapped
		return joinJoinExpr(ids, me)

	case b.Kind == musicexpr.KindSequence && (a.Kind == musicexpr.KindAbsNote || a.Kind == musicexpr.KindRest):
		wrapped := musicexpr.New(ids, musicexpr.KindSequence, a.Loc)
		wrapped.Children = []*musicexpr.Expr{a}
		me.A = wrapped
		return joinJoinExpr(ids, me)

	case a.Kind == musicexpr.KindAbsNote && b.Kind == musicexpr.KindAbsNote:
		// Mismatched pitch: no fuse possible, degenerates to a plain sequence.
		seq := musicexpr.New(ids, musicexpr.KindSequence, me.Loc)
		seq.Children = []*musicexpr.Expr{a, b}
		musicexpr.Replace(me, seq)
		return nil

	default:
		// Anything else (a chord member under a note-offset expression, a
		// scaled subtree, mismatched node kinds): no true fuse. Leave the
		// JOINEXPR in the tree and flag both endpoints so the note-off
		// handling downstream can extend across the boundary instead.
		markJoining(a)
		markJoining(b)
		return nil
	}
}

// joinSequences splices the last element of a and the first element of b
// through a fresh JOINEXPR, then concatenates the two lists into a.
func joinSequences(ids *textloc.Counter, me, a, b *musicexpr.Expr) error {
	if len(a.Children) == 0 || len(b.Children) == 0 {
		merged := append(append([]*musicexpr.Expr{}, a.Children...), b.Children...)
		a.Children = merged
		musicexpr.Replace(me, a)
		return nil
	}

	lastA := a.Children[len(a.Children)-1]
	firstB := b.Children[0]
	splice := musicexpr.New(ids, musicexpr.KindJoinExpr, textloc.Join(lastA.Loc, firstB.Loc))
	splice.A, splice.B = lastA, firstB
	if err := joinJoinExpr(ids, splice); err != nil {
		return err
	}

	merged := make([]*musicexpr.Expr, 0, len(a.Children)-1+len(b.Children))
	merged = append(merged, a.Children[:len(a.Children)-1]...)
	merged = append(merged, splice)
	merged = append(merged, b.Children[1:]...)
	a.Children = merged
	musicexpr.Replace(me, a)
	return nil
}

// markJoining sets Joining on every note/rest leaf reachable from me,
// descending through the structural wrappers (offsets, scaling, chords)
// a true fuse couldn't see through.
func markJoining(me *musicexpr.Expr) {
	if me == nil {
		return
	}
	switch me.Kind {
	case musicexpr.KindAbsNote, musicexpr.KindAbsDrum, musicexpr.KindRest:
		me.Joining = true
	}
	for _, child := range musicexpr.Iter(me) {
		markJoining(child)
	}
}
