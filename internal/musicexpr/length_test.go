package musicexpr

import (
	"testing"

	"github.com/schollz/mdlc/internal/textloc"
)

func TestLengthSequenceSums(t *testing.T) {
	ids := textloc.NewCounter()
	a := New(ids, KindRest, textloc.Loc{})
	a.Length = 0.25
	b := New(ids, KindRest, textloc.Loc{})
	b.Length = 0.5
	seq := New(ids, KindSequence, textloc.Loc{})
	seq.Children = []*Expr{a, b}

	if got := Length(seq); got != 0.75 {
		t.Errorf("Length(SEQUENCE) = %v, want 0.75", got)
	}
}

func TestLengthSimultenceTakesMax(t *testing.T) {
	ids := textloc.NewCounter()
	a := New(ids, KindRest, textloc.Loc{})
	a.Length = 0.25
	b := New(ids, KindRest, textloc.Loc{})
	b.Length = 1
	sim := New(ids, KindSimultence, textloc.Loc{})
	sim.Children = []*Expr{a, b}

	if got := Length(sim); got != 1 {
		t.Errorf("Length(SIMULTENCE) = %v, want 1", got)
	}
}

func TestLengthJoinExprSums(t *testing.T) {
	ids := textloc.NewCounter()
	a := New(ids, KindAbsNote, textloc.Loc{})
	a.Length = 0.25
	b := New(ids, KindAbsNote, textloc.Loc{})
	b.Length = 0.25
	join := New(ids, KindJoinExpr, textloc.Loc{})
	join.A, join.B = a, b

	if got := Length(join); got != 0.5 {
		t.Errorf("Length(JOINEXPR) = %v, want 0.5", got)
	}
}

func TestStretchScalesEveryLeaf(t *testing.T) {
	ids := textloc.NewCounter()
	note := New(ids, KindAbsNote, textloc.Loc{})
	note.Length = 0.25
	rest := New(ids, KindRest, textloc.Loc{})
	rest.Length = 0.25
	seq := New(ids, KindSequence, textloc.Loc{})
	seq.Children = []*Expr{note, rest}

	Stretch(seq, 2)

	if note.Length != 0.5 || rest.Length != 0.5 {
		t.Errorf("Stretch did not scale leaves: note=%v rest=%v", note.Length, rest.Length)
	}
}

func TestStretchOffsetExpr(t *testing.T) {
	ids := textloc.NewCounter()
	note := New(ids, KindAbsNote, textloc.Loc{})
	note.Length = 0.25
	off := New(ids, KindOffsetExpr, textloc.Loc{})
	off.Offset = 0.5
	off.Child = note

	Stretch(off, 2)

	if off.Offset != 1 || note.Length != 0.5 {
		t.Errorf("Stretch(OFFSETEXPR) = offset %v length %v, want 1 and 0.5", off.Offset, note.Length)
	}
}
