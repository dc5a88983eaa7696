package musicexpr

import (
	"testing"

	"github.com/schollz/mdlc/internal/textloc"
)

func TestNewAssignsMonotonicIDs(t *testing.T) {
	ids := textloc.NewCounter()
	a := New(ids, KindRest, textloc.Loc{})
	b := New(ids, KindRest, textloc.Loc{})
	if b.ID <= a.ID {
		t.Errorf("expected monotonic ids, got %d then %d", a.ID, b.ID)
	}
}

func TestIterLeafHasNoChildren(t *testing.T) {
	ids := textloc.NewCounter()
	rest := New(ids, KindRest, textloc.Loc{})
	if got := Iter(rest); got != nil {
		t.Errorf("Iter(REST) = %v, want nil", got)
	}
}

func TestIterJoinExprYieldsBothSides(t *testing.T) {
	ids := textloc.NewCounter()
	a := New(ids, KindRest, textloc.Loc{})
	b := New(ids, KindRest, textloc.Loc{})
	join := New(ids, KindJoinExpr, textloc.Loc{})
	join.A, join.B = a, b
	children := Iter(join)
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Errorf("Iter(JOINEXPR) = %v, want [a b]", children)
	}
}

func TestIterSequenceYieldsAllElements(t *testing.T) {
	ids := textloc.NewCounter()
	seq := New(ids, KindSequence, textloc.Loc{})
	seq.Children = []*Expr{New(ids, KindRest, textloc.Loc{}), New(ids, KindRest, textloc.Loc{})}
	if got := Iter(seq); len(got) != 2 {
		t.Errorf("Iter(SEQUENCE) len = %d, want 2", len(got))
	}
}

func TestCloneDeepCopiesPreservingSharedRefs(t *testing.T) {
	ids := textloc.NewCounter()
	child := New(ids, KindRest, textloc.Loc{})
	child.Length = 0.25
	parent := New(ids, KindScaledExpr, textloc.Loc{})
	parent.Length = 1
	parent.Child = child

	clone := Clone(ids, parent)
	if clone == parent || clone.Child == parent.Child {
		t.Fatal("clone must allocate new nodes, not share pointers")
	}
	if clone.ID != parent.ID || clone.Child.ID != child.ID {
		t.Error("clone must copy the id of every node")
	}
	if clone.Child.Length != 0.25 {
		t.Errorf("clone did not copy child payload: %+v", clone.Child)
	}
}

func TestReplacePreservesIdentityAndLoc(t *testing.T) {
	ids := textloc.NewCounter()
	loc := textloc.Loc{FirstLine: 1, FirstColumn: 1, LastLine: 1, LastColumn: 3}
	relnote := New(ids, KindRelNote, loc)
	originalID := relnote.ID

	absnote := New(ids, KindAbsNote, textloc.Loc{})
	absnote.Note = 60
	absnote.Length = 0.25

	Replace(relnote, absnote)

	if relnote.ID != originalID {
		t.Errorf("Replace must preserve id, got %d want %d", relnote.ID, originalID)
	}
	if relnote.Loc != loc {
		t.Errorf("Replace must preserve loc, got %v want %v", relnote.Loc, loc)
	}
	if relnote.Kind != KindAbsNote || relnote.Note != 60 {
		t.Errorf("Replace did not adopt src payload: %+v", relnote)
	}
}
