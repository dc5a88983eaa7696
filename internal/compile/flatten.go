package compile

import (
	"github.com/schollz/mdlc/internal/musicexpr"
	"github.com/schollz/mdlc/internal/textloc"
)

// flattenCtx accumulates the OFFSETEXPR leaves Flatten produces and tracks
// the running maximum offset, which becomes FLATSIMULTENCE.Length.
type flattenCtx struct {
	ids       *textloc.Counter
	leaves    []*musicexpr.Expr
	maxOffset float64
}

func (c *flattenCtx) emit(loc textloc.Loc, offset float64, leaf *musicexpr.Expr) {
	wrapped := musicexpr.New(c.ids, musicexpr.KindOffsetExpr, loc)
	wrapped.Offset = offset
	wrapped.Child = leaf
	c.leaves = append(c.leaves, wrapped)
	if offset > c.maxOffset {
		c.maxOffset = offset
	}
}

// Flatten reduces me to FLATSIMULTENCE{length, SIMULTENCE{OFFSETEXPR...}}
// It assumes the relative and join passes have already run.
func Flatten(ids *textloc.Counter, me *musicexpr.Expr) (*musicexpr.Expr, error) {
	ctx := &flattenCtx{ids: ids}
	next := 0.0
	if err := ctx.walk(me, &next); err != nil {
		return nil, err
	}
	length := ctx.maxOffset
	if next > length {
		length = next
	}

	simultence := musicexpr.New(ids, musicexpr.KindSimultence, me.Loc)
	simultence.Children = ctx.leaves

	flat := musicexpr.New(ids, musicexpr.KindFlatSimultence, me.Loc)
	flat.Length = length
	flat.Child = simultence
	return flat, nil
}

func (c *flattenCtx) walk(me *musicexpr.Expr, next *float64) error {
	switch me.Kind {
	case musicexpr.KindAbsNote, musicexpr.KindAbsDrum:
		c.emit(me.Loc, *next, musicexpr.Clone(c.ids, me))
		*next += me.Length
		return nil

	case musicexpr.KindRest:
		*next += me.Length
		return nil

	case musicexpr.KindEmpty:
		return nil

	case musicexpr.KindChord:
		noteOffset, err := expandChord(c.ids, me)
		if err != nil {
			return err
		}
		return c.walk(noteOffset, next)

	case musicexpr.KindNoteOffsetExpr:
		start := *next
		max := start
		for _, offset := range me.Offsets {
			cur := start
			clone := musicexpr.Clone(c.ids, me.Child)
			applyNoteOffset(clone, offset)
			if err := c.walk(clone, &cur); err != nil {
				return err
			}
			if cur > max {
				max = cur
			}
		}
		*next = max
		return nil

	case musicexpr.KindOffsetExpr:
		*next += me.Offset
		return c.walk(me.Child, next)

	case musicexpr.KindOnTrack:
		return c.walk(me.Child, next)

	case musicexpr.KindScaledExpr:
		return c.walkScaled(me, next)

	case musicexpr.KindSequence:
		for _, child := range me.Children {
			if err := c.walk(child, next); err != nil {
				return err
			}
		}
		return nil

	case musicexpr.KindSimultence:
		start := *next
		max := start
		for _, child := range me.Children {
			cur := start
			if err := c.walk(child, &cur); err != nil {
				return err
			}
			if cur > max {
				max = cur
			}
		}
		*next = max
		return nil

	case musicexpr.KindFlatSimultence:
		origNext := *next
		if err := c.walk(me.Child, next); err != nil {
			return err
		}
		if origNext+me.Length > *next {
			*next = origNext + me.Length
		}
		return nil

	case musicexpr.KindJoinExpr:
		if err := c.walk(me.A, next); err != nil {
			return err
		}
		return c.walk(me.B, next)

	case musicexpr.KindTempoChange, musicexpr.KindVolumeChange, musicexpr.KindMarker:
		c.emit(me.Loc, *next, musicexpr.Clone(c.ids, me))
		return nil

	default:
		return semErr(me.Loc, "flatten: unexpected node kind %s", me.Kind)
	}
}

// walkScaled computes the child's intrinsic length and, unless the scaled
// target collapses below MinLength (in which case the whole subtree emits
// nothing, as if it were EMPTY), clones and stretches the child to the
// target length before recursing.
func (c *flattenCtx) walkScaled(me *musicexpr.Expr, next *float64) error {
	if me.Length < musicexpr.MinLength {
		return nil
	}
	intrinsic := musicexpr.Length(me.Child)
	clone := musicexpr.Clone(c.ids, me.Child)
	if intrinsic != 0 {
		musicexpr.Stretch(clone, me.Length/intrinsic)
	}
	return c.walk(clone, next)
}

func expandChord(ids *textloc.Counter, me *musicexpr.Expr) (*musicexpr.Expr, error) {
	offsets, ok := musicexpr.ChordToOffsets(me.ChordType)
	if !ok {
		return nil, semErr(me.Loc, "chord type %d out of range", me.ChordType)
	}
	noteOffset := musicexpr.New(ids, musicexpr.KindNoteOffsetExpr, me.Loc)
	noteOffset.Child = me.Child
	noteOffset.Offsets = offsets
	return noteOffset, nil
}

// applyNoteOffset shifts every ABSNOTE.Note reachable from me by offset
// semitones, leaving REST/EMPTY and every other field alone. It traverses
// the full tree via Iter, which already yields both sides of a JOINEXPR.
func applyNoteOffset(me *musicexpr.Expr, offset int) {
	if me == nil {
		return
	}
	if me.Kind == musicexpr.KindAbsNote {
		me.Note += offset
	}
	for _, child := range musicexpr.Iter(me) {
		applyNoteOffset(child, offset)
	}
}
