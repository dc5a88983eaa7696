package musicexpr

// Length returns me's intrinsic measure-length: the duration the node
// occupies before any flattening-time scaling is applied.
func Length(me *Expr) float64 {
	switch me.Kind {
	case KindAbsNote, KindAbsDrum, KindRest, KindScaledExpr:
		return me.Length
	case KindEmpty:
		return 0
	case KindChord, KindNoteOffsetExpr:
		return Length(me.Child)
	case KindOffsetExpr:
		return me.Offset + Length(me.Child)
	case KindJoinExpr:
		return Length(me.A) + Length(me.B)
	case KindSequence:
		var total float64
		for _, c := range me.Children {
			total += Length(c)
		}
		return total
	case KindSimultence:
		var max float64
		for _, c := range me.Children {
			if l := Length(c); l > max {
				max = l
			}
		}
		return max
	default:
		return 0
	}
}

// Stretch multiplies every note, rest, scaled and offset length under me by
// factor, in place. It recurses through every structural variant so a
// SCALEDEXPR applied to a subtree scales every leaf underneath it.
func Stretch(me *Expr, factor float64) {
	if me == nil {
		return
	}
	switch me.Kind {
	case KindAbsNote, KindAbsDrum, KindRest, KindScaledExpr, KindRelNote, KindRelDrum, KindRelSimultence, KindFlatSimultence:
		me.Length *= factor
		Stretch(me.Child, factor)
	case KindOffsetExpr:
		me.Offset *= factor
		Stretch(me.Child, factor)
	case KindChord, KindNoteOffsetExpr, KindOnTrack:
		Stretch(me.Child, factor)
	case KindJoinExpr:
		Stretch(me.A, factor)
		Stretch(me.B, factor)
	case KindSequence, KindSimultence:
		for _, c := range me.Children {
			Stretch(c, factor)
		}
	}
}
