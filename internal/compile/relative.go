package compile

import (
	"github.com/schollz/mdlc/internal/instrument"
	"github.com/schollz/mdlc/internal/musicexpr"
	"github.com/schollz/mdlc/internal/song"
	"github.com/schollz/mdlc/internal/textloc"
)

// relState is the "previous note" context threaded through the
// relative->absolute pass: the last resolved note plus the chord
// type a bare CHORD node with no type of its own should inherit.
type relState struct {
	Instrument instrument.Instrument
	Length     float64
	NoteSym    musicexpr.NoteSym
	Note       int
	Track      *song.Track
	ChordType  musicexpr.ChordType
}

// RelativeToAbsolute resolves every RELNOTE/RELDRUM/RELSIMULTENCE under me
// into its absolute form, threading the initial context:
// the song's default track and instrument, a quarter-note default length,
// middle C, and a major default chord type.
func RelativeToAbsolute(ids *textloc.Counter, me *musicexpr.Expr, s *song.Song) error {
	prev := &relState{
		Instrument: s.DefaultTrack.Instrument,
		Length:     0.25,
		NoteSym:    musicexpr.NoteC,
		Note:       60,
		Track:      s.DefaultTrack,
		ChordType:  musicexpr.ChordMaj,
	}
	return relativeToAbsolute(ids, me, prev)
}

// cmpNoteSym implements the nearest-note heuristic: it returns
// which direction (down or up) is the shorter path from b to a around the
// 7-note cycle, biased downward on exact ties.
func cmpNoteSym(a, b musicexpr.NoteSym) int {
	if a == b {
		return 0
	}
	diff := (int(a) - int(b)) % 7
	if diff < 0 {
		diff += 7
	}
	if diff < 4 {
		return -1
	}
	return 1
}

func relativeToAbsolute(ids *textloc.Counter, me *musicexpr.Expr, prev *relState) error {
	switch me.Kind {
	case musicexpr.KindAbsNote:
		prev.Note = me.Note
		prev.NoteSym = me.NoteSym
		prev.Length = me.Length
		prev.Track = me.Track
		prev.Instrument = me.Instrument
		return nil

	case musicexpr.KindRelNote:
		return resolveRelNote(ids, me, prev)

	case musicexpr.KindAbsDrum:
		prev.Length = me.Length
		prev.Track = me.Track
		prev.Instrument = me.Instrument
		return nil

	case musicexpr.KindRelDrum:
		return resolveRelDrum(ids, me, prev)

	case musicexpr.KindRest:
		if me.Length == 0 {
			me.Length = prev.Length
		} else {
			prev.Length = me.Length
		}
		return nil

	case musicexpr.KindChord:
		if err := relativeToAbsolute(ids, me.Child, prev); err != nil {
			return err
		}
		if me.ChordType == musicexpr.ChordNone {
			me.ChordType = prev.ChordType
		} else {
			prev.ChordType = me.ChordType
		}
		return nil

	case musicexpr.KindOnTrack:
		saved := *prev
		prev.Track = me.Track
		prev.Instrument = me.Track.Instrument
		if err := relativeToAbsolute(ids, me.Child, prev); err != nil {
			return err
		}
		*prev = saved
		return nil

	case musicexpr.KindSequence:
		outer := *prev
		for i, child := range me.Children {
			if err := relativeToAbsolute(ids, child, prev); err != nil {
				return err
			}
			if i == 0 {
				outer = *prev
			}
		}
		*prev = outer
		return nil

	case musicexpr.KindSimultence:
		saved := *prev
		for _, child := range me.Children {
			*prev = saved
			if err := relativeToAbsolute(ids, child, prev); err != nil {
				return err
			}
		}
		*prev = saved
		return nil

	case musicexpr.KindRelSimultence:
		return resolveRelSimultence(ids, me, prev)

	case musicexpr.KindScaledExpr, musicexpr.KindOffsetExpr, musicexpr.KindNoteOffsetExpr:
		return relativeToAbsolute(ids, me.Child, prev)

	case musicexpr.KindJoinExpr:
		if err := relativeToAbsolute(ids, me.A, prev); err != nil {
			return err
		}
		return relativeToAbsolute(ids, me.B, prev)

	case musicexpr.KindEmpty, musicexpr.KindTempoChange, musicexpr.KindVolumeChange, musicexpr.KindMarker:
		return nil

	default:
		for _, child := range musicexpr.Iter(me) {
			if err := relativeToAbsolute(ids, child, prev); err != nil {
				return err
			}
		}
		return nil
	}
}

func resolveRelNote(ids *textloc.Counter, me *musicexpr.Expr, prev *relState) error {
	if me.NoteSym < 0 || int(me.NoteSym) >= len(semitoneTable) {
		return semErr(me.Loc, "invalid note symbol %d", me.NoteSym)
	}
	base := 12*(prev.Note/12) + noteSemitone(me.NoteSym) + me.NoteMods
	switch cmpNoteSym(prev.NoteSym, me.NoteSym) {
	case 1:
		if base > prev.Note {
			base -= 12
		}
	case -1:
		if base < prev.Note {
			base += 12
		}
	}
	base += 12 * me.OctaveMods

	length := me.Length
	if length == 0 {
		length = prev.Length
	}

	absnote := musicexpr.New(ids, musicexpr.KindAbsNote, me.Loc)
	absnote.NoteSym = me.NoteSym
	absnote.Note = base
	absnote.Length = length
	absnote.Track = prev.Track
	absnote.Instrument = prev.Instrument
	musicexpr.Replace(me, absnote)

	prev.Note = base
	prev.NoteSym = me.NoteSym
	prev.Length = length
	return nil
}

func resolveRelDrum(ids *textloc.Counter, me *musicexpr.Expr, prev *relState) error {
	note, ok := instrument.DrumNote(me.DrumSym)
	if !ok {
		return semErr(me.Loc, "unknown drum symbol %q", me.DrumSym)
	}
	length := me.Length
	if length == 0 {
		length = prev.Length
	} else {
		prev.Length = length
	}

	absdrum := musicexpr.New(ids, musicexpr.KindAbsDrum, me.Loc)
	absdrum.DrumSym = me.DrumSym
	absdrum.Note = int(note)
	absdrum.Length = length
	absdrum.Track = prev.Track
	absdrum.Instrument = prev.Instrument
	musicexpr.Replace(me, absdrum)
	return nil
}

func resolveRelSimultence(ids *textloc.Counter, me *musicexpr.Expr, prev *relState) error {
	if me.Length == 0 {
		me.Length = prev.Length
	}
	inner := me.Child
	saved := *prev
	firstEscape := saved
	for i, child := range inner.Children {
		*prev = saved
		if err := relativeToAbsolute(ids, child, prev); err != nil {
			return err
		}
		if i == 0 {
			firstEscape = *prev
		}
	}
	*prev = firstEscape

	scaled := musicexpr.New(ids, musicexpr.KindScaledExpr, me.Loc)
	scaled.Length = me.Length
	scaled.Child = inner
	musicexpr.Replace(me, scaled)
	return nil
}

var semitoneTable = [7]int{0, 2, 4, 5, 7, 9, 11}

func noteSemitone(n musicexpr.NoteSym) int {
	return semitoneTable[n]
}
