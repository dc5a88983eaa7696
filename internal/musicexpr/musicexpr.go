// Package musicexpr implements the tagged-union expression tree that is
// the core data structure of the compiler: every pass in internal/compile
// walks, rewrites or replaces nodes of this type.
package musicexpr

import (
	"fmt"
	"log"

	"github.com/schollz/mdlc/internal/instrument"
	"github.com/schollz/mdlc/internal/song"
	"github.com/schollz/mdlc/internal/textloc"
)

// MinLength is the shortest length (in measures) any note-bearing node may
// have after flattening; anything shorter collapses to EMPTY.
const MinLength = 1e-4

// Kind discriminates the variants of Expr. Every pass that does not need
// variant-specific handling uses Iter instead of switching on Kind.
type Kind int

const (
	KindAbsNote Kind = iota
	KindRelNote
	KindAbsDrum
	KindRelDrum
	KindRest
	KindEmpty
	KindChord
	KindNoteOffsetExpr
	KindOffsetExpr
	KindOnTrack
	KindJoinExpr
	KindSequence
	KindSimultence
	KindScaledExpr
	KindRelSimultence
	KindFlatSimultence
	KindFunction
	KindTempoChange
	KindVolumeChange
	KindMarker
)

func (k Kind) String() string {
	switch k {
	case KindAbsNote:
		return "ABSNOTE"
	case KindRelNote:
		return "RELNOTE"
	case KindAbsDrum:
		return "ABSDRUM"
	case KindRelDrum:
		return "RELDRUM"
	case KindRest:
		return "REST"
	case KindEmpty:
		return "EMPTY"
	case KindChord:
		return "CHORD"
	case KindNoteOffsetExpr:
		return "NOTEOFFSETEXPR"
	case KindOffsetExpr:
		return "OFFSETEXPR"
	case KindOnTrack:
		return "ONTRACK"
	case KindJoinExpr:
		return "JOINEXPR"
	case KindSequence:
		return "SEQUENCE"
	case KindSimultence:
		return "SIMULTENCE"
	case KindScaledExpr:
		return "SCALEDEXPR"
	case KindRelSimultence:
		return "RELSIMULTENCE"
	case KindFlatSimultence:
		return "FLATSIMULTENCE"
	case KindFunction:
		return "FUNCTION"
	case KindTempoChange:
		return "TEMPOCHANGE"
	case KindVolumeChange:
		return "VOLUMECHANGE"
	case KindMarker:
		return "MARKER"
	default:
		return "UNKNOWN"
	}
}

// NoteSym is one of the seven natural note letters.
type NoteSym int

const (
	NoteC NoteSym = iota
	NoteD
	NoteE
	NoteF
	NoteG
	NoteA
	NoteB
)

func (n NoteSym) String() string {
	return string("CDEFGAB"[n])
}

// semitoneOf is the C-major semitone offset of each natural note.
var semitoneOf = [7]int{0, 2, 4, 5, 7, 9, 11}

// FunctionArg is one argument to a FUNCTION node: the textual token plus
// its own source range, preserved for error messages.
type FunctionArg struct {
	Value string
	Loc   textloc.Loc
}

// Expr is the tagged union over every node variant in the tree. Every
// variant carries ID, Loc and Joining; the rest of the fields are
// variant-specific and only meaningful for the Kind they belong to (see the
// per-Kind comment groups below).
type Expr struct {
	ID      int
	Loc     textloc.Loc
	Kind    Kind
	Joining bool

	// ABSNOTE, RELNOTE
	NoteSym    NoteSym
	NoteMods   int // RELNOTE only: semitone modifiers (sharps/flats)
	OctaveMods int // RELNOTE only

	// ABSNOTE, ABSDRUM: resolved MIDI note/drum code
	Note int

	// ABSDRUM, RELDRUM
	DrumSym instrument.DrumSymbol

	// ABSNOTE, ABSDRUM, REST, SCALEDEXPR, RELSIMULTENCE, FLATSIMULTENCE,
	// RELNOTE, RELDRUM: length in measures.
	Length float64

	// ABSNOTE, ABSDRUM, ONTRACK, VOLUMECHANGE
	Track *song.Track

	// ABSNOTE, ABSDRUM
	Instrument instrument.Instrument

	// CHORD
	ChordType ChordType

	// NOTEOFFSETEXPR
	Offsets []int

	// OFFSETEXPR
	Offset float64

	// CHORD, NOTEOFFSETEXPR, OFFSETEXPR, ONTRACK, SCALEDEXPR,
	// RELSIMULTENCE, FLATSIMULTENCE: single child.
	Child *Expr

	// JOINEXPR
	A, B *Expr

	// SEQUENCE, SIMULTENCE
	Children []*Expr

	// FUNCTION
	Name string
	Args []FunctionArg

	// TEMPOCHANGE
	BPM float64

	// VOLUMECHANGE: Volume in 0..127
	Volume int
}

// New allocates a node of the given kind with a fresh id from ids.
func New(ids *textloc.Counter, kind Kind, loc textloc.Loc) *Expr {
	return &Expr{ID: ids.Next(), Loc: loc, Kind: kind}
}

// Clone deep-copies me: every copied node keeps the id of the node it was
// copied from, and track and instrument references are shared, matching
// the reference's "tracks and instruments are shared references"
// ownership rule.
func Clone(ids *textloc.Counter, me *Expr) *Expr {
	if me == nil {
		return nil
	}
	out := *me
	out.Child = Clone(ids, me.Child)
	out.A = Clone(ids, me.A)
	out.B = Clone(ids, me.B)
	if me.Children != nil {
		out.Children = make([]*Expr, len(me.Children))
		for i, c := range me.Children {
			out.Children[i] = Clone(ids, c)
		}
	}
	if me.Offsets != nil {
		out.Offsets = append([]int(nil), me.Offsets...)
	}
	if me.Args != nil {
		out.Args = append([]FunctionArg(nil), me.Args...)
	}
	return &out
}

// Replace overwrites dst's payload with src's while keeping dst's id and
// Loc, and leaving dst's address (and hence every other node's pointer to
// it) untouched. This is
// how a pass rewrites a node's variant in place, e.g. RELNOTE -> ABSNOTE or
// RELSIMULTENCE -> SCALEDEXPR, without disturbing parents that hold a
// pointer to dst.
func Replace(dst, src *Expr) {
	loc := dst.Loc
	id := dst.ID
	log.Printf("[MUSICEXPR] replace %s -> %s at %s", textloc.IDString(id, loc), src.Kind, loc)
	*dst = *src
	dst.ID = id
	dst.Loc = loc
}

// Iter returns me's direct children, in the order the node table in the
// data model defines them. Leaves return nil.
func Iter(me *Expr) []*Expr {
	switch me.Kind {
	case KindChord, KindNoteOffsetExpr, KindOffsetExpr, KindOnTrack,
		KindScaledExpr, KindRelSimultence, KindFlatSimultence:
		if me.Child == nil {
			return nil
		}
		return []*Expr{me.Child}
	case KindJoinExpr:
		return []*Expr{me.A, me.B}
	case KindSequence, KindSimultence:
		return me.Children
	default:
		return nil
	}
}

func (me *Expr) String() string {
	return fmt.Sprintf("%s(%s)", me.Kind, textloc.IDString(me.ID, me.Loc))
}

// semitone returns the C-major semitone offset of n.
func semitone(n NoteSym) int {
	return semitoneOf[n]
}
