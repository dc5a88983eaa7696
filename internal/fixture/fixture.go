// Package fixture decodes a JSON-encoded expression tree. This stands in
// for the output of an external parser, so the compiler pipeline can be
// driven end to end from the command line and from tests without a real
// lexer/parser, which is out of scope for this repository.
package fixture

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/schollz/mdlc/internal/instrument"
	"github.com/schollz/mdlc/internal/musicexpr"
	"github.com/schollz/mdlc/internal/song"
	"github.com/schollz/mdlc/internal/textloc"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Node is the on-the-wire JSON shape of one expression tree node. Only the
// fields relevant to Kind need to be set; the rest are left at their zero
// value and ignored.
type Node struct {
	Kind string `json:"kind"`

	NoteSym    string `json:"notesym,omitempty"`
	NoteMods   int    `json:"notemods,omitempty"`
	OctaveMods int    `json:"octavemods,omitempty"`

	Note    int    `json:"note,omitempty"`
	DrumSym string `json:"drumsym,omitempty"`

	Length float64 `json:"length,omitempty"`
	Track  string  `json:"track,omitempty"`

	ChordType string `json:"chordtype,omitempty"`
	Offsets   []int  `json:"offsets,omitempty"`
	Offset    float64 `json:"offset,omitempty"`

	Child    *Node   `json:"child,omitempty"`
	A        *Node   `json:"a,omitempty"`
	B        *Node   `json:"b,omitempty"`
	Children []*Node `json:"children,omitempty"`

	Name string   `json:"name,omitempty"`
	Args []string `json:"args,omitempty"`

	BPM    float64 `json:"bpm,omitempty"`
	Volume int     `json:"volume,omitempty"`
}

var kindNames = map[string]musicexpr.Kind{
	"absnote":        musicexpr.KindAbsNote,
	"relnote":        musicexpr.KindRelNote,
	"absdrum":        musicexpr.KindAbsDrum,
	"reldrum":        musicexpr.KindRelDrum,
	"rest":           musicexpr.KindRest,
	"empty":          musicexpr.KindEmpty,
	"chord":          musicexpr.KindChord,
	"noteoffsetexpr": musicexpr.KindNoteOffsetExpr,
	"offsetexpr":     musicexpr.KindOffsetExpr,
	"ontrack":        musicexpr.KindOnTrack,
	"joinexpr":       musicexpr.KindJoinExpr,
	"sequence":       musicexpr.KindSequence,
	"simultence":     musicexpr.KindSimultence,
	"scaledexpr":     musicexpr.KindScaledExpr,
	"relsimultence":  musicexpr.KindRelSimultence,
	"function":       musicexpr.KindFunction,
	"tempochange":    musicexpr.KindTempoChange,
	"volumechange":   musicexpr.KindVolumeChange,
	"marker":         musicexpr.KindMarker,
}

var noteSyms = map[string]musicexpr.NoteSym{
	"c": musicexpr.NoteC, "d": musicexpr.NoteD, "e": musicexpr.NoteE, "f": musicexpr.NoteF,
	"g": musicexpr.NoteG, "a": musicexpr.NoteA, "b": musicexpr.NoteB,
}

var chordTypes = map[string]musicexpr.ChordType{
	"none": musicexpr.ChordNone, "maj": musicexpr.ChordMaj, "min": musicexpr.ChordMin,
	"aug": musicexpr.ChordAug, "dim": musicexpr.ChordDim, "7": musicexpr.Chord7,
	"maj7": musicexpr.ChordMaj7, "min7": musicexpr.ChordMin7, "dim7": musicexpr.ChordDim7,
	"aug7": musicexpr.ChordAug7, "dim5min7": musicexpr.ChordDim5Min7, "min5maj7": musicexpr.ChordMin5Maj7,
	"maj6": musicexpr.ChordMaj6, "min6": musicexpr.ChordMin6, "9": musicexpr.Chord9,
	"maj9": musicexpr.ChordMaj9, "min9": musicexpr.ChordMin9, "11": musicexpr.Chord11,
	"maj11": musicexpr.ChordMaj11, "min11": musicexpr.ChordMin11, "13": musicexpr.Chord13,
	"13-11": musicexpr.Chord13_11, "maj13-11": musicexpr.ChordMaj13_11, "min13-11": musicexpr.ChordMin13_11,
	"sus2": musicexpr.ChordSus2, "sus4": musicexpr.ChordSus4, "5": musicexpr.Chord5, "5-8": musicexpr.Chord5_8,
}

// Decode parses data as a JSON-encoded expression tree fixture and builds
// the corresponding Expr tree, assigning identity from ids.
func Decode(ids *textloc.Counter, data []byte) (*musicexpr.Expr, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	return convert(ids, &root)
}

func convert(ids *textloc.Counter, n *Node) (*musicexpr.Expr, error) {
	kind, ok := kindNames[strings.ToLower(n.Kind)]
	if !ok {
		return nil, fmt.Errorf("fixture: unknown node kind %q", n.Kind)
	}
	me := musicexpr.New(ids, kind, textloc.Loc{})

	switch kind {
	case musicexpr.KindAbsNote:
		sym, ok := noteSyms[strings.ToLower(n.NoteSym)]
		if !ok {
			return nil, fmt.Errorf("fixture: unknown notesym %q", n.NoteSym)
		}
		me.NoteSym = sym
		me.Note = n.Note
		me.Length = n.Length
		me.Track = &song.Track{Name: n.Track}
		me.Instrument = instrument.DefaultToned

	case musicexpr.KindRelNote:
		sym, ok := noteSyms[strings.ToLower(n.NoteSym)]
		if !ok {
			return nil, fmt.Errorf("fixture: unknown notesym %q", n.NoteSym)
		}
		me.NoteSym = sym
		me.NoteMods = n.NoteMods
		me.OctaveMods = n.OctaveMods
		me.Length = n.Length

	case musicexpr.KindAbsDrum:
		me.DrumSym = instrument.DrumSymbol(strings.ToLower(n.DrumSym))
		me.Note = n.Note
		me.Length = n.Length
		me.Track = &song.Track{Name: n.Track}
		me.Instrument = instrument.DefaultDrum

	case musicexpr.KindRelDrum:
		me.DrumSym = instrument.DrumSymbol(strings.ToLower(n.DrumSym))
		me.Length = n.Length

	case musicexpr.KindRest, musicexpr.KindScaledExpr, musicexpr.KindRelSimultence:
		me.Length = n.Length
		if n.Child != nil {
			child, err := convert(ids, n.Child)
			if err != nil {
				return nil, err
			}
			me.Child = child
		}

	case musicexpr.KindChord:
		ct, ok := chordTypes[strings.ToLower(n.ChordType)]
		if !ok {
			return nil, fmt.Errorf("fixture: unknown chord type %q", n.ChordType)
		}
		me.ChordType = ct
		child, err := convert(ids, n.Child)
		if err != nil {
			return nil, err
		}
		me.Child = child

	case musicexpr.KindNoteOffsetExpr:
		me.Offsets = n.Offsets
		child, err := convert(ids, n.Child)
		if err != nil {
			return nil, err
		}
		me.Child = child

	case musicexpr.KindOffsetExpr:
		me.Offset = n.Offset
		child, err := convert(ids, n.Child)
		if err != nil {
			return nil, err
		}
		me.Child = child

	case musicexpr.KindOnTrack:
		me.Track = &song.Track{Name: n.Track}
		child, err := convert(ids, n.Child)
		if err != nil {
			return nil, err
		}
		me.Child = child

	case musicexpr.KindJoinExpr:
		a, err := convert(ids, n.A)
		if err != nil {
			return nil, err
		}
		b, err := convert(ids, n.B)
		if err != nil {
			return nil, err
		}
		me.A, me.B = a, b

	case musicexpr.KindSequence, musicexpr.KindSimultence:
		for _, c := range n.Children {
			child, err := convert(ids, c)
			if err != nil {
				return nil, err
			}
			me.Children = append(me.Children, child)
		}

	case musicexpr.KindFunction:
		me.Name = n.Name
		for _, a := range n.Args {
			me.Args = append(me.Args, musicexpr.FunctionArg{Value: a})
		}

	case musicexpr.KindTempoChange:
		me.BPM = n.BPM

	case musicexpr.KindVolumeChange:
		me.Track = &song.Track{Name: n.Track}
		me.Volume = n.Volume

	case musicexpr.KindEmpty, musicexpr.KindMarker:
		// no payload

	default:
		return nil, fmt.Errorf("fixture: unsupported node kind %q", n.Kind)
	}

	return me, nil
}
