package compile

import (
	"testing"

	"github.com/schollz/mdlc/internal/midievent"
	"github.com/schollz/mdlc/internal/musicexpr"
	"github.com/schollz/mdlc/internal/song"
	"github.com/schollz/mdlc/internal/textloc"
	"github.com/stretchr/testify/require"
)

func relnote(ids *textloc.Counter, sym musicexpr.NoteSym, length float64) *musicexpr.Expr {
	n := musicexpr.New(ids, musicexpr.KindRelNote, textloc.Loc{})
	n.NoteSym = sym
	n.Length = length
	return n
}

func sequence(ids *textloc.Counter, children ...*musicexpr.Expr) *musicexpr.Expr {
	n := musicexpr.New(ids, musicexpr.KindSequence, textloc.Loc{})
	n.Children = children
	return n
}

func simultence(ids *textloc.Counter, children ...*musicexpr.Expr) *musicexpr.Expr {
	n := musicexpr.New(ids, musicexpr.KindSimultence, textloc.Loc{})
	n.Children = children
	return n
}

func onTrack(ids *textloc.Counter, name string, child *musicexpr.Expr) *musicexpr.Expr {
	n := musicexpr.New(ids, musicexpr.KindOnTrack, textloc.Loc{})
	n.Track = &song.Track{Name: name}
	n.Child = child
	return n
}

func joinExpr(ids *textloc.Counter, a, b *musicexpr.Expr) *musicexpr.Expr {
	n := musicexpr.New(ids, musicexpr.KindJoinExpr, textloc.Loc{})
	n.A, n.B = a, b
	return n
}

func chordExpr(ids *textloc.Counter, ct musicexpr.ChordType, child *musicexpr.Expr) *musicexpr.Expr {
	n := musicexpr.New(ids, musicexpr.KindChord, textloc.Loc{})
	n.ChordType = ct
	n.Child = child
	return n
}

func functionExpr(ids *textloc.Counter, name string, args ...string) *musicexpr.Expr {
	n := musicexpr.New(ids, musicexpr.KindFunction, textloc.Loc{})
	n.Name = name
	for _, a := range args {
		n.Args = append(n.Args, musicexpr.FunctionArg{Value: a})
	}
	return n
}

func noteOns(events []midievent.TimedMidiEvent) []midievent.TimedMidiEvent {
	var out []midievent.TimedMidiEvent
	for _, e := range events {
		if e.EvType == midievent.EvNoteOn {
			out = append(out, e)
		}
	}
	return out
}

func TestCompileSimpleScale(t *testing.T) {
	ids := textloc.NewCounter()
	root := sequence(ids,
		relnote(ids, musicexpr.NoteC, 0),
		relnote(ids, musicexpr.NoteD, 0),
		relnote(ids, musicexpr.NoteE, 0),
		relnote(ids, musicexpr.NoteF, 0),
		relnote(ids, musicexpr.NoteG, 0),
	)
	events, err := Compile(ids, root)
	require.NoError(t, err)

	ons := noteOns(events)
	require.Len(t, ons, 5)
	wantNotes := []uint8{60, 62, 64, 65, 67}
	for i, want := range wantNotes {
		require.Equal(t, want, ons[i].Note, "note %d", i)
		require.InDelta(t, float32(i)*0.25, ons[i].TimeAsMeasures, 1e-6)
	}

	last := events[len(events)-1]
	require.Equal(t, midievent.EvSongEnd, last.EvType)
	require.InDelta(t, float32(1.25), last.TimeAsMeasures, 1e-6)
}

func TestCompileJoinIdenticalNotes(t *testing.T) {
	ids := textloc.NewCounter()
	root := joinExpr(ids, relnote(ids, musicexpr.NoteC, 0.25), relnote(ids, musicexpr.NoteC, 0.25))
	events, err := Compile(ids, root)
	require.NoError(t, err)

	ons := noteOns(events)
	require.Len(t, ons, 1)
	require.Equal(t, uint8(60), ons[0].Note)
	require.InDelta(t, float32(0), ons[0].TimeAsMeasures, 1e-6)

	last := events[len(events)-1]
	require.Equal(t, midievent.EvSongEnd, last.EvType)
	require.InDelta(t, float32(0.5), last.TimeAsMeasures, 1e-6)
}

func TestCompileChordExpandsToThreeNotes(t *testing.T) {
	ids := textloc.NewCounter()
	root := chordExpr(ids, musicexpr.ChordMaj, relnote(ids, musicexpr.NoteC, 0.25))
	events, err := Compile(ids, root)
	require.NoError(t, err)

	ons := noteOns(events)
	require.Len(t, ons, 3)
	require.Equal(t, []uint8{60, 64, 67}, []uint8{ons[0].Note, ons[1].Note, ons[2].Note})
	for _, on := range ons {
		require.Equal(t, float32(0), on.TimeAsMeasures)
	}
}

func TestCompileTempoFunction(t *testing.T) {
	ids := textloc.NewCounter()
	root := sequence(ids,
		functionExpr(ids, "tempo", "120"),
		relnote(ids, musicexpr.NoteC, 0.25),
	)
	events, err := Compile(ids, root)
	require.NoError(t, err)

	// At t=0 the final sort yields INSTRUMENT_CHANGE, TEMPOCHANGE,
	// VOLUMECHANGE, NOTEON: the allocator adds the instrument and volume
	// events for the note's channel.
	require.Equal(t, midievent.EvTempoChange, events[1].EvType)
	require.Equal(t, float32(120), events[1].BPM)
	require.Equal(t, midievent.EvNoteOn, events[3].EvType)
	require.Equal(t, uint8(60), events[3].Note)
}

func TestCompileTwoTracksGetDistinctChannels(t *testing.T) {
	ids := textloc.NewCounter()
	root := simultence(ids,
		onTrack(ids, "piano", relnote(ids, musicexpr.NoteC, 0.25)),
		onTrack(ids, "drums", reldrumBD(ids, 0.25)),
	)
	events, err := Compile(ids, root)
	require.NoError(t, err)

	ons := noteOns(events)
	require.Len(t, ons, 2)
	require.NotEqual(t, ons[0].Channel, ons[1].Channel)

	var drumChannel uint8
	found := false
	for _, on := range ons {
		if on.Note == 36 { // bass drum
			drumChannel = on.Channel
			found = true
		}
	}
	require.True(t, found)
	require.EqualValues(t, song.DrumChannel, drumChannel)
}

func TestCompileRelativeOctaveCrossing(t *testing.T) {
	ids := textloc.NewCounter()
	root := sequence(ids,
		relnote(ids, musicexpr.NoteC, 0.25),
		relnote(ids, musicexpr.NoteB, 0.25),
	)
	events, err := Compile(ids, root)
	require.NoError(t, err)

	ons := noteOns(events)
	require.Len(t, ons, 2)
	require.Equal(t, uint8(60), ons[0].Note)
	require.Equal(t, uint8(71), ons[1].Note)
}

func reldrumBD(ids *textloc.Counter, length float64) *musicexpr.Expr {
	n := musicexpr.New(ids, musicexpr.KindRelDrum, textloc.Loc{})
	n.DrumSym = "bd"
	n.Length = length
	return n
}
