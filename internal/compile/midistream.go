package compile

import (
	"sort"

	"github.com/schollz/mdlc/internal/instrument"
	"github.com/schollz/mdlc/internal/midievent"
	"github.com/schollz/mdlc/internal/musicexpr"
	"github.com/schollz/mdlc/internal/song"
)

// MidiStreamEvent is the mid-level, channel-less event the builder produces
// from a flattened tree. The channel allocator is the only
// stage that knows which physical MIDI channel a track lands on.
type MidiStreamEvent struct {
	Time       float64
	EvType     midievent.EvType
	Track      *song.Track
	Instrument instrument.Instrument
	Note       int
	Velocity   int
	Joining    bool
	BPM        float64
	Volume     int // VOLUMECHANGE: 0..127
}

const defaultVelocity = 80

// BuildMidiStream walks a FLATSIMULTENCE tree and emits the mid-level event
// list, then stably sorts it by (time, evtype ordinal, track-based
// secondary key) — the pre-allocation sort, before any channel exists.
func BuildMidiStream(flat *musicexpr.Expr) ([]MidiStreamEvent, error) {
	if flat.Kind != musicexpr.KindFlatSimultence {
		return nil, semErr(flat.Loc, "midistream: expected FLATSIMULTENCE, got %s", flat.Kind)
	}
	var events []MidiStreamEvent
	for _, offsetExpr := range flat.Child.Children {
		t := offsetExpr.Offset
		leaf := offsetExpr.Child
		switch leaf.Kind {
		case musicexpr.KindAbsNote, musicexpr.KindAbsDrum:
			if leaf.Note < 0 || leaf.Note > 127 {
				continue
			}
			if leaf.Length < musicexpr.MinLength {
				continue
			}
			events = append(events,
				MidiStreamEvent{
					Time: t, EvType: midievent.EvNoteOn, Track: leaf.Track, Instrument: leaf.Instrument,
					Note: leaf.Note, Velocity: defaultVelocity, Joining: leaf.Joining,
				},
				MidiStreamEvent{
					Time: t + leaf.Length, EvType: midievent.EvNoteOff, Track: leaf.Track, Instrument: leaf.Instrument,
					Note: leaf.Note, Velocity: defaultVelocity, Joining: leaf.Joining,
				},
			)
		case musicexpr.KindTempoChange:
			events = append(events, MidiStreamEvent{Time: t, EvType: midievent.EvTempoChange, BPM: leaf.BPM})
		case musicexpr.KindVolumeChange:
			events = append(events, MidiStreamEvent{Time: t, EvType: midievent.EvVolumeChange, Track: leaf.Track, Volume: leaf.Volume})
		case musicexpr.KindMarker:
			events = append(events, MidiStreamEvent{Time: t, EvType: midievent.EvMarker})
		default:
			return nil, semErr(leaf.Loc, "midistream: unexpected leaf kind %s", leaf.Kind)
		}
	}
	sortMidiStream(events)
	return events, nil
}

func sortMidiStream(events []MidiStreamEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		if a.EvType.Ordinal() != b.EvType.Ordinal() {
			return a.EvType.Ordinal() < b.EvType.Ordinal()
		}
		an, bn := trackName(a.Track), trackName(b.Track)
		if an != bn {
			return an < bn
		}
		if a.Note != b.Note {
			return a.Note < b.Note
		}
		return a.Velocity < b.Velocity
	})
}

func trackName(t *song.Track) string {
	if t == nil {
		return ""
	}
	return t.Name
}
