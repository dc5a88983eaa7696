package compile

import (
	"fmt"
	"log"
	"sort"

	"github.com/schollz/mdlc/internal/instrument"
	"github.com/schollz/mdlc/internal/midievent"
	"github.com/schollz/mdlc/internal/song"
)

const numChannels = 16

// midiSlot is the allocator's per-channel state: which track, if
// any, currently holds the channel, what instrument/volume was last sent
// on it, and a refcount per pitch so joined/overlapping notes don't cut
// each other off early.
type midiSlot struct {
	track          *song.Track
	hasInstrument  bool
	prevInstrument instrument.Instrument
	prevVolume     int // -1 means "never sent"
	notecount      [128]int
	totalNotecount int
}

// Allocator maps per-track mid-stream events onto the 16 MIDI channels,
// with channel 9 permanently reserved for drum tracks.
type Allocator struct {
	slots [numChannels]midiSlot
}

// NewAllocator returns an allocator with every slot free.
func NewAllocator() *Allocator {
	a := &Allocator{}
	for i := range a.slots {
		a.slots[i].prevVolume = -1
	}
	return a
}

// Run processes the pre-sorted mid-stream event list, resolving channels
// and emitting INSTRUMENT_CHANGE/VOLUMECHANGE events as tracks change
// instrument or volume, then appends a terminal SONG_END at songLength.
// The returned slice is not yet in final sorted order — callers must run
// it back through a final sort once channels are known.
func (a *Allocator) Run(events []MidiStreamEvent, songLength float64) ([]midievent.TimedMidiEvent, error) {
	var out []midievent.TimedMidiEvent
	for _, ev := range events {
		switch ev.EvType {
		case midievent.EvNoteOn:
			emitted, err := a.handleNoteOn(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, emitted...)
		case midievent.EvNoteOff:
			emitted, err := a.handleNoteOff(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, emitted...)
		case midievent.EvVolumeChange:
			ch, ok := a.lookupChannel(ev.Track)
			if !ok {
				return nil, fmt.Errorf("channel: volume change for track %q has no allocated channel", ev.Track.Name)
			}
			out = append(out, midievent.TimedMidiEvent{
				TimeAsMeasures: float32(ev.Time), EvType: midievent.EvVolumeChange,
				Channel: uint8(ch), Volume: uint8(ev.Volume),
			})
		case midievent.EvTempoChange:
			out = append(out, midievent.TimedMidiEvent{
				TimeAsMeasures: float32(ev.Time), EvType: midievent.EvTempoChange, BPM: float32(ev.BPM),
			})
		case midievent.EvMarker:
			out = append(out, midievent.TimedMidiEvent{TimeAsMeasures: float32(ev.Time), EvType: midievent.EvMarker})
		default:
			return nil, fmt.Errorf("channel: unexpected mid-stream event type %s", ev.EvType)
		}
	}

	for ch, slot := range a.slots {
		if slot.totalNotecount != 0 {
			panic(fmt.Sprintf("channel: channel %d has %d notes still sounding at end of stream", ch, slot.totalNotecount))
		}
	}

	out = append(out, midievent.TimedMidiEvent{TimeAsMeasures: float32(songLength), EvType: midievent.EvSongEnd})
	return out, nil
}

func (a *Allocator) handleNoteOn(ev MidiStreamEvent) ([]midievent.TimedMidiEvent, error) {
	ch, ok := a.lookupChannel(ev.Track)
	if !ok {
		return nil, fmt.Errorf("channel: out of available midi tracks at time %g", ev.Time)
	}
	slot := &a.slots[ch]
	slot.track = ev.Track

	var out []midievent.TimedMidiEvent
	if !slot.hasInstrument || slot.prevInstrument != ev.Instrument {
		out = append(out, midievent.TimedMidiEvent{
			TimeAsMeasures: float32(ev.Time), EvType: midievent.EvInstrumentChange,
			Channel: uint8(ch), Code: ev.Instrument.Code,
		})
		slot.prevInstrument = ev.Instrument
		slot.hasInstrument = true
	}

	wantVolume := clampVolume(ev.Track.Volume)
	if slot.prevVolume != wantVolume {
		out = append(out, midievent.TimedMidiEvent{
			TimeAsMeasures: float32(ev.Time), EvType: midievent.EvVolumeChange,
			Channel: uint8(ch), Volume: uint8(wantVolume),
		})
		slot.prevVolume = wantVolume
	}

	slot.notecount[ev.Note]++
	slot.totalNotecount++
	if slot.notecount[ev.Note] == 1 {
		out = append(out, midievent.TimedMidiEvent{
			TimeAsMeasures: float32(ev.Time), EvType: midievent.EvNoteOn,
			Channel: uint8(ch), Note: uint8(ev.Note), Velocity: uint8(ev.Velocity), Joining: ev.Joining,
		})
	} else {
		log.Printf("[CHANNEL] suppressing retrigger of note %d already sounding on channel %d", ev.Note, ch)
	}
	return out, nil
}

func (a *Allocator) handleNoteOff(ev MidiStreamEvent) ([]midievent.TimedMidiEvent, error) {
	ch, ok := a.findReservedChannel(ev.Track)
	if !ok {
		return nil, fmt.Errorf("channel: note-off for track %q with no reserved channel at time %g", ev.Track.Name, ev.Time)
	}
	slot := &a.slots[ch]
	slot.notecount[ev.Note]--
	slot.totalNotecount--

	var out []midievent.TimedMidiEvent
	if slot.notecount[ev.Note] == 0 {
		out = append(out, midievent.TimedMidiEvent{
			TimeAsMeasures: float32(ev.Time), EvType: midievent.EvNoteOff,
			Channel: uint8(ch), Note: uint8(ev.Note), Velocity: uint8(ev.Velocity), Joining: ev.Joining,
		})
	}
	if slot.totalNotecount == 0 {
		slot.track = nil
	}
	return out, nil
}

// lookupChannel resolves ev's track to a channel, reserving a free one if
// needed.
func (a *Allocator) lookupChannel(t *song.Track) (int, bool) {
	if !t.Autoallocate {
		return t.PreferredChannel, true
	}
	if t.PreferredChannel >= 0 {
		slot := &a.slots[t.PreferredChannel]
		if slot.track == t {
			return t.PreferredChannel, true
		}
		if slot.track == nil {
			slot.track = t
			return t.PreferredChannel, true
		}
	}
	for ch := 0; ch < numChannels; ch++ {
		if ch == song.DrumChannel {
			continue
		}
		if a.slots[ch].track == nil {
			a.slots[ch].track = t
			t.PreferredChannel = ch
			log.Printf("[CHANNEL] track %q moved to channel %d", t.Name, ch)
			return ch, true
		}
	}
	return 0, false
}

// findReservedChannel finds the slot currently pinned to t, which a prior
// NOTEON must have reserved.
func (a *Allocator) findReservedChannel(t *song.Track) (int, bool) {
	if !t.Autoallocate {
		return t.PreferredChannel, true
	}
	for ch := range a.slots {
		if a.slots[ch].track == t {
			return ch, true
		}
	}
	return 0, false
}

func clampVolume(volume float64) int {
	v := int(volume*127 + 0.5)
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return v
}

// SortFinal re-sorts a fully channel-resolved event list by
// (time, evtype ordinal, channel, note, velocity), the deterministic final
// order.
func SortFinal(events []midievent.TimedMidiEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.TimeAsMeasures != b.TimeAsMeasures {
			return a.TimeAsMeasures < b.TimeAsMeasures
		}
		if a.EvType.Ordinal() != b.EvType.Ordinal() {
			return a.EvType.Ordinal() < b.EvType.Ordinal()
		}
		if a.Channel != b.Channel {
			return a.Channel < b.Channel
		}
		if a.Note != b.Note {
			return a.Note < b.Note
		}
		return a.Velocity < b.Velocity
	})
}
