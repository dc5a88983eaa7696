// Package midiplayer is the non-authoritative demonstration consumer of
// the compiler's wire format: it replays a decoded TimedMidiEvent stream
// against a real MIDI output port, one channel of the port per compiled
// MIDI channel. It has no bearing on what the compiler emits - it only
// proves the format is playable.
package midiplayer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/schollz/mdlc/internal/midiconnector"
	"github.com/schollz/mdlc/internal/midievent"
)

const defaultBPM = 120

// ccChannelVolume is the MIDI control-change number for channel volume.
const ccChannelVolume = 7

// beatsPerMeasure matches the compiler's convention that one measure unit
// of TimeAsMeasures is one whole note.
const beatsPerMeasure = 4

// Player replays a TimedMidiEvent stream against a single open MIDI
// device, dispatching note on/off and program-change messages on the
// channel each event already carries.
type Player struct {
	Device *midiconnector.Device
}

// New opens the named MIDI output port and returns a Player bound to it.
func New(deviceName string) (*Player, error) {
	dev, err := midiconnector.New(deviceName)
	if err != nil {
		return nil, err
	}
	if err := dev.Open(); err != nil {
		return nil, fmt.Errorf("midiplayer: open %s: %w", deviceName, err)
	}
	return &Player{Device: dev}, nil
}

func (p *Player) Close() error {
	return p.Device.Close()
}

// Play dispatches events in order, sleeping between them according to the
// tempo in effect at each point in the stream. events must already be
// sorted by TimeAsMeasures, as compile.Compile's output always is. Play
// returns when events is exhausted, a SONG_END record is reached, or ctx
// is cancelled.
func (p *Player) Play(ctx context.Context, events []midievent.TimedMidiEvent) error {
	bpm := float64(defaultBPM)
	prevMeasure := float64(0)

	for _, ev := range events {
		delta := float64(ev.TimeAsMeasures) - prevMeasure
		prevMeasure = float64(ev.TimeAsMeasures)
		if delta > 0 {
			wait := time.Duration(delta * beatsPerMeasure * 60 / bpm * float64(time.Second))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		switch ev.EvType {
		case midievent.EvNoteOn:
			if err := p.Device.NoteOn(ev.Channel, ev.Note, ev.Velocity); err != nil {
				log.Printf("[MIDIPLAYER] note-on error: %v", err)
			}
		case midievent.EvNoteOff:
			if err := p.Device.NoteOff(ev.Channel, ev.Note); err != nil {
				log.Printf("[MIDIPLAYER] note-off error: %v", err)
			}
		case midievent.EvInstrumentChange:
			if err := p.Device.ProgramChange(ev.Channel, ev.Code); err != nil {
				log.Printf("[MIDIPLAYER] program-change error: %v", err)
			}
		case midievent.EvTempoChange:
			bpm = float64(ev.BPM)
			log.Printf("[MIDIPLAYER] tempo change: %g bpm", bpm)
		case midievent.EvVolumeChange:
			if err := p.Device.ControlChange(ev.Channel, ccChannelVolume, ev.Volume); err != nil {
				log.Printf("[MIDIPLAYER] volume-change error: %v", err)
			}
		case midievent.EvMarker:
			log.Printf("[MIDIPLAYER] marker at measure %g", ev.TimeAsMeasures)
		case midievent.EvSongEnd:
			return nil
		}
	}
	return nil
}
