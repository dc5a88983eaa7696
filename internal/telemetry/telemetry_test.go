package telemetry

import (
	"testing"

	"github.com/schollz/mdlc/internal/midievent"
)

func TestNotifyNilBroadcasterIsNoop(t *testing.T) {
	var b *Broadcaster
	b.Notify([]midievent.TimedMidiEvent{{EvType: midievent.EvSongEnd}})
}

func TestNotifyDoesNotPanicOnUnreachableAddress(t *testing.T) {
	b := New("127.0.0.1", 1)
	events := []midievent.TimedMidiEvent{
		{TimeAsMeasures: 0, EvType: midievent.EvTempoChange, BPM: 120},
		{TimeAsMeasures: 1, EvType: midievent.EvMarker},
		{TimeAsMeasures: 2, EvType: midievent.EvSongEnd},
		{TimeAsMeasures: 0.5, EvType: midievent.EvNoteOn},
	}
	b.Notify(events)
}
