package compile

import (
	"testing"

	"github.com/schollz/mdlc/internal/midievent"
	"github.com/schollz/mdlc/internal/song"
	"github.com/stretchr/testify/require"
)

func TestAllocatorExhaustsChannels(t *testing.T) {
	alloc := NewAllocator()
	var events []MidiStreamEvent
	tracks := make([]*song.Track, 0, 16)
	// 16 melodic tracks, but channel 9 is reserved for drums, leaving only 15 free.
	for i := 0; i < 16; i++ {
		tr := &song.Track{Name: string(rune('a' + i)), Autoallocate: true, PreferredChannel: song.UnsetChannel}
		tracks = append(tracks, tr)
		events = append(events, MidiStreamEvent{Time: 0, EvType: midievent.EvNoteOn, Track: tr, Note: 60 + i, Velocity: 80})
	}
	_, err := alloc.Run(events, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "out of available midi tracks")
}

func TestAllocatorPinsDrumTrackToChannel9(t *testing.T) {
	alloc := NewAllocator()
	drum := &song.Track{Name: "drums", Autoallocate: false, PreferredChannel: song.DrumChannel}
	events := []MidiStreamEvent{
		{Time: 0, EvType: midievent.EvNoteOn, Track: drum, Note: 36, Velocity: 80},
		{Time: 0.25, EvType: midievent.EvNoteOff, Track: drum, Note: 36, Velocity: 80},
	}
	out, err := alloc.Run(events, 0.25)
	require.NoError(t, err)
	for _, ev := range out {
		if ev.EvType == midievent.EvNoteOn || ev.EvType == midievent.EvNoteOff {
			require.EqualValues(t, song.DrumChannel, ev.Channel)
		}
	}
}

func TestAllocatorReusesReservedChannelForRepeatedNotes(t *testing.T) {
	alloc := NewAllocator()
	tr := &song.Track{Name: "piano", Autoallocate: true, PreferredChannel: song.UnsetChannel}
	events := []MidiStreamEvent{
		{Time: 0, EvType: midievent.EvNoteOn, Track: tr, Note: 60, Velocity: 80},
		{Time: 0.25, EvType: midievent.EvNoteOn, Track: tr, Note: 64, Velocity: 80},
		{Time: 0.5, EvType: midievent.EvNoteOff, Track: tr, Note: 60, Velocity: 80},
		{Time: 0.5, EvType: midievent.EvNoteOff, Track: tr, Note: 64, Velocity: 80},
	}
	out, err := alloc.Run(events, 0.5)
	require.NoError(t, err)

	var channel uint8
	seen := false
	for _, ev := range out {
		if ev.EvType == midievent.EvNoteOn || ev.EvType == midievent.EvNoteOff {
			if !seen {
				channel = ev.Channel
				seen = true
			} else {
				require.Equal(t, channel, ev.Channel)
			}
		}
	}
}
