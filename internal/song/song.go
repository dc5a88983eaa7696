// Package song holds the track registry a compile operates against: each
// compile owns exactly one Song, and every expression node that references
// a track holds a pointer into that Song's registry rather than a copy.
package song

import "github.com/schollz/mdlc/internal/instrument"

// Kind distinguishes a melodic track from the reserved drum track.
type Kind int

const (
	TonedTrack Kind = iota
	DrumTrack
)

// DrumChannel is the MIDI channel index permanently reserved for drum
// tracks (the 10th channel, zero-based).
const DrumChannel = 9

// UnsetChannel marks a track with no channel preference yet.
const UnsetChannel = -1

const defaultVolume = 0.5

// Track is a named destination for note events: an instrument, a volume,
// and (for the channel allocator) a preferred channel and whether the
// allocator may move it off that preference.
type Track struct {
	Name             string
	Volume           float64
	PreferredChannel int
	Autoallocate     bool
	Instrument       instrument.Instrument
	Kind             Kind
}

// Song is the per-compile track registry. Track identity is by pointer:
// once created, a *Track is never replaced, only its fields are mutated by
// the channel allocator (PreferredChannel) and by RegisterDrumTrack (Kind,
// Autoallocate, PreferredChannel).
type Song struct {
	tracks           []*Track
	DefaultTrack     *Track
	DefaultDrumTrack *Track
}

// New creates an empty registry with the two defaults already present:
// a toned default track ("acoustic grand") and a drum default track
// ("drums", pinned to the reserved channel).
func New() *Song {
	s := &Song{}
	s.DefaultTrack = s.newTrack("acoustic grand", TonedTrack)
	s.DefaultDrumTrack = s.newTrack("drums", DrumTrack)
	return s
}

func (s *Song) newTrack(name string, kind Kind) *Track {
	t := &Track{
		Name:             name,
		Volume:           defaultVolume,
		PreferredChannel: UnsetChannel,
		Autoallocate:     true,
		Kind:             kind,
	}
	if kind == DrumTrack {
		inst, _ := instrument.Lookup(instrument.Drum, name)
		t.Instrument = inst
		t.Autoallocate = false
		t.PreferredChannel = DrumChannel
	} else {
		inst, ok := instrument.Lookup(instrument.Toned, name)
		if !ok {
			inst = instrument.DefaultToned
		}
		t.Instrument = inst
	}
	s.tracks = append(s.tracks, t)
	return t
}

// FindOrCreate returns the track named exactly name, creating it (as a
// toned track, looking up its default instrument by the same name) if it
// does not already exist.
func (s *Song) FindOrCreate(name string) *Track {
	for _, t := range s.tracks {
		if t.Name == name {
			return t
		}
	}
	return s.newTrack(name, TonedTrack)
}

// RegisterDrumTrack marks an existing or new track named name as drum-kind:
// pinned to the reserved drum channel with autoallocation disabled, exactly
// like the built-in "drums" default.
func (s *Song) RegisterDrumTrack(name string) *Track {
	for _, t := range s.tracks {
		if t.Name == name {
			t.Kind = DrumTrack
			t.Autoallocate = false
			t.PreferredChannel = DrumChannel
			return t
		}
	}
	return s.newTrack(name, DrumTrack)
}

// Tracks returns every registered track, in registration order.
func (s *Song) Tracks() []*Track {
	return s.tracks
}
