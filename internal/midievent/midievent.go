// Package midievent implements the compiled wire format: a stream of
// fixed-size binary TimedMidiEvent records with no framing headers,
// written contiguously to whatever the caller hands in (a pipe, a file,
// a socket).
package midievent

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// EvType tags the discriminated payload of a TimedMidiEvent. The first four
// constants below follow the tie-break order the sort-and-allocate pass
// uses at identical timestamps: NOTEOFF before TEMPOCHANGE before
// VOLUMECHANGE before NOTEON, so a re-attack at the same instant never
// sounds silent. Ordinal gives the full rank, which also places
// INSTRUMENT_CHANGE right after NOTEOFF.
type EvType uint8

const (
	EvNoteOff EvType = iota
	EvTempoChange
	EvVolumeChange
	EvNoteOn
	EvInstrumentChange
	EvMarker
	EvSongEnd
)

func (e EvType) String() string {
	switch e {
	case EvNoteOff:
		return "NOTEOFF"
	case EvNoteOn:
		return "NOTEON"
	case EvInstrumentChange:
		return "INSTRUMENT_CHANGE"
	case EvTempoChange:
		return "TEMPOCHANGE"
	case EvVolumeChange:
		return "VOLUMECHANGE"
	case EvMarker:
		return "MARKER"
	case EvSongEnd:
		return "SONG_END"
	default:
		return "UNKNOWN"
	}
}

// Ordinal returns the sort-order rank of e. Ties within NOTEON/NOTEOFF etc.
// are broken on secondary fields by the caller (channel/note/velocity).
// INSTRUMENT_CHANGE ranks ahead of TEMPOCHANGE/VOLUMECHANGE/NOTEON so a
// channel's program is always set before anything else plays on it.
func (e EvType) Ordinal() int {
	switch e {
	case EvNoteOff:
		return 0
	case EvInstrumentChange:
		return 1
	case EvTempoChange:
		return 2
	case EvVolumeChange:
		return 3
	case EvNoteOn:
		return 4
	case EvMarker:
		return 5
	case EvSongEnd:
		return 6
	default:
		return 99
	}
}

// TimedMidiEvent is one wire record. Only the fields relevant to EvType are
// meaningful; the rest are zero.
type TimedMidiEvent struct {
	TimeAsMeasures float32
	EvType         EvType

	Channel  uint8 // INSTRUMENT_CHANGE, NOTEON, NOTEOFF, VOLUMECHANGE
	Code     uint8 // INSTRUMENT_CHANGE: program code
	Note     uint8 // NOTEON, NOTEOFF
	Velocity uint8 // NOTEON, NOTEOFF
	Joining  bool  // NOTEON, NOTEOFF
	BPM      float32
	Volume   uint8 // VOLUMECHANGE
}

// recordSize is the fixed on-wire size of one record: time(4) + evtype(1) +
// channel(1) + code(1) + note(1) + velocity(1) + joining(1) + bpm(4) +
// volume(1) = 15 bytes. Every field is written for every record, so every
// record is the same size regardless of which fields its evtype actually
// uses.
const recordSize = 4 + 1 + 1 + 1 + 1 + 1 + 1 + 4 + 1

// Encode appends ev's wire representation to buf and returns the result.
func Encode(buf []byte, ev TimedMidiEvent) []byte {
	var b [recordSize]byte
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(ev.TimeAsMeasures))
	b[4] = byte(ev.EvType)
	b[5] = ev.Channel
	b[6] = ev.Code
	b[7] = ev.Note
	b[8] = ev.Velocity
	if ev.Joining {
		b[9] = 1
	}
	binary.LittleEndian.PutUint32(b[10:14], math.Float32bits(ev.BPM))
	b[14] = ev.Volume
	return append(buf, b[:]...)
}

// Decode reads one record from the front of buf, returning the event and
// the unconsumed remainder. It returns an error if buf is shorter than one
// record.
func Decode(buf []byte) (TimedMidiEvent, []byte, error) {
	if len(buf) < recordSize {
		return TimedMidiEvent{}, buf, fmt.Errorf("midievent: short record: have %d bytes, need %d", len(buf), recordSize)
	}
	ev := TimedMidiEvent{
		TimeAsMeasures: math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])),
		EvType:         EvType(buf[4]),
		Channel:        buf[5],
		Code:           buf[6],
		Note:           buf[7],
		Velocity:       buf[8],
		Joining:        buf[9] != 0,
		BPM:            math.Float32frombits(binary.LittleEndian.Uint32(buf[10:14])),
		Volume:         buf[14],
	}
	return ev, buf[recordSize:], nil
}

// WriteAll encodes and writes every event in events to w, retrying a
// partial or interrupted write until all bytes are delivered or a
// non-transient error occurs (see writeFull for the retry policy).
func WriteAll(w io.Writer, events []TimedMidiEvent) error {
	var buf []byte
	for _, ev := range events {
		buf = Encode(buf, ev)
	}
	return writeFull(w, buf)
}

// ReadAll reads every record from r until EOF and decodes it. It returns an
// error if the stream ends mid-record.
func ReadAll(r io.Reader) ([]TimedMidiEvent, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var events []TimedMidiEvent
	for len(buf) > 0 {
		var ev TimedMidiEvent
		ev, buf, err = Decode(buf)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}
