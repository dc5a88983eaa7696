// Package telemetry broadcasts optional OSC notifications as a compiled
// event stream is finalized, so a downstream visualizer can follow along.
// It carries no scheduling semantics and has no bearing on the compiled
// output; a nil Broadcaster is always safe to call through.
package telemetry

import (
	"log"

	"github.com/hypebeast/go-osc/osc"

	"github.com/schollz/mdlc/internal/midievent"
)

// Broadcaster sends OSC messages to a single fixed address. The zero value
// is not usable; construct one with New.
type Broadcaster struct {
	client *osc.Client
}

// New returns a Broadcaster targeting host:port.
func New(host string, port int) *Broadcaster {
	return &Broadcaster{client: osc.NewClient(host, port)}
}

// Notify sends one OSC message per relevant event in events: /mdlc/tempo
// for TEMPOCHANGE, /mdlc/marker for MARKER, /mdlc/done for SONG_END. Other
// event types are not observable over telemetry. A nil Broadcaster is a
// no-op, so callers can pass one through unconditionally when telemetry
// wasn't requested.
func (b *Broadcaster) Notify(events []midievent.TimedMidiEvent) {
	if b == nil {
		return
	}
	for _, ev := range events {
		switch ev.EvType {
		case midievent.EvTempoChange:
			b.send("/mdlc/tempo", float32(ev.TimeAsMeasures), ev.BPM)
		case midievent.EvMarker:
			b.send("/mdlc/marker", float32(ev.TimeAsMeasures))
		case midievent.EvSongEnd:
			b.send("/mdlc/done", float32(ev.TimeAsMeasures))
		}
	}
}

func (b *Broadcaster) send(address string, args ...interface{}) {
	msg := osc.NewMessage(address)
	for _, a := range args {
		msg.Append(a)
	}
	if err := b.client.Send(msg); err != nil {
		log.Printf("[TELEMETRY] send %s: %v", address, err)
	}
}
