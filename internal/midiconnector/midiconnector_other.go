//go:build !windows

// Package midiconnector wraps a single MIDI output port: opening it by
// (fuzzy) name, and sending note on/off and program-change bytes to it.
// Every open port is cached process-wide so repeated lookups of the same
// device name reuse one connection.
package midiconnector

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

var mutex sync.Mutex

var devicesOpen map[string]drivers.Out

func init() {
	devicesOpen = make(map[string]drivers.Out)
}

type Device struct {
	name    string
	num     int
	notesOn map[uint8]bool
}

func filterName(name string) (foundName string, foundNum int, err error) {
	names := Devices()

	words := strings.Fields(name)
	if len(words) > 3 {
		words = words[:3]
	}
	truncatedName := strings.Join(words, " ")

	for i, n := range names {
		if strings.EqualFold(n, truncatedName) {
			return n, i, nil
		}
	}
	for i, n := range names {
		if strings.HasPrefix(strings.ToLower(n), strings.ToLower(truncatedName)) {
			return n, i, nil
		}
	}
	for i, n := range names {
		if strings.Contains(strings.ToLower(n), strings.ToLower(truncatedName)) {
			return n, i, nil
		}
	}

	return "", -1, fmt.Errorf("could not find device with name %s", truncatedName)
}

func New(name string) (*Device, error) {
	var d Device
	var err error
	d.name, d.num, err = filterName(name)
	d.notesOn = make(map[uint8]bool)
	return &d, err
}

// NewDetached returns a Device that is never associated with an open
// output port, so every send on it is a safe no-op. It exists for callers
// that want to exercise dispatch logic without real MIDI hardware.
func NewDetached(name string) *Device {
	return &Device{name: name, notesOn: make(map[uint8]bool)}
}

func Close() {
	mutex.Lock()
	defer mutex.Unlock()
	for _, out := range devicesOpen {
		out.Close()
	}
}

func (d *Device) Open() (err error) {
	mutex.Lock()
	defer mutex.Unlock()
	if _, ok := devicesOpen[d.name]; ok {
		return
	}
	out, err := midi.FindOutPort(d.name)
	if err == nil {
		devicesOpen[d.name] = out
		err = out.Open()
	}
	return
}

func (d *Device) Close() (err error) {
	for note := range d.notesOn {
		d.NoteOff(0, note)
	}
	mutex.Lock()
	defer mutex.Unlock()
	if out, ok := devicesOpen[d.name]; ok {
		err = out.Close()
		delete(devicesOpen, d.name)
	}
	return
}

func (d *Device) NoteOn(channel, note, velocity uint8) (err error) {
	mutex.Lock()
	defer mutex.Unlock()
	if out, ok := devicesOpen[d.name]; ok {
		err = out.Send([]byte{0x90 | channel, note, velocity})
		if err != nil {
			log.Printf("[MIDICONNECTOR] note-on error on %s: %v", d.name, err)
		} else {
			d.notesOn[note] = true
		}
	}
	return
}

func (d *Device) NoteOff(channel, note uint8) (err error) {
	mutex.Lock()
	defer mutex.Unlock()
	if out, ok := devicesOpen[d.name]; ok {
		err = out.Send([]byte{0x80 | channel, note, 0})
		if err != nil {
			log.Printf("[MIDICONNECTOR] note-off error on %s: %v", d.name, err)
		} else {
			delete(d.notesOn, note)
		}
	}
	return
}

// ProgramChange sends a program-change message, switching the instrument
// playing on channel.
func (d *Device) ProgramChange(channel, program uint8) (err error) {
	mutex.Lock()
	defer mutex.Unlock()
	if out, ok := devicesOpen[d.name]; ok {
		err = out.Send([]byte{0xC0 | channel, program})
		if err != nil {
			log.Printf("[MIDICONNECTOR] program-change error on %s: %v", d.name, err)
		}
	}
	return
}

// ControlChange sends a control-change message (e.g. CC#7 channel volume).
func (d *Device) ControlChange(channel, controller, value uint8) (err error) {
	mutex.Lock()
	defer mutex.Unlock()
	if out, ok := devicesOpen[d.name]; ok {
		err = out.Send([]byte{0xB0 | channel, controller, value})
		if err != nil {
			log.Printf("[MIDICONNECTOR] control-change error on %s: %v", d.name, err)
		}
	}
	return
}

func Devices() (devices []string) {
	outs := midi.GetOutPorts()
	for _, out := range outs {
		devices = append(devices, out.String())
	}
	return
}
