package midiconnector

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testFilterName(name string, availableDevices []string) (foundName string, foundNum int, err error) {
	foundNum = -1
	for i, n := range availableDevices {
		if strings.Contains(strings.ToLower(n), strings.ToLower(name)) {
			foundName = n
			foundNum = i
			break
		}
	}
	if foundNum == -1 {
		err = fmt.Errorf("could not find device with name %s", name)
	}
	return
}

func TestFilterNameLogic(t *testing.T) {
	t.Run("find device by partial name", func(t *testing.T) {
		devices := []string{"USB MIDI Device", "Internal MIDI", "Bluetooth MIDI"}

		foundName, foundNum, err := testFilterName("usb", devices)

		assert.NoError(t, err)
		assert.Equal(t, "USB MIDI Device", foundName)
		assert.Equal(t, 0, foundNum)
	})

	t.Run("case insensitive matching", func(t *testing.T) {
		devices := []string{"USB MIDI Device", "Internal MIDI"}

		foundName, foundNum, err := testFilterName("INTERNAL", devices)

		assert.NoError(t, err)
		assert.Equal(t, "Internal MIDI", foundName)
		assert.Equal(t, 1, foundNum)
	})

	t.Run("no matching device", func(t *testing.T) {
		devices := []string{"USB MIDI Device", "Internal MIDI"}

		_, foundNum, err := testFilterName("nonexistent", devices)

		assert.Error(t, err)
		assert.Equal(t, -1, foundNum)
		assert.Contains(t, err.Error(), "could not find device")
	})
}

func TestDeviceNoteTracking(t *testing.T) {
	d := &Device{
		name:    "test",
		num:     0,
		notesOn: make(map[uint8]bool),
	}

	note := uint8(60)
	d.notesOn[note] = true
	assert.True(t, d.notesOn[note])

	delete(d.notesOn, note)
	_, exists := d.notesOn[note]
	assert.False(t, exists)
}
