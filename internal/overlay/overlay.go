// Package overlay decodes the optional JSON instrument-overlay file named
// by the "--instrument-overlay" flag, supplementing the static
// toned/drumkit tables at startup without replacing their two defaults.
package overlay

import (
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/schollz/mdlc/internal/instrument"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// entry is the on-the-wire shape of one overlay instrument.
type entry struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Code uint8  `json:"code"`
}

// Load reads path as a JSON array of overlay entries and returns the
// decoded instruments.
func Load(path string) ([]instrument.Instrument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}

	out := make([]instrument.Instrument, 0, len(entries))
	for _, e := range entries {
		var kind instrument.Kind
		switch strings.ToLower(e.Kind) {
		case "toned":
			kind = instrument.Toned
		case "drum", "drumkit":
			kind = instrument.Drum
		default:
			return nil, fmt.Errorf("overlay: unknown instrument kind %q for %q", e.Kind, e.Name)
		}
		out = append(out, instrument.Instrument{Kind: kind, Name: e.Name, Code: e.Code})
	}
	return out, nil
}
