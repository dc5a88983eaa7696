// Package instrument holds the static General MIDI instrument and drumkit
// name tables (ground truth: original_source/lib/instrument.c) plus an
// optional JSON overlay that can add entries without touching the two
// defaults ("acoustic grand" / "drums").
package instrument

import (
	"sort"
	"strings"
)

// Kind distinguishes a melodic (toned) instrument from a drumkit.
type Kind int

const (
	Toned Kind = iota
	Drum
)

func (k Kind) String() string {
	if k == Drum {
		return "drumkit"
	}
	return "toned"
}

// Instrument is a named General MIDI program.
type Instrument struct {
	Kind Kind
	Name string
	Code uint8
}

// DefaultToned and DefaultDrum are the two instruments used when the
// relative-to-absolute pass bootstraps its initial context and no track
// default applies.
var (
	DefaultToned = Instrument{Kind: Toned, Name: "acoustic grand", Code: 0}
	DefaultDrum  = Instrument{Kind: Drum, Name: "drums", Code: 0}
)

// toned and drumkits are kept sorted by name so Lookup can prefix-match with
// a binary search, exactly like the reference's bsearch over a
// strncmp-sorted table.
var toned = []Instrument{
	{Toned, "accordion", 21},
	{Toned, "acoustic bass", 32},
	{Toned, "acoustic grand", 0},
	{Toned, "acoustic guitar (nylon)", 24},
	{Toned, "acoustic guitar (steel)", 25},
	{Toned, "agogo", 113},
	{Toned, "alto sax", 65},
	{Toned, "applause", 126},
	{Toned, "bagpipe", 109},
	{Toned, "banjo", 105},
	{Toned, "baritone sax", 67},
	{Toned, "bassoon", 70},
	{Toned, "bird tweet", 123},
	{Toned, "blown bottle", 76},
	{Toned, "brass section", 61},
	{Toned, "breath noise", 121},
	{Toned, "bright acoustic", 1},
	{Toned, "celesta", 8},
	{Toned, "cello", 42},
	{Toned, "choir aahs", 52},
	{Toned, "church organ", 19},
	{Toned, "clarinet", 71},
	{Toned, "clav", 7},
	{Toned, "concertina", 23},
	{Toned, "contrabass", 43},
	{Toned, "distorted guitar", 30},
	{Toned, "drawbar organ", 16},
	{Toned, "dulcimer", 15},
	{Toned, "electric bass (finger)", 33},
	{Toned, "electric bass (pick)", 34},
	{Toned, "electric grand", 2},
	{Toned, "electric guitar (clean)", 27},
	{Toned, "electric guitar (jazz)", 26},
	{Toned, "electric guitar (muted)", 28},
	{Toned, "electric piano 1", 4},
	{Toned, "electric piano 2", 5},
	{Toned, "english horn", 69},
	{Toned, "fiddle", 110},
	{Toned, "flute", 73},
	{Toned, "french horn", 60},
	{Toned, "fretless bass", 35},
	{Toned, "fx 1 (rain)", 96},
	{Toned, "fx 2 (soundtrack)", 97},
	{Toned, "fx 3 (crystal)", 98},
	{Toned, "fx 4 (atmosphere)", 99},
	{Toned, "fx 5 (brightness)", 100},
	{Toned, "fx 6 (goblins)", 101},
	{Toned, "fx 7 (echoes)", 102},
	{Toned, "fx 8 (sci-fi)", 103},
	{Toned, "glockenspiel", 9},
	{Toned, "guitar fret noise", 120},
	{Toned, "guitar harmonics", 31},
	{Toned, "gunshot", 127},
	{Toned, "harmonica", 22},
	{Toned, "harpsichord", 6},
	{Toned, "helicopter", 125},
	{Toned, "honky-tonk", 3},
	{Toned, "kalimba", 108},
	{Toned, "koto", 107},
	{Toned, "lead 1 (square)", 80},
	{Toned, "lead 2 (sawtooth)", 81},
	{Toned, "lead 3 (calliope)", 82},
	{Toned, "lead 4 (chiff)", 83},
	{Toned, "lead 5 (charang)", 84},
	{Toned, "lead 6 (voice)", 85},
	{Toned, "lead 7 (fifths)", 86},
	{Toned, "lead 8 (bass+lead)", 87},
	{Toned, "marimba", 12},
	{Toned, "melodic tom", 117},
	{Toned, "music box", 10},
	{Toned, "muted trumpet", 59},
	{Toned, "oboe", 68},
	{Toned, "ocarina", 79},
	{Toned, "orchestra hit", 55},
	{Toned, "orchestral harp", 46},
	{Toned, "overdriven guitar", 29},
	{Toned, "pad 1 (new age)", 88},
	{Toned, "pad 2 (warm)", 89},
	{Toned, "pad 3 (polysynth)", 90},
	{Toned, "pad 4 (choir)", 91},
	{Toned, "pad 5 (bowed)", 92},
	{Toned, "pad 6 (metallic)", 93},
	{Toned, "pad 7 (halo)", 94},
	{Toned, "pad 8 (sweep)", 95},
	{Toned, "pan flute", 75},
	{Toned, "percussive organ", 17},
	{Toned, "piccolo", 72},
	{Toned, "pizzicato strings", 45},
	{Toned, "recorder", 74},
	{Toned, "reed organ", 20},
	{Toned, "reverse cymbal", 119},
	{Toned, "rock organ", 18},
	{Toned, "seashore", 122},
	{Toned, "shakuhachi", 77},
	{Toned, "shamisen", 106},
	{Toned, "shanai", 111},
	{Toned, "sitar", 104},
	{Toned, "slap bass 1", 36},
	{Toned, "slap bass 2", 37},
	{Toned, "soprano sax", 64},
	{Toned, "steel drums", 114},
	{Toned, "string ensemble 1", 48},
	{Toned, "string ensemble 2", 49},
	{Toned, "synth bass 1", 38},
	{Toned, "synth bass 2", 39},
	{Toned, "synth drum", 118},
	{Toned, "synth voice", 54},
	{Toned, "synthbrass 1", 62},
	{Toned, "synthbrass 2", 63},
	{Toned, "synthstrings 1", 50},
	{Toned, "synthstrings 2", 51},
	{Toned, "taiko drum", 116},
	{Toned, "telephone ring", 124},
	{Toned, "tenor sax", 66},
	{Toned, "timpani", 47},
	{Toned, "tinkle bell", 112},
	{Toned, "tremolo strings", 44},
	{Toned, "trombone", 57},
	{Toned, "trumpet", 56},
	{Toned, "tuba", 58},
	{Toned, "tubular bells", 14},
	{Toned, "vibraphone", 11},
	{Toned, "viola", 41},
	{Toned, "violin", 40},
	{Toned, "voice oohs", 53},
	{Toned, "whistle", 78},
	{Toned, "woodblock", 115},
	{Toned, "xylophone", 13},
}

var drumkits = []Instrument{
	{Drum, "brush drums", 40},
	{Drum, "brush kit", 40},
	{Drum, "classical drums", 48},
	{Drum, "cm-64 drums", 127},
	{Drum, "cm-64 kit", 127},
	{Drum, "drums", 0},
	{Drum, "electronic drums", 24},
	{Drum, "electronic kit", 24},
	{Drum, "jazz drums", 32},
	{Drum, "jazz kit", 32},
	{Drum, "mt-32 drums", 127},
	{Drum, "mt-32 kit", 127},
	{Drum, "orchestra drums", 48},
	{Drum, "orchestra kit", 48},
	{Drum, "power drums", 16},
	{Drum, "power kit", 16},
	{Drum, "rock drums", 16},
	{Drum, "room drums", 8},
	{Drum, "room kit", 8},
	{Drum, "sfx drums", 56},
	{Drum, "sfx kit", 56},
	{Drum, "standard drums", 0},
	{Drum, "standard kit", 0},
	{Drum, "tr-808 drums", 25},
	{Drum, "tr-808 kit", 25},
}

// overlay holds additional entries loaded at startup via LoadOverlay; it is
// searched after the static tables so a caller can extend, but never shadow,
// the two defaults.
var overlay []Instrument

func init() {
	sort.Slice(toned, func(i, j int) bool { return toned[i].Name < toned[j].Name })
	sort.Slice(drumkits, func(i, j int) bool { return drumkits[i].Name < drumkits[j].Name })
}

// LoadOverlay appends extra instrument entries, e.g. decoded from a JSON
// config file (see internal/overlay). Entries are appended, not merged, so
// later overlay calls can add further custom instruments across a process
// lifetime; they are only ever consulted after the static tables miss.
func LoadOverlay(extra []Instrument) {
	overlay = append(overlay, extra...)
}

// ResetOverlay clears any loaded overlay entries. Exposed for tests.
func ResetOverlay() {
	overlay = nil
}

// Lookup finds an instrument by case-insensitive prefix match against name,
// matching the reference's strncmp-bounded bsearch. Returns ok=false on
// miss; callers apply their own default.
func Lookup(kind Kind, name string) (Instrument, bool) {
	table := toned
	if kind == Drum {
		table = drumkits
	}
	needle := strings.ToLower(strings.TrimSpace(name))
	if inst, ok := prefixSearch(table, needle); ok {
		return inst, true
	}
	for _, inst := range overlay {
		if inst.Kind != kind {
			continue
		}
		if strings.HasPrefix(strings.ToLower(inst.Name), needle) {
			return inst, true
		}
	}
	return Instrument{}, false
}

func prefixSearch(table []Instrument, needle string) (Instrument, bool) {
	// table is sorted by name; find the first entry whose name is >= needle
	// and check whether needle is a prefix of it (mirrors a strncmp bsearch
	// closely enough for our purposes while staying O(log n) on the common
	// case of an exact or near-exact instrument name).
	i := sort.Search(len(table), func(i int) bool { return table[i].Name >= needle })
	if i < len(table) && strings.HasPrefix(table[i].Name, needle) {
		return table[i], true
	}
	// Fall back to a linear prefix scan: the sorted-order shortcut above
	// only finds the lexicographically first match, but "drums" is itself a
	// prefix of "drums"-led kit names that sort before other match classes;
	// a full scan keeps lookup correct for every prefix query at the cost of
	// table size (at most a few hundred entries).
	for _, inst := range table {
		if strings.HasPrefix(inst.Name, needle) {
			return inst, true
		}
	}
	return Instrument{}, false
}
