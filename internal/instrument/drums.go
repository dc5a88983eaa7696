package instrument

// DrumSymbol names a percussion voice as written in source, e.g. "bda" for
// acoustic bass drum or "sn" for snare. The full set and its note numbers
// are ground truth: the General MIDI percussion key map, in the same order
// as enum drumsym in the reference's musicexpr.h.
type DrumSymbol string

// drumNotes maps every drum symbol to its GM percussion note number. Several
// symbols alias to the same note (e.g. "hh" and "hhc" both ring the closed
// hi-hat); that mirrors the reference, which gives a player more than one
// name for the same GM key.
var drumNotes = map[DrumSymbol]uint8{
	"bda":   35, // acoustic bass drum
	"bd":    36, // bass drum 1
	"ssh":   37, // side stick (hi)
	"ss":    37, // side stick
	"ssl":   37, // side stick (lo)
	"sna":   38, // acoustic snare
	"sn":    38, // snare
	"hc":    39, // hand clap
	"sne":   40, // electric snare
	"tomfl": 41, // low floor tom
	"hhc":   42, // closed hi-hat
	"hh":    42, // hi-hat
	"tomfh": 43, // high floor tom
	"hhp":   44, // pedal hi-hat
	"toml":  45, // low tom
	"hho":   46, // open hi-hat
	"hhho":  46, // half-open hi-hat
	"tomml": 47, // low-mid tom
	"tommh": 48, // hi-mid tom
	"cymca": 49, // crash cymbal a
	"cymc":  49, // crash cymbal
	"tomh":  50, // high tom
	"cymra": 51, // ride cymbal a
	"cymr":  51, // ride cymbal
	"cymch": 52, // chinese cymbal
	"rb":    53, // ride bell
	"tamb":  54, // tambourine
	"cyms":  55, // splash cymbal
	"cb":    56, // cowbell
	"cymcb": 57, // crash cymbal b
	"vibs":  58, // vibraslap
	"cymrb": 59, // ride cymbal b
	"bohm":  60, // mute hi bongo
	"boh":   60, // hi bongo
	"boho":  60, // open hi bongo
	"bolm":  61, // mute lo bongo
	"bol":   61, // lo bongo
	"bolo":  61, // open lo bongo
	"cghm":  62, // mute hi conga
	"cglm":  62, // mute lo conga
	"cgho":  63, // open hi conga
	"cgh":   63, // hi conga
	"cglo":  64, // open lo conga
	"cgl":   64, // lo conga
	"timh":  65, // hi timbale
	"timl":  66, // lo timbale
	"agh":   67, // hi agogo
	"agl":   68, // lo agogo
	"cab":   69, // cabasa
	"mar":   70, // maracas
	"whs":   71, // short whistle
	"whl":   72, // long whistle
	"guis":  73, // short guiro
	"guil":  74, // long guiro
	"gui":   73, // guiro
	"cl":    75, // claves
	"wbh":   76, // hi wood block
	"wbl":   77, // lo wood block
	"cuim":  78, // mute cuica
	"cuio":  79, // open cuica
	"trim":  80, // mute triangle
	"tri":   80, // triangle
	"trio":  81, // open triangle
}

// DrumNote resolves a drum symbol to its GM percussion note number.
func DrumNote(sym DrumSymbol) (uint8, bool) {
	note, ok := drumNotes[sym]
	return note, ok
}
