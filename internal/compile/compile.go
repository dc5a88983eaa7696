package compile

import (
	"log"

	"github.com/schollz/mdlc/internal/midievent"
	"github.com/schollz/mdlc/internal/musicexpr"
	"github.com/schollz/mdlc/internal/song"
	"github.com/schollz/mdlc/internal/textloc"
)

// Compile runs the full pipeline over root: function application,
// track registration, relative->absolute resolution, join tagging,
// flattening, mid-stream construction and channel allocation. It returns
// the final, fully sorted wire event list.
//
// ids must be the same counter that assigned identity to root's nodes (or
// one continuing from wherever the caller's decoder left off), since every
// pass below allocates further node ids as it rewrites the tree.
func Compile(ids *textloc.Counter, root *musicexpr.Expr) ([]midievent.TimedMidiEvent, error) {
	log.Printf("[COMPILE] starting compile")

	if err := ApplyFunctions(ids, root); err != nil {
		return nil, err
	}

	s := song.New()
	SetupTracks(s, root)

	if err := RelativeToAbsolute(ids, root, s); err != nil {
		return nil, err
	}

	if err := JoinPass(ids, root); err != nil {
		return nil, err
	}

	flat, err := Flatten(ids, root)
	if err != nil {
		return nil, err
	}

	midStream, err := BuildMidiStream(flat)
	if err != nil {
		return nil, err
	}

	alloc := NewAllocator()
	out, err := alloc.Run(midStream, flat.Length)
	if err != nil {
		return nil, err
	}
	SortFinal(out)

	log.Printf("[COMPILE] finished: %d events, song length %g measures", len(out), flat.Length)
	return out, nil
}
