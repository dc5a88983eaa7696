package compile

import (
	"github.com/schollz/mdlc/internal/musicexpr"
	"github.com/schollz/mdlc/internal/song"
)

// SetupTracks walks me and replaces every temporary track reference (an
// ONTRACK or VOLUMECHANGE node whose Track carries only a Name, as
// delivered by the parser/fixture) with the song's canonical track for
// that name, creating it on first reference. The two song defaults
// already exist before this runs (song.New registers them).
func SetupTracks(s *song.Song, me *musicexpr.Expr) {
	switch me.Kind {
	case musicexpr.KindOnTrack:
		if me.Track != nil {
			me.Track = s.FindOrCreate(me.Track.Name)
		}
	case musicexpr.KindVolumeChange:
		if me.Track != nil {
			me.Track = s.FindOrCreate(me.Track.Name)
		}
	}
	for _, child := range musicexpr.Iter(me) {
		SetupTracks(s, child)
	}
}
