package musicexpr

// ChordType names a chord shape; ChordToOffsets resolves it to the
// semitone offsets from the root the CHORD flattening step stacks onto the
// chord's single child note. Ground truth: the static offset table in
// original_source/lib/musicexpr.c (chord_to_noteoffsetexpr).
type ChordType int

const (
	ChordNone ChordType = iota
	ChordMaj
	ChordMin
	ChordAug
	ChordDim
	Chord7
	ChordMaj7
	ChordMin7
	ChordDim7
	ChordAug7
	ChordDim5Min7
	ChordMin5Maj7
	ChordMaj6
	ChordMin6
	Chord9
	ChordMaj9
	ChordMin9
	Chord11
	ChordMaj11
	ChordMin11
	Chord13
	Chord13_11
	ChordMaj13_11
	ChordMin13_11
	ChordSus2
	ChordSus4
	Chord5
	Chord5_8
	chordTypeMax
)

var chordOffsets = map[ChordType][]int{
	ChordNone:     {0},
	ChordMaj:      {0, 4, 7},
	ChordMin:      {0, 3, 7},
	ChordAug:      {0, 4, 8},
	ChordDim:      {0, 3, 6},
	Chord7:        {0, 4, 7, 10},
	ChordMaj7:     {0, 4, 7, 11},
	ChordMin7:     {0, 3, 7, 10},
	ChordDim7:     {0, 3, 6, 9},
	ChordAug7:     {0, 4, 8, 10},
	ChordDim5Min7: {0, 3, 5, 10},
	ChordMin5Maj7: {0, 3, 7, 11},
	ChordMaj6:     {0, 4, 7, 9},
	ChordMin6:     {0, 3, 7, 9},
	Chord9:        {0, 4, 7, 10, 14},
	ChordMaj9:     {0, 4, 7, 11, 14},
	ChordMin9:     {0, 3, 7, 10, 14},
	Chord11:       {0, 4, 7, 10, 14, 17},
	ChordMaj11:    {0, 4, 7, 11, 14, 17},
	ChordMin11:    {0, 3, 7, 10, 14, 17},
	Chord13:       {0, 4, 7, 10, 14, 21},
	Chord13_11:    {0, 4, 7, 10, 14, 17, 21},
	ChordMaj13_11: {0, 4, 7, 11, 14, 17, 21},
	ChordMin13_11: {0, 3, 7, 10, 14, 17, 21},
	ChordSus2:     {0, 2, 7},
	ChordSus4:     {0, 5, 7},
	Chord5:        {0, 7},
	Chord5_8:      {0, 7, 12},
}

// ChordToOffsets returns the semitone offsets for ct, or ok=false if ct is
// out of range.
func ChordToOffsets(ct ChordType) (offsets []int, ok bool) {
	if ct < 0 || ct >= chordTypeMax {
		return nil, false
	}
	offsets, ok = chordOffsets[ct]
	return
}
