package fixture

import (
	"testing"

	"github.com/schollz/mdlc/internal/musicexpr"
	"github.com/schollz/mdlc/internal/textloc"
	"github.com/stretchr/testify/require"
)

func TestDecodeSimpleSequence(t *testing.T) {
	data := []byte(`{
		"kind": "sequence",
		"children": [
			{"kind": "relnote", "notesym": "c", "length": 0.25},
			{"kind": "relnote", "notesym": "d", "length": 0.25}
		]
	}`)

	ids := textloc.NewCounter()
	me, err := Decode(ids, data)
	require.NoError(t, err)
	require.Equal(t, musicexpr.KindSequence, me.Kind)
	require.Len(t, me.Children, 2)
	require.Equal(t, musicexpr.NoteC, me.Children[0].NoteSym)
}

func TestDecodeUnknownKind(t *testing.T) {
	ids := textloc.NewCounter()
	_, err := Decode(ids, []byte(`{"kind": "bogus"}`))
	require.Error(t, err)
}

func TestDecodeChordWithChordType(t *testing.T) {
	data := []byte(`{
		"kind": "chord",
		"chordtype": "maj",
		"child": {"kind": "relnote", "notesym": "c", "length": 1}
	}`)
	ids := textloc.NewCounter()
	me, err := Decode(ids, data)
	require.NoError(t, err)
	require.Equal(t, musicexpr.ChordMaj, me.ChordType)
	require.NotNil(t, me.Child)
}

func TestDecodeFunctionNode(t *testing.T) {
	data := []byte(`{"kind": "function", "name": "tempo", "args": ["120"]}`)
	ids := textloc.NewCounter()
	me, err := Decode(ids, data)
	require.NoError(t, err)
	require.Equal(t, "tempo", me.Name)
	require.Equal(t, "120", me.Args[0].Value)
}
