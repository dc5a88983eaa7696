package overlay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/schollz/mdlc/internal/instrument"
	"github.com/stretchr/testify/require"
)

func TestLoadDecodesMixedEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"kind": "toned", "name": "space organ", "code": 91},
		{"kind": "drum", "name": "808 kit", "code": 30}
	]`), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []instrument.Instrument{
		{Kind: instrument.Toned, Name: "space organ", Code: 91},
		{Kind: instrument.Drum, Name: "808 kit", Code: 30},
	}, got)
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"kind": "bogus", "name": "x"}]`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/overlay.json")
	require.Error(t, err)
}
