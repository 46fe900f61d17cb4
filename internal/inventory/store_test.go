package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "commander"))
	require.NoError(t, err)
	return store
}

func TestStoreSaveWritesVerbatim(t *testing.T) {
	store := newTestStore(t)
	content := "Name,Platform\r\nZoom,macOS\r\n"
	require.NoError(t, store.Save(SourceMacApps, content))

	data, err := os.ReadFile(filepath.Join(store.Dir(), MacAppsFileName))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestStoreLoadMissingFiles(t *testing.T) {
	store := newTestStore(t)
	in, present, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, present)
	assert.False(t, in.Ready())
}

func TestStoreRoundTripAssignsRanks(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(SourceLabels, "zoom\nchrome\n"))
	require.NoError(t, store.Save(SourceMacApps, "Name,Platform\nZoom,macOS\n"))
	require.NoError(t, store.Save(SourceWindowsApps, "Name,Platform\nZoom,Windows\n"))

	in, present, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []Source{SourceLabels, SourceMacApps, SourceWindowsApps}, present)
	assert.Equal(t, Catalogue{"zoom", "chrome"}, in.Catalogue)
	require.Len(t, in.MacApps, 1)
	require.Len(t, in.WindowsApps, 1)
	assert.Equal(t, 0, in.MacApps[0].Rank)
	assert.Equal(t, 1, in.WindowsApps[0].Rank)
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(SourceLabels, "zoom"))
	require.NoError(t, store.Save(SourceLabels, "chrome"))

	in, _, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Catalogue{"chrome"}, in.Catalogue)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNewStoreRequiresDir(t *testing.T) {
	_, err := NewStore("  ")
	assert.Error(t, err)
}

func TestParseSource(t *testing.T) {
	for raw, want := range map[string]Source{"labels": SourceLabels, "MAC": SourceMacApps, "macos": SourceMacApps, "pc": SourceWindowsApps, "windows": SourceWindowsApps} {
		got, err := ParseSource(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseSource("linux")
	assert.Error(t, err)
}
