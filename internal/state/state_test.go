package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "last_view"))

	require.NoError(t, s.Save("GOES-19_East_752W_Full_Disk_GeoColor_CIRA"))
	key, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "GOES-19_East_752W_Full_Disk_GeoColor_CIRA", key)
}

func TestLoadAbsent(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "never_written"))

	key, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestSaveOverwrites(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "last_view"))

	require.NoError(t, s.Save("A"))
	require.NoError(t, s.Save("B"))

	key, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "B", key)
}

func TestSaveWritesBareValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_view")
	s := New(path)
	require.NoError(t, s.Save("A"))

	// Exactly the key, no trailing newline.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("A"), raw)
}

func TestSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "last_view")
	s := New(path)
	require.NoError(t, s.Save("A"))

	key, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "A", key)
}

func TestLoadTrimsNewline(t *testing.T) {
	// Hand-edited state files tend to grow a trailing newline.
	path := filepath.Join(t.TempDir(), "last_view")
	require.NoError(t, os.WriteFile(path, []byte("A\n"), 0o644))

	key, err := New(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "A", key)
}
