package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "accounts.csv")
	f := NewFile(path)
	assert.False(t, f.Exists())

	require.NoError(t, f.Save(testAccounts()))
	assert.True(t, f.Exists())

	got, err := f.Load()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "admin", got[0].ID)
	assert.Equal(t, "alice", got[1].ID)
}

func TestFile_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.csv")
	f := NewFile(path)

	require.NoError(t, f.Save(testAccounts()))
	require.NoError(t, f.Save(testAccounts()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2, "header + admin")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFile_LoadMissing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "nope.csv"))
	_, err := f.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFile_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.csv")
	require.NoError(t, os.WriteFile(path, []byte(Header+"\nbob,AQID\n"), 0o600))

	_, err := NewFile(path).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFile_CreateRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.csv")
	f := NewFile(path)

	require.NoError(t, f.Create(testAccounts()))
	err := f.Create(testAccounts())
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrExist)
}
