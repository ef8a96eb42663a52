package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreGetMissing(t *testing.T) {
	s := NewFileStore(t.TempDir())
	_, ok := s.Get("nope")
	assert.False(t, ok)
}

func TestFileStoreSetGet(t *testing.T) {
	s := NewFileStore(t.TempDir())
	require.NoError(t, s.Set(KeyPosts, `[]`))

	got, ok := s.Get(KeyPosts)
	require.True(t, ok)
	assert.Equal(t, `[]`, got)
}

func TestFileStoreSetReplaces(t *testing.T) {
	s := NewFileStore(t.TempDir())
	require.NoError(t, s.Set(KeyIdentity, "user_1"))
	require.NoError(t, s.Set(KeyIdentity, "user_2"))

	got, _ := s.Get(KeyIdentity)
	assert.Equal(t, "user_2", got)
}

func TestFileStoreCreatesDirOnFirstWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewFileStore(dir)
	require.NoError(t, s.Set(KeyPosts, "x"))

	_, err := os.Stat(filepath.Join(dir, KeyPosts+".json"))
	assert.NoError(t, err)
}

func TestFileStoreKeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	require.NoError(t, s.Set("../../etc/passwd", "x"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "passwd.json", entries[0].Name())
}
