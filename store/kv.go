package store

import (
	"os"
	"path/filepath"
	"sync"
)

// Byte store keys. Each key maps to one file in the data directory.
const (
	KeyPosts      = "hoopboard_posts"
	KeyIdentity   = "hoopboard_user_id"
	KeyLikedPosts = "hoopboard_liked_posts"
)

// FileStore is the local byte store: synchronous string get/set keyed by
// name, one file per key inside a data directory. It backs the snapshot
// collection, the device identity, and the like registry.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a byte store rooted at dir. The directory is created
// on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Get returns the stored value for name, and whether one exists.
func (s *FileStore) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set persists value under name, replacing any previous value.
func (s *FileStore) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(name), []byte(value), 0o600)
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name)+".json")
}
