package store

import (
	"encoding/json"
	"sort"
	"sync"
)

// LikeRegistry tracks which posts this installation has liked in remote mode.
// The remote post document only carries an aggregate counter, so this set is
// the source of truth for toggle direction: membership flips only after the
// counter increment succeeds, otherwise the next toggle would decrement a
// +1 that never landed.
type LikeRegistry struct {
	kv *FileStore
	mu sync.Mutex
}

// NewLikeRegistry creates a registry backed by the given byte store.
func NewLikeRegistry(kv *FileStore) *LikeRegistry {
	return &LikeRegistry{kv: kv}
}

// Liked reports whether this device has a +1 applied to the post.
func (r *LikeRegistry) Liked(postID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()[postID]
}

// All returns the full membership set in one read, for callers stamping a
// whole feed; per-post Liked calls would re-read the file once per post.
func (r *LikeRegistry) All() map[string]bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// SetLiked records or clears membership for the post.
func (r *LikeRegistry) SetLiked(postID string, liked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.load()
	if liked {
		set[postID] = true
	} else {
		delete(set, postID)
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return r.kv.Set(KeyLikedPosts, string(data))
}

// load parses the persisted id set. Unparsable content is treated as empty.
func (r *LikeRegistry) load() map[string]bool {
	set := map[string]bool{}
	raw, ok := r.kv.Get(KeyLikedPosts)
	if !ok {
		return set
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return set
	}
	for _, id := range ids {
		set[id] = true
	}
	return set
}
