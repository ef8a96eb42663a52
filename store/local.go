package store

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hoopboard/hoopboard/models"
)

// LocalStore is the snapshot fallback backend. The entire post collection,
// comments embedded, lives as one JSON blob in the byte store, and every
// mutation is a read-modify-write of the whole blob. That is safe only
// because a single process owns the data directory; concurrent writers from
// elsewhere clobber each other, last save wins.
type LocalStore struct {
	kv  *FileStore
	log *zap.SugaredLogger

	mu     sync.Mutex
	lastID int64
}

// NewLocalStore creates a snapshot store over the given byte store.
func NewLocalStore(kv *FileStore, log *zap.SugaredLogger) *LocalStore {
	return &LocalStore{kv: kv, log: log}
}

// Mode reports ModeLocal.
func (s *LocalStore) Mode() string { return ModeLocal }

// CreatePost synthesizes a post with an epoch-millisecond id and prepends it
// to the snapshot, newest first. The creator identity is not tracked locally.
func (s *LocalStore) CreatePost(_ context.Context, draft PostDraft) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := models.Post{
		ID:        s.nextID(),
		Content:   draft.Content,
		Position:  draft.Position,
		Region:    draft.Region,
		Division:  draft.Division,
		Timestamp: models.Now(),
		Comments:  []models.Comment{},
	}

	posts := append([]models.Post{post}, s.loadAll()...)
	if err := s.saveAll(posts); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPost looks the post up in the snapshot.
func (s *LocalStore) GetPost(_ context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.loadAll()
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, ErrNotFound
}

// ListPosts returns the snapshot, newest first.
func (s *LocalStore) ListPosts(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAll(), nil
}

// WatchPosts is unsupported; the snapshot store never pushes changes.
func (s *LocalStore) WatchPosts(context.Context) (*PostFeed, error) {
	return nil, ErrNoLiveUpdates
}

// AddComment appends to the post's embedded comment list and persists the
// whole collection.
func (s *LocalStore) AddComment(_ context.Context, postID string, draft CommentDraft) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.loadAll()
	for i := range posts {
		if posts[i].ID != postID {
			continue
		}
		comment := models.Comment{
			ID:        s.nextID(),
			Content:   draft.Content,
			Position:  models.CommentPosition,
			Region:    models.CommentRegion,
			Timestamp: models.Now(),
		}
		posts[i].Comments = append(posts[i].Comments, comment)
		if err := s.saveAll(posts); err != nil {
			return nil, err
		}
		return &comment, nil
	}
	return nil, ErrNotFound
}

// ListComments returns the post's embedded comments, oldest first.
func (s *LocalStore) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// WatchComments is unsupported; the snapshot store never pushes changes.
func (s *LocalStore) WatchComments(context.Context, string) (*CommentFeed, error) {
	return nil, ErrNoLiveUpdates
}

// ToggleLike flips the post's own liked flag and adjusts its counter, then
// persists the collection.
func (s *LocalStore) ToggleLike(_ context.Context, postID string) (LikeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.loadAll()
	for i := range posts {
		if posts[i].ID != postID {
			continue
		}
		if posts[i].Liked {
			posts[i].Likes--
			posts[i].Liked = false
		} else {
			posts[i].Likes++
			posts[i].Liked = true
		}
		if err := s.saveAll(posts); err != nil {
			return LikeState{}, err
		}
		return LikeState{Liked: posts[i].Liked, Likes: posts[i].Likes}, nil
	}
	return LikeState{}, ErrNotFound
}

// DeletePost removes the post, embedded comments included, from the snapshot.
func (s *LocalStore) DeletePost(_ context.Context, postID, requester string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.loadAll()
	for i := range posts {
		if posts[i].ID != postID {
			continue
		}
		if posts[i].UserID != "" && posts[i].UserID != requester {
			return ErrNotOwner
		}
		posts = append(posts[:i], posts[i+1:]...)
		return s.saveAll(posts)
	}
	return ErrNotFound
}

// loadAll parses the snapshot blob. Missing or unparsable content yields an
// empty collection, never an error.
func (s *LocalStore) loadAll() []models.Post {
	raw, ok := s.kv.Get(KeyPosts)
	if !ok {
		return []models.Post{}
	}
	var posts []models.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		if s.log != nil {
			s.log.Warnf("unparsable snapshot, treating as empty: %v", err)
		}
		return []models.Post{}
	}
	return posts
}

func (s *LocalStore) saveAll(posts []models.Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	return s.kv.Set(KeyPosts, string(data))
}

// nextID derives an id from the creation-time epoch milliseconds, bumping
// past the previous one when two creates land on the same millisecond.
func (s *LocalStore) nextID() string {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}
