// Package store holds the persistence layer of the board: a local snapshot
// store and a remote live document store behind one interface, plus the
// per-installation byte store, identity token, and like registry.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/hoopboard/hoopboard/models"
)

// Backend modes reported by Store.Mode.
const (
	ModeRemote = "remote"
	ModeLocal  = "local"
)

var (
	// ErrNotFound is returned when the target post does not exist.
	ErrNotFound = errors.New("post not found")
	// ErrNotOwner is returned when a delete is attempted on a post created
	// by a different device identity. No mutation is performed.
	ErrNotOwner = errors.New("you can only delete your own posts")
	// ErrNoLiveUpdates is returned by Watch calls on backends that do not
	// push changes; callers fall back to one-shot reads.
	ErrNoLiveUpdates = errors.New("store does not push live updates")
)

// PostDraft carries the validated fields of a new post.
type PostDraft struct {
	Content  string
	Position string
	Region   string
	Division string
	UserID   string
}

// CommentDraft carries the validated content of a new comment. Position and
// region are fixed placeholders, never caller-supplied.
type CommentDraft struct {
	Content string
}

// LikeState is the outcome of a like toggle as observed by this device.
type LikeState struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// Store is the single persistence surface both backends implement. The feed
// is always ordered newest first, comments oldest first.
type Store interface {
	Mode() string

	CreatePost(ctx context.Context, draft PostDraft) (*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	// WatchPosts delivers the full ordered feed on every change until the
	// subscription is closed.
	WatchPosts(ctx context.Context) (*PostFeed, error)

	AddComment(ctx context.Context, postID string, draft CommentDraft) (*models.Comment, error)
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	WatchComments(ctx context.Context, postID string) (*CommentFeed, error)

	// ToggleLike flips this device's like on the post and adjusts the
	// counter accordingly.
	ToggleLike(ctx context.Context, postID string) (LikeState, error)
	// DeletePost removes the post and all of its comments. requester must
	// match the post's creator identity where one is tracked.
	DeletePost(ctx context.Context, postID, requester string) error
}

// PostFeed is a live feed subscription. Updates closes when the subscription
// ends; Err reports the terminal failure, if any, afterwards.
type PostFeed struct {
	updates chan []models.Post
	cancel  context.CancelFunc

	mu  sync.Mutex
	err error
}

// NewPostFeed creates a subscription handle for a store implementation.
// cancel, when non-nil, is invoked by Close to release the listener.
func NewPostFeed(cancel context.CancelFunc) *PostFeed {
	return &PostFeed{updates: make(chan []models.Post, 1), cancel: cancel}
}

// Updates returns the channel of full feed snapshots, newest first.
func (f *PostFeed) Updates() <-chan []models.Post { return f.updates }

// Push replaces any undelivered snapshot with the newer one; a slow consumer
// always sees the latest state, never a backlog.
func (f *PostFeed) Push(posts []models.Post) {
	select {
	case <-f.updates:
	default:
	}
	f.updates <- posts
}

// Fail records the terminal subscription error. The implementation calls
// Finish afterwards.
func (f *PostFeed) Fail(err error) { f.setErr(err) }

// Finish closes the update channel, ending the subscription for consumers.
func (f *PostFeed) Finish() { close(f.updates) }

// Err returns the terminal subscription error. Valid after Updates closes;
// nil when the subscription was closed deliberately.
func (f *PostFeed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Close releases the subscription and its background listener.
func (f *PostFeed) Close() {
	if f.cancel != nil {
		f.cancel()
	}
}

func (f *PostFeed) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

// CommentFeed is a live subscription on one post's comments, oldest first.
type CommentFeed struct {
	updates chan []models.Comment
	cancel  context.CancelFunc

	mu  sync.Mutex
	err error
}

// NewCommentFeed creates a subscription handle for a store implementation.
func NewCommentFeed(cancel context.CancelFunc) *CommentFeed {
	return &CommentFeed{updates: make(chan []models.Comment, 1), cancel: cancel}
}

// Updates returns the channel of full comment lists, oldest first.
func (f *CommentFeed) Updates() <-chan []models.Comment { return f.updates }

// Push replaces any undelivered list with the newer one.
func (f *CommentFeed) Push(comments []models.Comment) {
	select {
	case <-f.updates:
	default:
	}
	f.updates <- comments
}

// Fail records the terminal subscription error.
func (f *CommentFeed) Fail(err error) { f.setErr(err) }

// Finish closes the update channel, ending the subscription for consumers.
func (f *CommentFeed) Finish() { close(f.updates) }

// Err returns the terminal subscription error, valid after Updates closes.
func (f *CommentFeed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Close releases the subscription and its background listener.
func (f *CommentFeed) Close() {
	if f.cancel != nil {
		f.cancel()
	}
}

func (f *CommentFeed) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}
