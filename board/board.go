// Package board is the reconciliation layer: page contexts that keep an
// in-memory view of the posts consistent with whichever backend is active,
// apply user actions through the selected store, and invoke render hooks
// when either side changes.
package board

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/hoopboard/hoopboard/models"
	"github.com/hoopboard/hoopboard/store"
)

const (
	minPostLength    = 10
	minCommentLength = 3
)

// Validation and gating errors. These surface verbatim to the user.
var (
	ErrMissingFields   = errors.New("please fill out all fields")
	ErrPostTooShort    = errors.New("your post should be at least 10 characters long")
	ErrUnknownTag      = errors.New("position, region, and division must come from the form options")
	ErrEmptyComment    = errors.New("please enter a comment")
	ErrCommentTooShort = errors.New("comment should be at least 3 characters long")
	ErrNotConfirmed    = errors.New("deletion requires confirmation")
)

// Board ties one installation's identity, like registry, and selected
// backend together. Page contexts are created from it.
type Board struct {
	store    store.Store
	fallback store.Store
	likes    *store.LikeRegistry
	identity string
	log      *zap.SugaredLogger
}

// New creates a Board over the selected store. fallback, when non-nil, is the
// snapshot store consulted once if a live subscription fails; pass nil when
// the selected store is already the local one.
func New(selected, fallback store.Store, likes *store.LikeRegistry, identity string, log *zap.SugaredLogger) *Board {
	return &Board{store: selected, fallback: fallback, likes: likes, identity: identity, log: log}
}

// Select picks the backend for this installation: remote when configured and
// reachable, local otherwise. Availability is probed fresh on every call;
// remote initialization may complete after boot.
func Select(ctx context.Context, remote *store.RemoteStore, local *store.LocalStore) store.Store {
	if remote != nil && remote.Available(ctx) {
		return remote
	}
	return local
}

// Identity returns this installation's device token.
func (b *Board) Identity() string { return b.identity }

// Mode reports the selected backend's mode.
func (b *Board) Mode() string { return b.store.Mode() }

// decorate stamps this device's like membership onto remote posts. Local
// posts carry their own liked flag and pass through untouched.
func (b *Board) decorate(posts []models.Post) []models.Post {
	if b.store.Mode() != store.ModeRemote || b.likes == nil {
		return posts
	}
	liked := b.likes.All()
	for i := range posts {
		posts[i].Liked = liked[posts[i].ID]
	}
	return posts
}

func (b *Board) decoratePost(post *models.Post) {
	if post != nil && b.store.Mode() == store.ModeRemote && b.likes != nil {
		post.Liked = b.likes.Liked(post.ID)
	}
}

// newPostDraft applies the posting form's validation rules: every field
// present, tags from the fixed vocabularies, content at least 10 characters
// after trimming.
func (b *Board) newPostDraft(content, position, region, division string) (store.PostDraft, error) {
	content = strings.TrimSpace(content)
	if content == "" || position == "" || region == "" || division == "" {
		return store.PostDraft{}, ErrMissingFields
	}
	if utf8.RuneCountInString(content) < minPostLength {
		return store.PostDraft{}, ErrPostTooShort
	}
	if !models.ValidPosition(position) || !models.ValidRegion(region) || !models.ValidDivision(division) {
		return store.PostDraft{}, ErrUnknownTag
	}
	return store.PostDraft{
		Content:  content,
		Position: position,
		Region:   region,
		Division: division,
		UserID:   b.identity,
	}, nil
}

func newCommentDraft(content string) (store.CommentDraft, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return store.CommentDraft{}, ErrEmptyComment
	}
	if utf8.RuneCountInString(content) < minCommentLength {
		return store.CommentDraft{}, ErrCommentTooShort
	}
	return store.CommentDraft{Content: content}, nil
}
