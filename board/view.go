package board

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hoopboard/hoopboard/models"
	"github.com/hoopboard/hoopboard/store"
)

// PostController owns the single-post page: the post fetched once for
// display and a live comment list where the backend supports it.
type PostController struct {
	board          *Board
	renderComments func([]models.Comment)

	mu       sync.Mutex
	post     *models.Post
	comments []models.Comment
	live     bool
	sub      *store.CommentFeed
	done     chan struct{}
}

// View creates the single-post page context for the given id. A blank or
// unknown id returns store.ErrNotFound; callers redirect to the feed after a
// fixed delay. Comment subscription failures degrade to an empty comment
// list rather than failing the page.
func (b *Board) View(ctx context.Context, id string, renderComments func([]models.Comment)) (*PostController, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, store.ErrNotFound
	}

	post, err := b.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	b.decoratePost(post)

	v := &PostController{
		board:          b,
		renderComments: renderComments,
		post:           post,
		done:           make(chan struct{}),
	}

	sub, err := b.store.WatchComments(ctx, id)
	switch {
	case err == nil:
		v.live = true
		v.sub = sub
		// Seed from a one-shot read so the page never renders empty while
		// the subscription's first emission is still in flight. The next
		// emission replaces the list wholesale either way.
		if comments, lerr := b.store.ListComments(ctx, id); lerr == nil {
			v.comments = comments
		} else {
			b.log.Warnf("initial comment read failed for post %s: %v", id, lerr)
		}
		go v.watch(sub)
	case errors.Is(err, store.ErrNoLiveUpdates):
		close(v.done)
		v.comments = post.Comments
	default:
		b.log.Warnf("comment subscription unavailable for post %s: %v", id, err)
		close(v.done)
		if renderComments != nil {
			renderComments(nil)
		}
	}
	return v, nil
}

// Lookup creates the single-post context without a live subscription, for
// handlers that act once and discard the context; opening a watch there is
// listener churn whose emissions nobody reads. Comments come from a one-shot
// read.
func (b *Board) Lookup(ctx context.Context, id string) (*PostController, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, store.ErrNotFound
	}

	post, err := b.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	b.decoratePost(post)

	v := &PostController{board: b, post: post, done: make(chan struct{})}
	close(v.done)

	comments, err := b.store.ListComments(ctx, id)
	if err != nil {
		b.log.Warnf("comment read failed for post %s: %v", id, err)
		comments = post.Comments
	}
	v.comments = comments
	return v, nil
}

// Live reports whether the context tracks a live comment subscription.
func (v *PostController) Live() bool { return v.live }

// Post returns a copy of the displayed post.
func (v *PostController) Post() models.Post {
	v.mu.Lock()
	defer v.mu.Unlock()
	return *v.post
}

// Comments returns a copy of the current comment list, oldest first.
func (v *PostController) Comments() []models.Comment {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Comment, len(v.comments))
	copy(out, v.comments)
	return out
}

// AddComment validates and stores a comment on the displayed post. In
// non-live mode the in-memory post is patched so counts stay consistent with
// the embedded list.
func (v *PostController) AddComment(ctx context.Context, content string) (*models.Comment, error) {
	draft, err := newCommentDraft(content)
	if err != nil {
		return nil, err
	}
	comment, err := v.board.store.AddComment(ctx, v.post.ID, draft)
	if err != nil {
		return nil, err
	}
	if !v.live {
		v.mu.Lock()
		v.comments = append(v.comments, *comment)
		v.post.Comments = append(v.post.Comments, *comment)
		v.mu.Unlock()
	}
	return comment, nil
}

// ToggleLike flips this device's like on the displayed post and patches the
// in-memory copy so the button re-renders from current state.
func (v *PostController) ToggleLike(ctx context.Context) (store.LikeState, error) {
	state, err := v.board.store.ToggleLike(ctx, v.post.ID)
	if err != nil {
		return store.LikeState{}, err
	}
	v.mu.Lock()
	v.post.Liked = state.Liked
	v.post.Likes = state.Likes
	v.mu.Unlock()
	return state, nil
}

// Delete removes the displayed post and its comments. confirmed must be
// true. Ownership is enforced by the store; a mismatch blocks the delete
// with store.ErrNotOwner and performs no mutation.
func (v *PostController) Delete(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	return v.board.store.DeletePost(ctx, v.post.ID, v.board.identity)
}

// Close tears the page context down, releasing the comment listener.
func (v *PostController) Close() {
	if v.sub != nil {
		v.sub.Close()
	}
	<-v.done
}

func (v *PostController) watch(sub *store.CommentFeed) {
	defer close(v.done)
	for comments := range sub.Updates() {
		v.mu.Lock()
		v.comments = comments
		v.mu.Unlock()
		if v.renderComments != nil {
			v.renderComments(comments)
		}
	}
	if err := sub.Err(); err != nil {
		// Live comments degrade to an empty list, never a page failure.
		v.board.log.Warnf("comment subscription lost for post %s: %v", v.post.ID, err)
		v.mu.Lock()
		v.comments = nil
		v.mu.Unlock()
		if v.renderComments != nil {
			v.renderComments(nil)
		}
	}
}
