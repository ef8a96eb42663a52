package board

import (
	"context"
	"errors"
	"sync"

	"github.com/hoopboard/hoopboard/models"
	"github.com/hoopboard/hoopboard/store"
)

// FeedController owns the feed page's in-memory post list. In live mode a
// single subscription replaces the list wholesale on every emission; in
// snapshot mode the list is read once and mutated in place alongside each
// local write.
type FeedController struct {
	board  *Board
	render func([]models.Post)

	mu    sync.Mutex
	posts []models.Post
	live  bool
	sub   *store.PostFeed
	done  chan struct{}
}

// Feed creates the feed page context. render, when non-nil, is invoked with
// the full decorated list after every state change. The subscription, if one
// is opened, lives until ctx is cancelled or Close is called.
func (b *Board) Feed(ctx context.Context, render func([]models.Post)) (*FeedController, error) {
	f := &FeedController{board: b, render: render, done: make(chan struct{})}

	sub, err := b.store.WatchPosts(ctx)
	switch {
	case err == nil:
		f.live = true
		f.sub = sub
		go f.watch(sub)
	case errors.Is(err, store.ErrNoLiveUpdates):
		close(f.done)
		posts, lerr := b.store.ListPosts(ctx)
		if lerr != nil {
			return nil, lerr
		}
		f.apply(posts)
	default:
		// Live view could not open; degrade to one snapshot read with no
		// further reconciliation rather than failing the page.
		b.log.Warnf("feed subscription unavailable, serving snapshot: %v", err)
		close(f.done)
		f.applyFallback(ctx)
	}
	return f, nil
}

// Live reports whether the feed tracks a live subscription.
func (f *FeedController) Live() bool { return f.live }

// Posts returns a copy of the current in-memory list, newest first.
func (f *FeedController) Posts() []models.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Post, len(f.posts))
	copy(out, f.posts)
	return out
}

// Refresh re-reads the snapshot in non-live mode, mirroring the page-load
// read of the source of truth. In live mode the subscription already keeps
// the list current and Refresh just returns it.
func (f *FeedController) Refresh(ctx context.Context) []models.Post {
	if f.live {
		return f.Posts()
	}
	posts, err := f.board.store.ListPosts(ctx)
	if err != nil {
		f.board.log.Warnf("feed refresh failed, keeping stale list: %v", err)
		return f.Posts()
	}
	f.apply(posts)
	return f.Posts()
}

// ToggleLike flips this device's like on a post. In non-live mode only the
// affected entry is patched in memory, matching the button-only re-render.
func (f *FeedController) ToggleLike(ctx context.Context, postID string) (store.LikeState, error) {
	state, err := f.board.store.ToggleLike(ctx, postID)
	if err != nil {
		return store.LikeState{}, err
	}
	if !f.live {
		f.mu.Lock()
		for i := range f.posts {
			if f.posts[i].ID == postID {
				f.posts[i].Liked = state.Liked
				f.posts[i].Likes = state.Likes
				break
			}
		}
		f.mu.Unlock()
	}
	return state, nil
}

// DeletePost removes a post from the feed. confirmed must be true; deletion
// is destructive and requires explicit intent. In non-live mode the list is
// re-rendered in place after the removal.
func (f *FeedController) DeletePost(ctx context.Context, postID string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := f.board.store.DeletePost(ctx, postID, f.board.identity); err != nil {
		return err
	}
	if !f.live {
		f.mu.Lock()
		for i := range f.posts {
			if f.posts[i].ID == postID {
				f.posts = append(f.posts[:i], f.posts[i+1:]...)
				break
			}
		}
		posts := make([]models.Post, len(f.posts))
		copy(posts, f.posts)
		f.mu.Unlock()
		if f.render != nil {
			f.render(posts)
		}
	}
	return nil
}

// Close tears the page context down, releasing the subscription listener.
func (f *FeedController) Close() {
	if f.sub != nil {
		f.sub.Close()
	}
	<-f.done
}

func (f *FeedController) watch(sub *store.PostFeed) {
	defer close(f.done)
	for posts := range sub.Updates() {
		f.apply(posts)
	}
	if err := sub.Err(); err != nil {
		f.board.log.Warnf("feed subscription lost, serving snapshot: %v", err)
		f.applyFallback(context.Background())
	}
}

func (f *FeedController) apply(posts []models.Post) {
	posts = f.board.decorate(posts)
	f.mu.Lock()
	f.posts = posts
	f.mu.Unlock()
	if f.render != nil {
		f.render(posts)
	}
}

func (f *FeedController) applyFallback(ctx context.Context) {
	if f.board.fallback == nil {
		f.apply([]models.Post{})
		return
	}
	posts, err := f.board.fallback.ListPosts(ctx)
	if err != nil {
		posts = []models.Post{}
	}
	f.apply(posts)
}
