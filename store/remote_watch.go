package store

import (
	"context"
	"errors"
	"fmt"
)

// WatchPosts opens a live feed subscription: an immediate full query, then a
// fresh full ordered query per change notice. The subscription is bound to
// ctx and released by Close, so page teardown cannot leak the listener.
func (s *RemoteStore) WatchPosts(ctx context.Context) (*PostFeed, error) {
	wctx, cancel := context.WithCancel(ctx)
	sub := s.rdb.Subscribe(wctx, postsChannel)
	if _, err := sub.Receive(wctx); err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe posts: %w", err)
	}

	feed := NewPostFeed(cancel)
	go func() {
		defer feed.Finish()
		defer func() { _ = sub.Close() }()

		notices := sub.Channel()
		for {
			posts, err := s.ListPosts(wctx)
			if err != nil {
				if wctx.Err() == nil {
					feed.Fail(err)
				}
				return
			}
			feed.Push(posts)

			select {
			case <-wctx.Done():
				return
			case _, ok := <-notices:
				if !ok {
					feed.Fail(errors.New("change channel closed"))
					return
				}
			}
		}
	}()
	return feed, nil
}

// WatchComments opens a live subscription on one post's comments, ascending.
func (s *RemoteStore) WatchComments(ctx context.Context, postID string) (*CommentFeed, error) {
	wctx, cancel := context.WithCancel(ctx)
	sub := s.rdb.Subscribe(wctx, commentsChannelPrefix+postID)
	if _, err := sub.Receive(wctx); err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe comments: %w", err)
	}

	feed := NewCommentFeed(cancel)
	go func() {
		defer feed.Finish()
		defer func() { _ = sub.Close() }()

		notices := sub.Channel()
		for {
			comments, err := s.ListComments(wctx, postID)
			if err != nil {
				if wctx.Err() == nil {
					feed.Fail(err)
				}
				return
			}
			feed.Push(comments)

			select {
			case <-wctx.Done():
				return
			case _, ok := <-notices:
				if !ok {
					feed.Fail(errors.New("change channel closed"))
					return
				}
			}
		}
	}()
	return feed, nil
}
