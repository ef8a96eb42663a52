package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hoopboard/hoopboard/models"
)

// Change notification channels. Every successful mutation publishes a notice;
// subscribers re-query the full ordered result set per notice.
const (
	postsChannel          = "hoopboard:changed:posts"
	commentsChannelPrefix = "hoopboard:changed:comments:"
)

// RemoteStore is the shared document backend: posts and comments live as rows
// behind GORM, counters mutate through atomic column increments so concurrent
// devices commute, and Redis pub/sub carries change notices for the live
// subscriptions. The like registry stays device-local because the post
// document has no per-user field.
type RemoteStore struct {
	db    *gorm.DB
	rdb   *redis.Client
	likes *LikeRegistry
	log   *zap.SugaredLogger
}

// NewRemoteStore wires the remote backend. Any argument may be nil; Available
// then reports false and the board selects the local fallback.
func NewRemoteStore(db *gorm.DB, rdb *redis.Client, likes *LikeRegistry, log *zap.SugaredLogger) *RemoteStore {
	return &RemoteStore{db: db, rdb: rdb, likes: likes, log: log}
}

// Mode reports ModeRemote.
func (s *RemoteStore) Mode() string { return ModeRemote }

// Available probes both halves of the backend. The result is never cached;
// initialization is asynchronous relative to boot and may complete late, so
// every new page context re-checks.
func (s *RemoteStore) Available(ctx context.Context) bool {
	if s == nil || s.db == nil || s.rdb == nil {
		return false
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return false
	}
	probe, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(probe); err != nil {
		return false
	}
	return s.rdb.Ping(probe).Err() == nil
}

// CreatePost stores a new document with zero counters, a store-assigned id
// and timestamp, and the creator's device token.
func (s *RemoteStore) CreatePost(ctx context.Context, draft PostDraft) (*models.Post, error) {
	post := models.Post{
		ID:        uuid.NewString(),
		UserID:    draft.UserID,
		Content:   draft.Content,
		Position:  draft.Position,
		Region:    draft.Region,
		Division:  draft.Division,
		Timestamp: models.Now(),
	}
	err := s.withRetry(ctx, "create post", func() error {
		return s.db.WithContext(ctx).Create(&post).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.publish(ctx, postsChannel)
	return &post, nil
}

// GetPost fetches one document, not live.
func (s *RemoteStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load post: %w", err)
	}
	return &post, nil
}

// ListPosts returns the feed ordered by creation timestamp descending.
func (s *RemoteStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Order("timestamp DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// AddComment creates the comment row, then bumps the parent's commentCount by
// an atomic increment. The two steps are separate calls, not a transaction: a
// crash between them leaves the counter stale until the next comment. That
// gap is inherited from the document-store capability model and accepted.
func (s *RemoteStore) AddComment(ctx context.Context, postID string, draft CommentDraft) (*models.Comment, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		Content:   draft.Content,
		Position:  models.CommentPosition,
		Region:    models.CommentRegion,
		Timestamp: models.Now(),
	}
	err := s.withRetry(ctx, "create comment", func() error {
		return s.db.WithContext(ctx).Create(&comment).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	s.publish(ctx, commentsChannelPrefix+postID)

	err = s.withRetry(ctx, "increment comment count", func() error {
		return s.db.WithContext(ctx).Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error
	})
	if err != nil {
		// Comment row exists; only the counter is stale.
		s.log.Warnf("comment count increment failed for post %s: %v", postID, err)
	} else {
		s.publish(ctx, postsChannel)
	}
	return &comment, nil
}

// ListComments returns the post's comments ordered ascending by timestamp.
func (s *RemoteStore) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("timestamp ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// ToggleLike reads the registry for direction, applies a ±1 atomic increment,
// and flips registry membership only after the increment lands. A failed
// increment must not flip the registry or the next toggle would decrement a
// like that was never counted.
func (s *RemoteStore) ToggleLike(ctx context.Context, postID string) (LikeState, error) {
	liked := s.likes.Liked(postID)
	delta := int64(1)
	if liked {
		delta = -1
	}

	err := s.withRetry(ctx, "increment likes", func() error {
		res := s.db.WithContext(ctx).Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes", gorm.Expr("likes + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return retry.Unrecoverable(ErrNotFound)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LikeState{}, ErrNotFound
		}
		return LikeState{}, fmt.Errorf("toggle like: %w", err)
	}

	if err := s.likes.SetLiked(postID, !liked); err != nil {
		s.log.Warnf("like registry update failed for post %s: %v", postID, err)
	}
	s.publish(ctx, postsChannel)

	state := LikeState{Liked: !liked}
	if post, err := s.GetPost(ctx, postID); err == nil {
		state.Likes = post.Likes
	}
	return state, nil
}

// DeletePost verifies ownership, then deletes every child comment before the
// post itself. The store does not cascade on its own; comments-first ordering
// keeps child rows from outliving their parent reference. The two deletes are
// not atomic, which is a known, accepted gap.
func (s *RemoteStore) DeletePost(ctx context.Context, postID, requester string) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != "" && post.UserID != requester {
		return ErrNotOwner
	}

	err = s.withRetry(ctx, "delete comments", func() error {
		return s.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	err = s.withRetry(ctx, "delete post", func() error {
		return s.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", postID).Error
	})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	s.publish(ctx, postsChannel)
	s.publish(ctx, commentsChannelPrefix+postID)
	return nil
}

func (s *RemoteStore) withRetry(ctx context.Context, op string, fn func() error) error {
	return retry.Do(fn,
		retry.LastErrorOnly(true),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.MaxDelay(2*time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			s.log.Infof("retrying %s after error (attempt %d): %v", op, n, err)
		}),
	)
}

// publish emits a change notice. Delivery is best effort: a missed notice
// only delays the next full re-query, it never loses data.
func (s *RemoteStore) publish(ctx context.Context, channel string) {
	if err := s.rdb.Publish(ctx, channel, "1").Err(); err != nil {
		s.log.Warnf("change notice publish failed on %s: %v", channel, err)
	}
}
