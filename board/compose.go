package board

import (
	"context"
)

// ComposeController backs the share-story page. It holds no state of its
// own; a failed submit leaves the form fields with the caller for correction.
type ComposeController struct {
	board *Board
}

// Compose creates the post-composition page context.
func (b *Board) Compose() *ComposeController {
	return &ComposeController{board: b}
}

// Submit validates the form fields and stores a new post, returning the
// assigned id for navigation to the single-post view. Remote posts start
// with zero counters and this device's identity token; local posts are
// prepended to the snapshot by the store.
func (c *ComposeController) Submit(ctx context.Context, content, position, region, division string) (string, error) {
	draft, err := c.board.newPostDraft(content, position, region, division)
	if err != nil {
		return "", err
	}
	post, err := c.board.store.CreatePost(ctx, draft)
	if err != nil {
		return "", err
	}
	c.board.log.Infow("post created", "id", post.ID, "mode", c.board.store.Mode())
	return post.ID, nil
}
