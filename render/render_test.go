package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hoopboard/hoopboard/models"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testPost() models.Post {
	return models.Post{
		ID:        "p1",
		Content:   "ball is life",
		Position:  "Center",
		Region:    "Midwest",
		Division:  "JUCO",
		Timestamp: models.FlexTime{Time: testNow.Add(-2 * time.Hour)},
	}
}

func TestPostCardEscapesContent(t *testing.T) {
	p := testPost()
	p.Content = `<script>alert("x")</script>`
	out := PostCard(p, "", testNow)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestPostCardDeleteVisibility(t *testing.T) {
	p := testPost()

	assert.Contains(t, PostCard(p, "viewer", testNow), "delete-form",
		"untracked creator shows the delete control")

	p.UserID = "user_1_owner"
	assert.Contains(t, PostCard(p, "user_1_owner", testNow), "delete-form")
	assert.NotContains(t, PostCard(p, "user_2_other", testNow), "delete-form")
}

func TestPostCardCommentPreview(t *testing.T) {
	p := testPost()
	out := PostCard(p, "", testNow)
	assert.NotContains(t, out, "first-comment")
	assert.NotContains(t, out, "View")

	p.Comments = []models.Comment{
		{ID: "c1", Content: "keep hooping", Position: models.CommentPosition,
			Region: models.CommentRegion, Timestamp: models.FlexTime{Time: testNow.Add(-time.Hour)}},
		{ID: "c2", Content: "second"},
	}
	out = PostCard(p, "", testNow)
	assert.Contains(t, out, "keep hooping")
	assert.NotContains(t, out, "second", "only the first comment previews")
	assert.Contains(t, out, "View 2 comments")
}

func TestLikeButtonStates(t *testing.T) {
	p := testPost()
	p.Likes = 1
	out := LikeButton(p)
	assert.Contains(t, out, "🤍 1 Like<")
	assert.NotContains(t, out, "liked")

	p.Liked = true
	p.Likes = 2
	out = LikeButton(p)
	assert.Contains(t, out, `class="like-button liked"`)
	assert.Contains(t, out, "❤️ 2 Likes")
}

func TestFeedEmptyState(t *testing.T) {
	out := Feed(nil, "", testNow)
	assert.Contains(t, out, "No posts yet")
	assert.Contains(t, out, "Create First Post")
}

func TestCommentsEmptyState(t *testing.T) {
	out := Comments(nil, testNow)
	assert.Contains(t, out, "No comments yet. Be the first to respond!")
}

func TestNotFoundPageRedirects(t *testing.T) {
	out := NotFoundPage()
	assert.Contains(t, out, "Post not found.")
	assert.Contains(t, out, `content="2;url=/lockerroom"`)
}

func TestComposePagePreservesFields(t *testing.T) {
	out := ComposePage("my draft text", "Center", "Midwest", "JUCO", "your post should be at least 10 characters long")
	assert.Contains(t, out, "my draft text")
	assert.Contains(t, out, `<option value="Center" selected>`)
	assert.Contains(t, out, "at least 10 characters")
}
