// Package render maps posts and comments to markup. Every function is pure:
// state in, HTML out. User-supplied text is entity-escaped on the way in;
// that escaping is the board's only injection defense.
package render

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/hoopboard/hoopboard/models"
)

// Escape entity-escapes user-supplied text for safe interpolation.
func Escape(s string) string {
	return html.EscapeString(s)
}

// LikeButton renders the like control from current state. Patched in place
// after a toggle instead of re-rendering the whole card.
func LikeButton(p models.Post) string {
	class := "like-button"
	heart := "🤍"
	if p.Liked {
		class = "like-button liked"
		heart = "❤️"
	}
	return fmt.Sprintf(`<button class="%s" type="submit">%s %d Like%s</button>`,
		class, heart, p.Likes, pluralSuffix(p.Likes))
}

// PostCard renders one feed entry. The delete control only appears when the
// post has no tracked creator or the viewer is the creator.
func PostCard(p models.Post, viewer string, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<div class="post" data-post-id="%s">`, Escape(p.ID)))
	b.WriteString(`<div class="post-header">`)
	b.WriteString(fmt.Sprintf(`<span class="post-meta">%s • %s • %s</span>`,
		Escape(p.Position), Escape(p.Region), TimeAgo(p.Timestamp.Time, now)))
	if p.UserID == "" || p.UserID == viewer {
		b.WriteString(deleteForm(p.ID))
	}
	b.WriteString(`</div>`)
	b.WriteString(fmt.Sprintf(`<div class="post-content">%s</div>`, Escape(p.Content)))

	if len(p.Comments) > 0 {
		first := p.Comments[0]
		b.WriteString(`<div class="first-comment"><div class="comment-header">`)
		b.WriteString(fmt.Sprintf(`<span class="comment-meta">%s • %s • %s</span>`,
			Escape(first.Position), Escape(first.Region), TimeAgo(first.Timestamp.Time, now)))
		b.WriteString(`</div>`)
		b.WriteString(fmt.Sprintf(`<div class="comment-content">%s</div></div>`, Escape(first.Content)))
	}

	if total := p.CommentTotal(); total > 0 {
		b.WriteString(fmt.Sprintf(
			`<div class="view-more-comments"><a href="/view-post?id=%s" class="view-more-btn">View %d comment%s</a></div>`,
			Escape(p.ID), total, pluralSuffix(int64(total))))
	}

	b.WriteString(`<div class="post-footer"><div class="post-actions">`)
	b.WriteString(likeForm(p))
	b.WriteString(fmt.Sprintf(`<a href="/view-post?id=%s" class="comment-button">💬 %d Comment%s</a>`,
		Escape(p.ID), p.CommentTotal(), pluralSuffix(int64(p.CommentTotal()))))
	b.WriteString(`</div></div></div>`)
	return b.String()
}

// Feed renders the feed fragment: the empty-state view when there are no
// posts, otherwise every card newest first.
func Feed(posts []models.Post, viewer string, now time.Time) string {
	if len(posts) == 0 {
		return `<div class="intro"><h3>No posts yet</h3>` +
			`<p>Be the first to share your story! Head over to the Share Story page to get started.</p>` +
			`<a href="/post" class="cta-button primary">Create First Post</a></div>`
	}
	var b strings.Builder
	for _, p := range posts {
		b.WriteString(PostCard(p, viewer, now))
	}
	return b.String()
}

// FeedPage renders the full feed page.
func FeedPage(posts []models.Post, viewer string, now time.Time) string {
	body := `<h2>The Lockerroom</h2><div id="feed">` + Feed(posts, viewer, now) + `</div>`
	return page("HoopBoard — Lockerroom", body)
}

// PostDetail renders the single-post card with its like control.
func PostDetail(p models.Post, viewer string, now time.Time) string {
	var b strings.Builder
	b.WriteString(`<div class="post post-detail"><div class="post-header">`)
	b.WriteString(fmt.Sprintf(`<span class="post-meta">%s • %s • %s</span>`,
		Escape(p.Position), Escape(p.Region), TimeAgo(p.Timestamp.Time, now)))
	if p.UserID == "" || p.UserID == viewer {
		b.WriteString(deleteForm(p.ID))
	}
	b.WriteString(`</div>`)
	b.WriteString(fmt.Sprintf(`<div class="post-content">%s</div>`, Escape(p.Content)))
	b.WriteString(`<div class="post-footer"><div class="post-actions">`)
	b.WriteString(likeForm(p))
	b.WriteString(`</div></div></div>`)
	return b.String()
}

// Comments renders the comment list fragment, oldest first.
func Comments(comments []models.Comment, now time.Time) string {
	if len(comments) == 0 {
		return `<p class="no-comments">No comments yet. Be the first to respond!</p>`
	}
	var b strings.Builder
	for _, c := range comments {
		b.WriteString(fmt.Sprintf(`<div class="comment" data-comment-id="%s"><div class="comment-header">`, Escape(c.ID)))
		b.WriteString(fmt.Sprintf(`<span class="comment-meta">%s • %s • %s</span>`,
			Escape(c.Position), Escape(c.Region), TimeAgo(c.Timestamp.Time, now)))
		b.WriteString(`</div>`)
		b.WriteString(fmt.Sprintf(`<div class="comment-content">%s</div></div>`, Escape(c.Content)))
	}
	return b.String()
}

// PostPage renders the full single-post page. errMsg, when non-empty, shows
// inline above the comment form.
func PostPage(p models.Post, comments []models.Comment, viewer string, now time.Time, errMsg string) string {
	var b strings.Builder
	b.WriteString(PostDetail(p, viewer, now))
	b.WriteString(`<div class="comments-section"><h3>Comments</h3>`)
	b.WriteString(`<div id="commentsList">`)
	b.WriteString(Comments(comments, now))
	b.WriteString(`</div>`)
	if errMsg != "" {
		b.WriteString(fmt.Sprintf(`<p class="form-error">%s</p>`, Escape(errMsg)))
	}
	b.WriteString(`<div class="comment-form-container"><h4>Add a Comment</h4>`)
	b.WriteString(fmt.Sprintf(`<form method="post" action="/posts/%s/comments">`, Escape(p.ID)))
	b.WriteString(`<textarea name="content" placeholder="Share your thoughts..." rows="3" required></textarea>`)
	b.WriteString(`<button type="submit" class="submit-btn">Post Comment</button></form></div></div>`)
	return page("HoopBoard — Post", b.String())
}

// ComposePage renders the share-story form. Field values survive a failed
// submit so the user can correct in place.
func ComposePage(content, position, region, division, errMsg string) string {
	var b strings.Builder
	b.WriteString(`<h2>Share Your Story</h2>`)
	if errMsg != "" {
		b.WriteString(fmt.Sprintf(`<p class="form-error">%s</p>`, Escape(errMsg)))
	}
	b.WriteString(`<form id="postForm" method="post" action="/posts">`)
	b.WriteString(fmt.Sprintf(`<textarea name="content" rows="6" placeholder="What's your story?">%s</textarea>`, Escape(content)))
	b.WriteString(selectField("position", "Position", models.Positions, position))
	b.WriteString(selectField("region", "Region", models.Regions, region))
	b.WriteString(selectField("division", "Division", models.Divisions, division))
	b.WriteString(`<button type="submit" class="submit-btn">Share Your Story</button></form>`)
	return page("HoopBoard — Share Story", b.String())
}

// NotFoundPage reports a missing post and sends the reader back to the feed
// after a fixed delay.
func NotFoundPage() string {
	body := `<meta http-equiv="refresh" content="2;url=/lockerroom">` +
		`<p class="toast error">Post not found.</p><p><a href="/lockerroom">Back to the Lockerroom</a></p>`
	return page("HoopBoard — Not Found", body)
}

func likeForm(p models.Post) string {
	return fmt.Sprintf(`<form class="like-form" method="post" action="/posts/%s/like">%s</form>`,
		Escape(p.ID), LikeButton(p))
}

func deleteForm(id string) string {
	return fmt.Sprintf(`<form class="delete-form" method="post" action="/posts/%s/delete">`+
		`<input type="hidden" name="confirm" value="yes">`+
		`<button class="delete-post-btn" type="submit" title="Delete post" `+
		`onclick="return confirm('Are you sure you want to delete this post? This action cannot be undone.')">🗑️</button></form>`,
		Escape(id))
}

func selectField(name, label string, options []string, selected string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<label for="%s">%s</label><select id="%s" name="%s">`, name, label, name, name))
	b.WriteString(fmt.Sprintf(`<option value="">Select %s</option>`, label))
	for _, opt := range options {
		sel := ""
		if opt == selected {
			sel = ` selected`
		}
		b.WriteString(fmt.Sprintf(`<option value="%s"%s>%s</option>`, Escape(opt), sel, Escape(opt)))
	}
	b.WriteString(`</select>`)
	return b.String()
}

func pluralSuffix(n int64) string {
	if n != 1 {
		return "s"
	}
	return ""
}

func page(title, body string) string {
	return `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">` +
		`<meta name="viewport" content="width=device-width, initial-scale=1">` +
		`<title>` + Escape(title) + `</title><link rel="stylesheet" href="/static/styles.css"></head>` +
		`<body><header><h1><a href="/lockerroom">HoopBoard</a></h1>` +
		`<nav><a href="/lockerroom">Lockerroom</a> <a href="/post">Share Story</a></nav></header>` +
		`<main>` + body + `</main></body></html>`
}
