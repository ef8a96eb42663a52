package models

// Comments carry no per-user identity; every comment renders under the same
// placeholder byline.
const (
	CommentPosition = "Anonymous Player"
	CommentRegion   = "Community"
)

// Comment is a reply to a post. The remote store keeps comments as their own
// rows keyed by parent post id; the local store embeds them in the Post.
type Comment struct {
	ID        string   `gorm:"primaryKey;size:36" json:"id"`
	PostID    string   `gorm:"index;size:36" json:"postId,omitempty"`
	Content   string   `gorm:"type:text;not null" json:"content"`
	Position  string   `gorm:"size:64" json:"position"`
	Region    string   `gorm:"size:64" json:"region"`
	Timestamp FlexTime `gorm:"index" json:"timestamp"`
}
