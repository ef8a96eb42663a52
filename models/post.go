package models

// Post is a board entry. Both backends share this struct; the remote store
// persists the aggregate CommentCount and the creator's UserID, while the
// local snapshot store embeds Comments and the per-device Liked flag instead.
type Post struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"index;size:64" json:"userId,omitempty"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Position     string    `gorm:"size:64;not null" json:"position"`
	Region       string    `gorm:"size:64;not null" json:"region"`
	Division     string    `gorm:"size:64;not null" json:"division"`
	Timestamp    FlexTime  `gorm:"index" json:"timestamp"`
	Likes        int64     `gorm:"not null;default:0" json:"likes"`
	CommentCount int64     `gorm:"not null;default:0" json:"commentCount,omitempty"`
	Liked        bool      `gorm:"-" json:"liked,omitempty"`
	Comments     []Comment `gorm:"-" json:"comments,omitempty"`
}

// CommentTotal returns the displayed comment cardinality: the embedded slice
// length when comments travel with the post, otherwise the aggregate counter.
func (p *Post) CommentTotal() int {
	if len(p.Comments) > 0 || p.CommentCount == 0 {
		return len(p.Comments)
	}
	return int(p.CommentCount)
}
