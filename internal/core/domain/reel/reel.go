package reel

import "time"

// Reel is a short video clip. LikeCount and CommentCount are denormalized
// counters maintained by atomic increments issued in the same batch as the
// child write.
type Reel struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	AuthorImage  string    `json:"author_image"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Caption      string    `json:"caption"`
	LikedBy      []string  `json:"liked_by"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Comment is a comment on a reel. ReplyCount is a denormalized counter on
// the parent comment, adjusted atomically with the reply write.
type Comment struct {
	ID          string    `json:"id"`
	ReelID      string    `json:"reel_id"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	AuthorImage string    `json:"author_image"`
	Text        string    `json:"text"`
	ParentID    string    `json:"parent_id,omitempty"`
	ReplyCount  int       `json:"reply_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateReelRequest is the payload for posting a reel. Video bytes are
// uploaded separately; the request carries the resulting URLs.
type CreateReelRequest struct {
	VideoURL     string `json:"video_url" validate:"required,url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Caption      string `json:"caption" validate:"max=500"`
}

// CreateCommentRequest is the payload for commenting on a reel.
type CreateCommentRequest struct {
	Text     string `json:"text" validate:"required,max=500"`
	ParentID string `json:"parent_id,omitempty"`
}
