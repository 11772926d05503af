package review

import "time"

// MaxPerPair caps how many reviews one reviewer may leave for the same
// reviewee.
const MaxPerPair = 2

// Review is a rating left by one user for another. Reviews are hard
// deleted; the reviewee's aggregate is recomputed from a full scan after
// every review write.
type Review struct {
	ID            string    `json:"id"`
	ReviewerID    string    `json:"reviewer_id"`
	ReviewerName  string    `json:"reviewer_name"`
	ReviewerImage string    `json:"reviewer_image"`
	RevieweeID    string    `json:"reviewee_id"`
	Rating        int       `json:"rating"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateReviewRequest is the payload for leaving a review.
type CreateReviewRequest struct {
	RevieweeID string `json:"reviewee_id" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Text       string `json:"text" validate:"max=1000"`
}

// UpdateReviewRequest carries the mutable review fields.
type UpdateReviewRequest struct {
	Rating *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Text   *string `json:"text,omitempty" validate:"omitempty,max=1000"`
}
