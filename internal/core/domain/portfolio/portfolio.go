package portfolio

import "time"

// Card is one portfolio item on a user's profile. Cards are hard deleted.
type Card struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURLs   []string  `json:"image_urls"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCardRequest is the payload for adding a portfolio card.
type CreateCardRequest struct {
	Title       string   `json:"title" validate:"required,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	ImageURLs   []string `json:"image_urls,omitempty"`
}

// UpdateCardRequest carries the mutable card fields.
type UpdateCardRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	ImageURLs   *[]string `json:"image_urls,omitempty"`
}
