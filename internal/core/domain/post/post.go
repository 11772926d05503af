package post

import "time"

// Kind distinguishes a service offer from a service request.
type Kind string

const (
	KindOffer   Kind = "offer"
	KindRequest Kind = "request"
)

// Post is a service offer or request. Author display fields are
// denormalized from the user document for list rendering.
type Post struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	AuthorImage string    `json:"author_image"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	ImageURLs   []string  `json:"image_urls"`
	Location    string    `json:"location"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Kind        Kind     `json:"kind" validate:"required,oneof=offer request"`
	Title       string   `json:"title" validate:"required,max=120"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	ImageURLs   []string `json:"image_urls,omitempty"`
	Location    string   `json:"location,omitempty"`
}

// UpdatePostRequest carries the mutable post fields; nil leaves a field unchanged.
type UpdatePostRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Location    *string  `json:"location,omitempty"`
}
