package user

import "time"

// User is a marketplace profile. Rating aggregates are denormalized here
// and recomputed from a full review scan after every review write.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"display_name"`
	Bio           string    `json:"bio"`
	ProfileImage  string    `json:"profile_image"`
	Skills        []string  `json:"skills"`
	Location      string    `json:"location"`
	DeviceToken   string    `json:"device_token,omitempty"`
	Followers     []string  `json:"followers"`
	Following     []string  `json:"following"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil means leave
// the field unchanged.
type UpdateProfileRequest struct {
	DisplayName *string   `json:"display_name,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Skills      *[]string `json:"skills,omitempty"`
	Location    *string   `json:"location,omitempty"`
	DeviceToken *string   `json:"device_token,omitempty"`
}

// RatingStats is the aggregate written back onto the user document.
type RatingStats struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}
