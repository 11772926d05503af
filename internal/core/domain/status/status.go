package status

import "time"

// DefaultLifetime is how long a status stays visible after posting.
const DefaultLifetime = 24 * time.Hour

// State is derived deterministically from the stored fields; it is never
// stored itself.
type State string

const (
	StateActive   State = "active"
	StateInactive State = "inactive"
	StateExpired  State = "expired"
)

// Status is a short-lived story-style post. Expiry is checked lazily at
// read time; the periodic cleanup batch exists only for storage hygiene.
type Status struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	AuthorImage string    `json:"author_image"`
	MediaURL    string    `json:"media_url"`
	Caption     string    `json:"caption"`
	ViewedBy    []string  `json:"viewed_by"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// StateAt derives the status state at the given instant. Soft deletion wins
// over expiry.
func (s *Status) StateAt(now time.Time) State {
	if !s.IsActive {
		return StateInactive
	}
	if now.After(s.ExpiresAt) {
		return StateExpired
	}
	return StateActive
}

// CreateStatusRequest is the payload for posting a status.
type CreateStatusRequest struct {
	MediaURL string `json:"media_url" validate:"required,url"`
	Caption  string `json:"caption" validate:"max=300"`
}
