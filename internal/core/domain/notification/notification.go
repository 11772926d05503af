package notification

import "time"

// Kind names the event a notification describes; it doubles as the
// deep-link discriminator in the push payload.
type Kind string

const (
	KindReview  Kind = "review"
	KindMessage Kind = "message"
	KindLike    Kind = "like"
	KindComment Kind = "comment"
	KindFollow  Kind = "follow"
)

// Notification is a best-effort side effect of a primary write: creating or
// delivering one must never fail the operation that triggered it.
type Notification struct {
	ID          string            `json:"id"`
	RecipientID string            `json:"recipient_id"`
	ActorID     string            `json:"actor_id"`
	ActorName   string            `json:"actor_name"`
	Kind        Kind              `json:"kind"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Payload     map[string]string `json:"payload,omitempty"`
	IsRead      bool              `json:"is_read"`
	CreatedAt   time.Time         `json:"created_at"`
}
