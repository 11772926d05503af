package message

import "time"

// Message lives in a flat top-level collection filtered by ConversationID.
// Messages are soft deleted so conversation history stays auditable.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Text           string    `json:"text"`
	MediaURL       string    `json:"media_url,omitempty"`
	IsRead         bool      `json:"is_read"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// Conversation is the two-party thread document. LastMessage and
// LastMessageAt are denormalized from the newest message for inbox
// rendering; participant display fields are denormalized from the user
// documents.
type Conversation struct {
	ID                string            `json:"id"`
	ParticipantIDs    []string          `json:"participant_ids"`
	ParticipantNames  map[string]string `json:"participant_names"`
	ParticipantImages map[string]string `json:"participant_images"`
	LastMessage       string            `json:"last_message"`
	LastMessageAt     time.Time         `json:"last_message_at"`
	CreatedAt         time.Time         `json:"created_at"`
}

// SendMessageRequest is the payload for sending a message to a user.
type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Text        string `json:"text" validate:"required_without=MediaURL,max=2000"`
	MediaURL    string `json:"media_url,omitempty"`
}
