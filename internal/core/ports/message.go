package ports

import (
	"context"

	"github.com/craftyard/marketplace-backend/internal/core/domain/message"
)

// MessageRepository wraps the flat top-level messages collection and the
// conversations collection.
type MessageRepository interface {
	CreateMessage(ctx context.Context, m *message.Message) (string, error)
	GetMessage(ctx context.Context, id string) (*message.Message, error)
	SoftDeleteMessage(ctx context.Context, m *message.Message) error
	ListMessages(ctx context.Context, conversationID string, limit int, cursor string) ([]*message.Message, string, error)
	MarkConversationRead(ctx context.Context, conversationID, readerID string) error

	CreateConversation(ctx context.Context, c *message.Conversation) (string, error)
	GetConversation(ctx context.Context, id string) (*message.Conversation, error)
	FindConversation(ctx context.Context, userA, userB string) (*message.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]*message.Conversation, error)
	SetLastMessage(ctx context.Context, conversationID, text string) error
	UpdateParticipantImage(ctx context.Context, userID, url string) error

	SubscribeMessages(ctx context.Context, conversationID string, fn func([]*message.Message)) error
	UnsubscribeMessages(conversationID string)
	UnsubscribeAll()
}

// MessageService is the chat facade.
type MessageService interface {
	SendMessage(ctx context.Context, req *message.SendMessageRequest) (*message.Message, error)
	GetMessages(ctx context.Context, conversationID string, limit int, cursor string) ([]*message.Message, string, error)
	DeleteMessage(ctx context.Context, id string) error
	GetConversations(ctx context.Context) ([]*message.Conversation, error)
	MarkConversationRead(ctx context.Context, conversationID string) error
}
