package repositories

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/cachekey"
	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/message"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/realtime"
	"github.com/sirupsen/logrus"
)

// MessageRepository implements ports.MessageRepository over the document
// store. Messages live in one flat top-level collection filtered by
// conversation id rather than nested under conversations, so a single
// compound query serves any thread.
type MessageRepository struct {
	store    ports.DocumentStore
	cache    ports.Cache
	registry *realtime.Registry
	maxAge   time.Duration
	logger   *logrus.Logger
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(store ports.DocumentStore, cache ports.Cache, registry *realtime.Registry, maxAge time.Duration, logger *logrus.Logger) ports.MessageRepository {
	return &MessageRepository{store: store, cache: cache, registry: registry, maxAge: maxAge, logger: logger}
}

func messageToDoc(m *message.Message) map[string]any {
	return map[string]any{
		"conversation_id": m.ConversationID,
		"sender_id":       m.SenderID,
		"text":            m.Text,
		"media_url":       m.MediaURL,
		"is_read":         m.IsRead,
		"is_active":       m.IsActive,
		"created_at":      encodeTime(m.CreatedAt),
	}
}

func messageFromDoc(doc *ports.Document) *message.Message {
	m := doc.Data
	return &message.Message{
		ID:             doc.ID,
		ConversationID: docString(m, "conversation_id"),
		SenderID:       docString(m, "sender_id"),
		Text:           docString(m, "text"),
		MediaURL:       docString(m, "media_url"),
		IsRead:         docBool(m, "is_read"),
		IsActive:       docBool(m, "is_active"),
		CreatedAt:      decodeTime(m["created_at"]),
	}
}

func conversationToDoc(c *message.Conversation) map[string]any {
	return map[string]any{
		"participant_ids":    ports.StringSet(c.ParticipantIDs),
		"participant_names":  c.ParticipantNames,
		"participant_images": c.ParticipantImages,
		"last_message":       c.LastMessage,
		"last_message_at":    encodeTime(c.LastMessageAt),
		"created_at":         encodeTime(c.CreatedAt),
	}
}

func conversationFromDoc(doc *ports.Document) *message.Conversation {
	m := doc.Data
	return &message.Conversation{
		ID:                doc.ID,
		ParticipantIDs:    docStrings(m, "participant_ids"),
		ParticipantNames:  docStringMap(m, "participant_names"),
		ParticipantImages: docStringMap(m, "participant_images"),
		LastMessage:       docString(m, "last_message"),
		LastMessageAt:     decodeTime(m["last_message_at"]),
		CreatedAt:         decodeTime(m["created_at"]),
	}
}

// CreateMessage writes a new message document.
func (r *MessageRepository) CreateMessage(ctx context.Context, m *message.Message) (string, error) {
	id, err := r.store.Create(ctx, colMessages, messageToDoc(m))
	if err != nil {
		return "", apperrors.Backend("create message", err)
	}
	m.ID = id
	cacheRemove(r.cache, ctx, cachekey.MessagesOfConversation(m.ConversationID))
	return id, nil
}

// GetMessage returns the message or (nil, nil) when the id does not resolve.
func (r *MessageRepository) GetMessage(ctx context.Context, id string) (*message.Message, error) {
	doc, err := r.store.Get(ctx, colMessages, id)
	if err != nil {
		return nil, apperrors.Backend("get message", err)
	}
	if doc == nil {
		return nil, nil
	}
	return messageFromDoc(doc), nil
}

// SoftDeleteMessage flips is_active off so the thread history stays
// auditable while listings exclude the message.
func (r *MessageRepository) SoftDeleteMessage(ctx context.Context, m *message.Message) error {
	if err := r.store.Update(ctx, colMessages, m.ID, map[string]any{"is_active": false}); err != nil {
		return apperrors.Backend("soft delete message", err)
	}
	cacheRemove(r.cache, ctx, cachekey.MessagesOfConversation(m.ConversationID))
	return nil
}

// ListMessages returns one page of the conversation's active messages,
// newest first. Only the first page is served through the cache.
func (r *MessageRepository) ListMessages(ctx context.Context, conversationID string, limit int, cursor string) ([]*message.Message, string, error) {
	q := ports.Query{
		Collection: colMessages,
		Filters: []ports.Filter{
			{Field: "conversation_id", Op: ports.OpEqual, Value: conversationID},
			{Field: "is_active", Op: ports.OpEqual, Value: true},
		},
		OrderBy:    "created_at",
		Descending: true,
		Limit:      limit,
		StartAfter: cursor,
	}
	if cursor == "" {
		msgs, err := loadListSingleflight(r.cache, ctx, cachekey.MessagesOfConversation(conversationID), r.maxAge, func() ([]*message.Message, error) {
			docs, err := r.store.Query(ctx, q)
			if err != nil {
				return nil, apperrors.Backend("list messages", err)
			}
			return mapDocs(docs, messageFromDoc), nil
		})
		if err != nil {
			return nil, "", err
		}
		return msgs, nextCursor(msgs, limit, func(m *message.Message) string { return m.ID }), nil
	}
	docs, err := r.store.Query(ctx, q)
	if err != nil {
		return nil, "", apperrors.Backend("list messages", err)
	}
	msgs := mapDocs(docs, messageFromDoc)
	return msgs, nextCursor(msgs, limit, func(m *message.Message) string { return m.ID }), nil
}

// MarkConversationRead marks every unread message not sent by the reader
// as read, in one atomic batch.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, conversationID, readerID string) error {
	docs, err := r.store.Query(ctx, ports.Query{
		Collection: colMessages,
		Filters: []ports.Filter{
			{Field: "conversation_id", Op: ports.OpEqual, Value: conversationID},
			{Field: "is_read", Op: ports.OpEqual, Value: false},
		},
	})
	if err != nil {
		return apperrors.Backend("list unread messages", err)
	}
	ops := make([]ports.BatchOp, 0, len(docs))
	for _, doc := range docs {
		if docString(doc.Data, "sender_id") == readerID {
			continue
		}
		ops = append(ops, ports.BatchOp{
			Kind:       ports.BatchUpdate,
			Collection: colMessages,
			ID:         doc.ID,
			Fields:     map[string]any{"is_read": true},
		})
	}
	if len(ops) == 0 {
		return nil
	}
	if err := r.store.RunBatch(ctx, ops); err != nil {
		return apperrors.Backend("mark conversation read", err)
	}
	cacheRemove(r.cache, ctx, cachekey.MessagesOfConversation(conversationID))
	return nil
}

// CreateConversation writes a new conversation document.
func (r *MessageRepository) CreateConversation(ctx context.Context, c *message.Conversation) (string, error) {
	id, err := r.store.Create(ctx, colConversations, conversationToDoc(c))
	if err != nil {
		return "", apperrors.Backend("create conversation", err)
	}
	c.ID = id
	for _, pid := range c.ParticipantIDs {
		cacheRemove(r.cache, ctx, cachekey.ConversationsOfUser(pid))
	}
	r.logger.WithField("conversation_id", id).Info("conversation created")
	return id, nil
}

// GetConversation returns the conversation or (nil, nil) when the id does
// not resolve.
func (r *MessageRepository) GetConversation(ctx context.Context, id string) (*message.Conversation, error) {
	key := cachekey.Conversation(id)
	if v, ok := cacheFresh[message.Conversation](r.cache, ctx, key, r.maxAge); ok {
		return v, nil
	}
	doc, err := r.store.Get(ctx, colConversations, id)
	if err != nil {
		if v, ok := cacheGet[message.Conversation](r.cache, ctx, key); ok {
			return v, nil
		}
		return nil, apperrors.Backend("get conversation", err)
	}
	if doc == nil {
		return nil, nil
	}
	c := conversationFromDoc(doc)
	cacheStoreSilently(r.cache, ctx, key, c)
	return c, nil
}

// FindConversation returns the two-party conversation between userA and
// userB, or (nil, nil) when none exists yet.
func (r *MessageRepository) FindConversation(ctx context.Context, userA, userB string) (*message.Conversation, error) {
	docs, err := r.store.Query(ctx, ports.Query{
		Collection: colConversations,
		Filters:    []ports.Filter{{Field: "participant_ids", Op: ports.OpArrayContains, Value: userA}},
	})
	if err != nil {
		return nil, apperrors.Backend("find conversation", err)
	}
	for i := range docs {
		c := conversationFromDoc(&docs[i])
		for _, pid := range c.ParticipantIDs {
			if pid == userB {
				return c, nil
			}
		}
	}
	return nil, nil
}

// ListConversations returns the user's threads, most recent activity first.
func (r *MessageRepository) ListConversations(ctx context.Context, userID string) ([]*message.Conversation, error) {
	return loadListSingleflight(r.cache, ctx, cachekey.ConversationsOfUser(userID), r.maxAge, func() ([]*message.Conversation, error) {
		docs, err := r.store.Query(ctx, ports.Query{
			Collection: colConversations,
			Filters:    []ports.Filter{{Field: "participant_ids", Op: ports.OpArrayContains, Value: userID}},
			OrderBy:    "last_message_at",
			Descending: true,
		})
		if err != nil {
			return nil, apperrors.Backend("list conversations", err)
		}
		return mapDocs(docs, conversationFromDoc), nil
	})
}

// SetLastMessage refreshes the inbox preview denormalized onto the
// conversation document.
func (r *MessageRepository) SetLastMessage(ctx context.Context, conversationID, text string) error {
	err := r.store.Update(ctx, colConversations, conversationID, map[string]any{
		"last_message":    text,
		"last_message_at": encodeTime(time.Now()),
	})
	if err != nil {
		return apperrors.Backend("set last message", err)
	}
	keys := []string{cachekey.Conversation(conversationID)}
	if doc, err := r.store.Get(ctx, colConversations, conversationID); err == nil && doc != nil {
		for _, pid := range docStrings(doc.Data, "participant_ids") {
			keys = append(keys, cachekey.ConversationsOfUser(pid))
		}
	}
	cacheRemove(r.cache, ctx, keys...)
	return nil
}

// UpdateParticipantImage rewrites the denormalized participant image on
// every conversation the user takes part in.
func (r *MessageRepository) UpdateParticipantImage(ctx context.Context, userID, url string) error {
	docs, err := r.store.Query(ctx, ports.Query{
		Collection: colConversations,
		Filters:    []ports.Filter{{Field: "participant_ids", Op: ports.OpArrayContains, Value: userID}},
	})
	if err != nil {
		return apperrors.Backend("list conversations", err)
	}
	if len(docs) == 0 {
		return nil
	}
	ops := make([]ports.BatchOp, 0, len(docs))
	for _, doc := range docs {
		images := docStringMap(doc.Data, "participant_images")
		images[userID] = url
		ops = append(ops, ports.BatchOp{
			Kind:       ports.BatchUpdate,
			Collection: colConversations,
			ID:         doc.ID,
			Fields:     map[string]any{"participant_images": images},
		})
	}
	if err := r.store.RunBatch(ctx, ops); err != nil {
		return apperrors.Backend("update participant image", err)
	}
	return nil
}

// SubscribeMessages installs a live listener for the conversation's
// messages. Re-subscribing to the same conversation replaces the previous
// listener. Each snapshot also refreshes the cached message list.
func (r *MessageRepository) SubscribeMessages(ctx context.Context, conversationID string, fn func([]*message.Message)) error {
	cancel, err := r.store.Subscribe(ctx, ports.Query{
		Collection: colMessages,
		Filters: []ports.Filter{
			{Field: "conversation_id", Op: ports.OpEqual, Value: conversationID},
			{Field: "is_active", Op: ports.OpEqual, Value: true},
		},
		OrderBy:    "created_at",
		Descending: true,
	}, func(docs []ports.Document) {
		msgs := mapDocs(docs, messageFromDoc)
		cacheStoreSilently(r.cache, ctx, cachekey.MessagesOfConversation(conversationID), msgs)
		fn(msgs)
	})
	if err != nil {
		return apperrors.Backend("subscribe messages", err)
	}
	r.registry.Set(cachekey.MessagesOfConversation(conversationID), cancel)
	return nil
}

// UnsubscribeMessages stops the live listener for the conversation, if any.
func (r *MessageRepository) UnsubscribeMessages(conversationID string) {
	r.registry.Cancel(cachekey.MessagesOfConversation(conversationID))
}

// UnsubscribeAll stops every live message listener. Used on shutdown.
func (r *MessageRepository) UnsubscribeAll() {
	r.registry.CancelAll()
}

var _ ports.MessageRepository = (*MessageRepository)(nil)
