package mocks

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/domain/message"
	"github.com/craftyard/marketplace-backend/internal/core/domain/notification"
	"github.com/craftyard/marketplace-backend/internal/core/domain/portfolio"
	"github.com/craftyard/marketplace-backend/internal/core/domain/post"
	"github.com/craftyard/marketplace-backend/internal/core/domain/reel"
	"github.com/craftyard/marketplace-backend/internal/core/domain/review"
	"github.com/craftyard/marketplace-backend/internal/core/domain/saved"
	"github.com/craftyard/marketplace-backend/internal/core/domain/status"
	"github.com/craftyard/marketplace-backend/internal/core/domain/user"
	"github.com/google/uuid"
)

// UserRepositoryMock is a lightweight mock for UserRepository
type UserRepositoryMock struct {
	CreateFn            func(ctx context.Context, u *user.User) (string, error)
	GetByIDFn           func(ctx context.Context, id string) (*user.User, error)
	UpdateFn            func(ctx context.Context, u *user.User) error
	ListFn              func(ctx context.Context, limit int, cursor string) ([]*user.User, string, error)
	SearchFn            func(ctx context.Context, query string, limit int) ([]*user.User, error)
	UpdateRatingStatsFn func(ctx context.Context, userID string, stats user.RatingStats) error
	FollowFn            func(ctx context.Context, followerID, followeeID string) error
	UnfollowFn          func(ctx context.Context, followerID, followeeID string) error
	SetProfileImageFn   func(ctx context.Context, userID, url string) error
}

func (m *UserRepositoryMock) Create(ctx context.Context, u *user.User) (string, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return uuid.NewString(), nil
}
func (m *UserRepositoryMock) GetByID(ctx context.Context, id string) (*user.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *UserRepositoryMock) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, u)
	}
	return nil
}
func (m *UserRepositoryMock) List(ctx context.Context, limit int, cursor string) ([]*user.User, string, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, cursor)
	}
	return nil, "", nil
}
func (m *UserRepositoryMock) Search(ctx context.Context, query string, limit int) ([]*user.User, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query, limit)
	}
	return nil, nil
}
func (m *UserRepositoryMock) UpdateRatingStats(ctx context.Context, userID string, stats user.RatingStats) error {
	if m.UpdateRatingStatsFn != nil {
		return m.UpdateRatingStatsFn(ctx, userID, stats)
	}
	return nil
}
func (m *UserRepositoryMock) Follow(ctx context.Context, followerID, followeeID string) error {
	if m.FollowFn != nil {
		return m.FollowFn(ctx, followerID, followeeID)
	}
	return nil
}
func (m *UserRepositoryMock) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if m.UnfollowFn != nil {
		return m.UnfollowFn(ctx, followerID, followeeID)
	}
	return nil
}
func (m *UserRepositoryMock) SetProfileImage(ctx context.Context, userID, url string) error {
	if m.SetProfileImageFn != nil {
		return m.SetProfileImageFn(ctx, userID, url)
	}
	return nil
}

// PostRepositoryMock is a lightweight mock for PostRepository
type PostRepositoryMock struct {
	CreateFn            func(ctx context.Context, p *post.Post) (string, error)
	GetByIDFn           func(ctx context.Context, id string) (*post.Post, error)
	UpdateFn            func(ctx context.Context, p *post.Post) error
	SoftDeleteFn        func(ctx context.Context, id string) error
	ListPageFn          func(ctx context.Context, limit int, cursor string) ([]*post.Post, string, error)
	ListByAuthorFn      func(ctx context.Context, authorID string) ([]*post.Post, error)
	SearchFn            func(ctx context.Context, query string, limit int) ([]*post.Post, error)
	UpdateAuthorImageFn func(ctx context.Context, authorID, url string) error
}

func (m *PostRepositoryMock) Create(ctx context.Context, p *post.Post) (string, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return uuid.NewString(), nil
}
func (m *PostRepositoryMock) GetByID(ctx context.Context, id string) (*post.Post, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *PostRepositoryMock) Update(ctx context.Context, p *post.Post) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, p)
	}
	return nil
}
func (m *PostRepositoryMock) SoftDelete(ctx context.Context, id string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, id)
	}
	return nil
}
func (m *PostRepositoryMock) ListPage(ctx context.Context, limit int, cursor string) ([]*post.Post, string, error) {
	if m.ListPageFn != nil {
		return m.ListPageFn(ctx, limit, cursor)
	}
	return nil, "", nil
}
func (m *PostRepositoryMock) ListByAuthor(ctx context.Context, authorID string) ([]*post.Post, error) {
	if m.ListByAuthorFn != nil {
		return m.ListByAuthorFn(ctx, authorID)
	}
	return nil, nil
}
func (m *PostRepositoryMock) Search(ctx context.Context, query string, limit int) ([]*post.Post, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query, limit)
	}
	return nil, nil
}
func (m *PostRepositoryMock) UpdateAuthorImage(ctx context.Context, authorID, url string) error {
	if m.UpdateAuthorImageFn != nil {
		return m.UpdateAuthorImageFn(ctx, authorID, url)
	}
	return nil
}

// ReelRepositoryMock is a lightweight mock for ReelRepository
type ReelRepositoryMock struct {
	CreateFn              func(ctx context.Context, r *reel.Reel) (string, error)
	GetByIDFn             func(ctx context.Context, id string) (*reel.Reel, error)
	SoftDeleteFn          func(ctx context.Context, id string) error
	ListPageFn            func(ctx context.Context, limit int, cursor string) ([]*reel.Reel, string, error)
	ListByAuthorFn        func(ctx context.Context, authorID string) ([]*reel.Reel, error)
	TrendingFn            func(ctx context.Context, limit int) ([]*reel.Reel, error)
	LikeFn                func(ctx context.Context, reelID, userID string) error
	UnlikeFn              func(ctx context.Context, reelID, userID string) error
	AddCommentFn          func(ctx context.Context, c *reel.Comment) (string, error)
	DeleteCommentFn       func(ctx context.Context, c *reel.Comment) error
	GetCommentFn          func(ctx context.Context, id string) (*reel.Comment, error)
	ListCommentsFn        func(ctx context.Context, reelID string) ([]*reel.Comment, error)
	SubscribeCommentsFn   func(ctx context.Context, reelID string, fn func([]*reel.Comment)) error
	UnsubscribeCommentsFn func(reelID string)
	UpdateAuthorImageFn   func(ctx context.Context, authorID, url string) error
}

func (m *ReelRepositoryMock) Create(ctx context.Context, r *reel.Reel) (string, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return uuid.NewString(), nil
}
func (m *ReelRepositoryMock) GetByID(ctx context.Context, id string) (*reel.Reel, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *ReelRepositoryMock) SoftDelete(ctx context.Context, id string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, id)
	}
	return nil
}
func (m *ReelRepositoryMock) ListPage(ctx context.Context, limit int, cursor string) ([]*reel.Reel, string, error) {
	if m.ListPageFn != nil {
		return m.ListPageFn(ctx, limit, cursor)
	}
	return nil, "", nil
}
func (m *ReelRepositoryMock) ListByAuthor(ctx context.Context, authorID string) ([]*reel.Reel, error) {
	if m.ListByAuthorFn != nil {
		return m.ListByAuthorFn(ctx, authorID)
	}
	return nil, nil
}
func (m *ReelRepositoryMock) Trending(ctx context.Context, limit int) ([]*reel.Reel, error) {
	if m.TrendingFn != nil {
		return m.TrendingFn(ctx, limit)
	}
	return nil, nil
}
func (m *ReelRepositoryMock) Like(ctx context.Context, reelID, userID string) error {
	if m.LikeFn != nil {
		return m.LikeFn(ctx, reelID, userID)
	}
	return nil
}
func (m *ReelRepositoryMock) Unlike(ctx context.Context, reelID, userID string) error {
	if m.UnlikeFn != nil {
		return m.UnlikeFn(ctx, reelID, userID)
	}
	return nil
}
func (m *ReelRepositoryMock) AddComment(ctx context.Context, c *reel.Comment) (string, error) {
	if m.AddCommentFn != nil {
		return m.AddCommentFn(ctx, c)
	}
	return uuid.NewString(), nil
}
func (m *ReelRepositoryMock) DeleteComment(ctx context.Context, c *reel.Comment) error {
	if m.DeleteCommentFn != nil {
		return m.DeleteCommentFn(ctx, c)
	}
	return nil
}
func (m *ReelRepositoryMock) GetComment(ctx context.Context, id string) (*reel.Comment, error) {
	if m.GetCommentFn != nil {
		return m.GetCommentFn(ctx, id)
	}
	return nil, nil
}
func (m *ReelRepositoryMock) ListComments(ctx context.Context, reelID string) ([]*reel.Comment, error) {
	if m.ListCommentsFn != nil {
		return m.ListCommentsFn(ctx, reelID)
	}
	return nil, nil
}
func (m *ReelRepositoryMock) SubscribeComments(ctx context.Context, reelID string, fn func([]*reel.Comment)) error {
	if m.SubscribeCommentsFn != nil {
		return m.SubscribeCommentsFn(ctx, reelID, fn)
	}
	return nil
}
func (m *ReelRepositoryMock) UnsubscribeComments(reelID string) {
	if m.UnsubscribeCommentsFn != nil {
		m.UnsubscribeCommentsFn(reelID)
	}
}
func (m *ReelRepositoryMock) UpdateAuthorImage(ctx context.Context, authorID, url string) error {
	if m.UpdateAuthorImageFn != nil {
		return m.UpdateAuthorImageFn(ctx, authorID, url)
	}
	return nil
}

// ReviewRepositoryMock is a lightweight mock for ReviewRepository
type ReviewRepositoryMock struct {
	CreateFn              func(ctx context.Context, r *review.Review) (string, error)
	GetByIDFn             func(ctx context.Context, id string) (*review.Review, error)
	UpdateFn              func(ctx context.Context, r *review.Review) error
	DeleteFn              func(ctx context.Context, r *review.Review) error
	ListForUserFn         func(ctx context.Context, revieweeID string) ([]*review.Review, error)
	CountByPairFn         func(ctx context.Context, reviewerID, revieweeID string) (int, error)
	UpdateReviewerImageFn func(ctx context.Context, reviewerID, url string) error
}

func (m *ReviewRepositoryMock) Create(ctx context.Context, r *review.Review) (string, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return uuid.NewString(), nil
}
func (m *ReviewRepositoryMock) GetByID(ctx context.Context, id string) (*review.Review, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *ReviewRepositoryMock) Update(ctx context.Context, r *review.Review) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, r)
	}
	return nil
}
func (m *ReviewRepositoryMock) Delete(ctx context.Context, r *review.Review) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, r)
	}
	return nil
}
func (m *ReviewRepositoryMock) ListForUser(ctx context.Context, revieweeID string) ([]*review.Review, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, revieweeID)
	}
	return nil, nil
}
func (m *ReviewRepositoryMock) CountByPair(ctx context.Context, reviewerID, revieweeID string) (int, error) {
	if m.CountByPairFn != nil {
		return m.CountByPairFn(ctx, reviewerID, revieweeID)
	}
	return 0, nil
}
func (m *ReviewRepositoryMock) UpdateReviewerImage(ctx context.Context, reviewerID, url string) error {
	if m.UpdateReviewerImageFn != nil {
		return m.UpdateReviewerImageFn(ctx, reviewerID, url)
	}
	return nil
}

// MessageRepositoryMock is a lightweight mock for MessageRepository
type MessageRepositoryMock struct {
	CreateMessageFn          func(ctx context.Context, msg *message.Message) (string, error)
	GetMessageFn             func(ctx context.Context, id string) (*message.Message, error)
	SoftDeleteMessageFn      func(ctx context.Context, msg *message.Message) error
	ListMessagesFn           func(ctx context.Context, conversationID string, limit int, cursor string) ([]*message.Message, string, error)
	MarkConversationReadFn   func(ctx context.Context, conversationID, readerID string) error
	CreateConversationFn     func(ctx context.Context, c *message.Conversation) (string, error)
	GetConversationFn        func(ctx context.Context, id string) (*message.Conversation, error)
	FindConversationFn       func(ctx context.Context, userA, userB string) (*message.Conversation, error)
	ListConversationsFn      func(ctx context.Context, userID string) ([]*message.Conversation, error)
	SetLastMessageFn         func(ctx context.Context, conversationID, text string) error
	UpdateParticipantImageFn func(ctx context.Context, userID, url string) error
	SubscribeMessagesFn      func(ctx context.Context, conversationID string, fn func([]*message.Message)) error
	UnsubscribeMessagesFn    func(conversationID string)
	UnsubscribeAllFn         func()
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, msg *message.Message) (string, error) {
	if m.CreateMessageFn != nil {
		return m.CreateMessageFn(ctx, msg)
	}
	return uuid.NewString(), nil
}
func (m *MessageRepositoryMock) GetMessage(ctx context.Context, id string) (*message.Message, error) {
	if m.GetMessageFn != nil {
		return m.GetMessageFn(ctx, id)
	}
	return nil, nil
}
func (m *MessageRepositoryMock) SoftDeleteMessage(ctx context.Context, msg *message.Message) error {
	if m.SoftDeleteMessageFn != nil {
		return m.SoftDeleteMessageFn(ctx, msg)
	}
	return nil
}
func (m *MessageRepositoryMock) ListMessages(ctx context.Context, conversationID string, limit int, cursor string) ([]*message.Message, string, error) {
	if m.ListMessagesFn != nil {
		return m.ListMessagesFn(ctx, conversationID, limit, cursor)
	}
	return nil, "", nil
}
func (m *MessageRepositoryMock) MarkConversationRead(ctx context.Context, conversationID, readerID string) error {
	if m.MarkConversationReadFn != nil {
		return m.MarkConversationReadFn(ctx, conversationID, readerID)
	}
	return nil
}
func (m *MessageRepositoryMock) CreateConversation(ctx context.Context, c *message.Conversation) (string, error) {
	if m.CreateConversationFn != nil {
		return m.CreateConversationFn(ctx, c)
	}
	return uuid.NewString(), nil
}
func (m *MessageRepositoryMock) GetConversation(ctx context.Context, id string) (*message.Conversation, error) {
	if m.GetConversationFn != nil {
		return m.GetConversationFn(ctx, id)
	}
	return nil, nil
}
func (m *MessageRepositoryMock) FindConversation(ctx context.Context, userA, userB string) (*message.Conversation, error) {
	if m.FindConversationFn != nil {
		return m.FindConversationFn(ctx, userA, userB)
	}
	return nil, nil
}
func (m *MessageRepositoryMock) ListConversations(ctx context.Context, userID string) ([]*message.Conversation, error) {
	if m.ListConversationsFn != nil {
		return m.ListConversationsFn(ctx, userID)
	}
	return nil, nil
}
func (m *MessageRepositoryMock) SetLastMessage(ctx context.Context, conversationID, text string) error {
	if m.SetLastMessageFn != nil {
		return m.SetLastMessageFn(ctx, conversationID, text)
	}
	return nil
}
func (m *MessageRepositoryMock) UpdateParticipantImage(ctx context.Context, userID, url string) error {
	if m.UpdateParticipantImageFn != nil {
		return m.UpdateParticipantImageFn(ctx, userID, url)
	}
	return nil
}
func (m *MessageRepositoryMock) SubscribeMessages(ctx context.Context, conversationID string, fn func([]*message.Message)) error {
	if m.SubscribeMessagesFn != nil {
		return m.SubscribeMessagesFn(ctx, conversationID, fn)
	}
	return nil
}
func (m *MessageRepositoryMock) UnsubscribeMessages(conversationID string) {
	if m.UnsubscribeMessagesFn != nil {
		m.UnsubscribeMessagesFn(conversationID)
	}
}
func (m *MessageRepositoryMock) UnsubscribeAll() {
	if m.UnsubscribeAllFn != nil {
		m.UnsubscribeAllFn()
	}
}

// NotificationRepositoryMock is a lightweight mock for NotificationRepository
type NotificationRepositoryMock struct {
	CreateFn      func(ctx context.Context, n *notification.Notification) (string, error)
	ListForUserFn func(ctx context.Context, userID string, limit int) ([]*notification.Notification, error)
	MarkReadFn    func(ctx context.Context, id, userID string) error
	MarkAllReadFn func(ctx context.Context, userID string) error
	UnreadCountFn func(ctx context.Context, userID string) (int, error)
}

func (m *NotificationRepositoryMock) Create(ctx context.Context, n *notification.Notification) (string, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	return uuid.NewString(), nil
}
func (m *NotificationRepositoryMock) ListForUser(ctx context.Context, userID string, limit int) ([]*notification.Notification, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID, limit)
	}
	return nil, nil
}
func (m *NotificationRepositoryMock) MarkRead(ctx context.Context, id, userID string) error {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, id, userID)
	}
	return nil
}
func (m *NotificationRepositoryMock) MarkAllRead(ctx context.Context, userID string) error {
	if m.MarkAllReadFn != nil {
		return m.MarkAllReadFn(ctx, userID)
	}
	return nil
}
func (m *NotificationRepositoryMock) UnreadCount(ctx context.Context, userID string) (int, error) {
	if m.UnreadCountFn != nil {
		return m.UnreadCountFn(ctx, userID)
	}
	return 0, nil
}

// StatusRepositoryMock is a lightweight mock for StatusRepository
type StatusRepositoryMock struct {
	CreateFn              func(ctx context.Context, s *status.Status) (string, error)
	GetByIDFn             func(ctx context.Context, id string) (*status.Status, error)
	SoftDeleteFn          func(ctx context.Context, id string) error
	ListByAuthorFn        func(ctx context.Context, authorID string) ([]*status.Status, error)
	ListForAuthorsFn      func(ctx context.Context, authorIDs []string) ([]*status.Status, error)
	MarkViewedFn          func(ctx context.Context, statusID, viewerID string) error
	DeleteExpiredBeforeFn func(ctx context.Context, cutoff time.Time) (int, error)
}

func (m *StatusRepositoryMock) Create(ctx context.Context, s *status.Status) (string, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return uuid.NewString(), nil
}
func (m *StatusRepositoryMock) GetByID(ctx context.Context, id string) (*status.Status, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *StatusRepositoryMock) SoftDelete(ctx context.Context, id string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, id)
	}
	return nil
}
func (m *StatusRepositoryMock) ListByAuthor(ctx context.Context, authorID string) ([]*status.Status, error) {
	if m.ListByAuthorFn != nil {
		return m.ListByAuthorFn(ctx, authorID)
	}
	return nil, nil
}
func (m *StatusRepositoryMock) ListForAuthors(ctx context.Context, authorIDs []string) ([]*status.Status, error) {
	if m.ListForAuthorsFn != nil {
		return m.ListForAuthorsFn(ctx, authorIDs)
	}
	return nil, nil
}
func (m *StatusRepositoryMock) MarkViewed(ctx context.Context, statusID, viewerID string) error {
	if m.MarkViewedFn != nil {
		return m.MarkViewedFn(ctx, statusID, viewerID)
	}
	return nil
}
func (m *StatusRepositoryMock) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if m.DeleteExpiredBeforeFn != nil {
		return m.DeleteExpiredBeforeFn(ctx, cutoff)
	}
	return 0, nil
}

// PortfolioRepositoryMock is a lightweight mock for PortfolioRepository
type PortfolioRepositoryMock struct {
	CreateFn      func(ctx context.Context, c *portfolio.Card) (string, error)
	GetByIDFn     func(ctx context.Context, id string) (*portfolio.Card, error)
	UpdateFn      func(ctx context.Context, c *portfolio.Card) error
	DeleteFn      func(ctx context.Context, c *portfolio.Card) error
	ListForUserFn func(ctx context.Context, ownerID string) ([]*portfolio.Card, error)
}

func (m *PortfolioRepositoryMock) Create(ctx context.Context, c *portfolio.Card) (string, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return uuid.NewString(), nil
}
func (m *PortfolioRepositoryMock) GetByID(ctx context.Context, id string) (*portfolio.Card, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *PortfolioRepositoryMock) Update(ctx context.Context, c *portfolio.Card) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, c)
	}
	return nil
}
func (m *PortfolioRepositoryMock) Delete(ctx context.Context, c *portfolio.Card) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, c)
	}
	return nil
}
func (m *PortfolioRepositoryMock) ListForUser(ctx context.Context, ownerID string) ([]*portfolio.Card, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, ownerID)
	}
	return nil, nil
}

// SavedRepositoryMock is a lightweight mock for SavedRepository
type SavedRepositoryMock struct {
	CreateFn      func(ctx context.Context, item *saved.Item) (string, error)
	FindFn        func(ctx context.Context, userID string, itemType saved.ItemType, itemID string) (*saved.Item, error)
	DeleteFn      func(ctx context.Context, item *saved.Item) error
	ListForUserFn func(ctx context.Context, userID string, itemType saved.ItemType) ([]*saved.Item, error)
}

func (m *SavedRepositoryMock) Create(ctx context.Context, item *saved.Item) (string, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, item)
	}
	return uuid.NewString(), nil
}
func (m *SavedRepositoryMock) Find(ctx context.Context, userID string, itemType saved.ItemType, itemID string) (*saved.Item, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx, userID, itemType, itemID)
	}
	return nil, nil
}
func (m *SavedRepositoryMock) Delete(ctx context.Context, item *saved.Item) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, item)
	}
	return nil
}
func (m *SavedRepositoryMock) ListForUser(ctx context.Context, userID string, itemType saved.ItemType) ([]*saved.Item, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID, itemType)
	}
	return nil, nil
}

// NotificationServiceMock is a lightweight mock for NotificationService
type NotificationServiceMock struct {
	NotifyFn      func(ctx context.Context, n *notification.Notification)
	ListFn        func(ctx context.Context, limit int) ([]*notification.Notification, error)
	MarkReadFn    func(ctx context.Context, id string) error
	MarkAllReadFn func(ctx context.Context) error
	UnreadCountFn func(ctx context.Context) (int, error)
}

func (m *NotificationServiceMock) Notify(ctx context.Context, n *notification.Notification) {
	if m.NotifyFn != nil {
		m.NotifyFn(ctx, n)
	}
}
func (m *NotificationServiceMock) List(ctx context.Context, limit int) ([]*notification.Notification, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit)
	}
	return nil, nil
}
func (m *NotificationServiceMock) MarkRead(ctx context.Context, id string) error {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, id)
	}
	return nil
}
func (m *NotificationServiceMock) MarkAllRead(ctx context.Context) error {
	if m.MarkAllReadFn != nil {
		return m.MarkAllReadFn(ctx)
	}
	return nil
}
func (m *NotificationServiceMock) UnreadCount(ctx context.Context) (int, error) {
	if m.UnreadCountFn != nil {
		return m.UnreadCountFn(ctx)
	}
	return 0, nil
}

// PushSenderMock is a lightweight mock for PushSender
type PushSenderMock struct {
	SendFn func(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}

func (m *PushSenderMock) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	if m.SendFn != nil {
		return m.SendFn(ctx, deviceToken, title, body, data)
	}
	return nil
}

// BlobStorageMock is a lightweight mock for BlobStorage
type BlobStorageMock struct {
	UploadFn func(ctx context.Context, data []byte, path string, contentType string) (string, error)
}

func (m *BlobStorageMock) Upload(ctx context.Context, data []byte, path string, contentType string) (string, error) {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, data, path, contentType)
	}
	return "https://cdn.example/" + path, nil
}
