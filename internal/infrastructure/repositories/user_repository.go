package repositories

import (
	"context"
	"time"

	"github.com/craftyard/marketplace-backend/internal/core/cachekey"
	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/user"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// UserRepository implements ports.UserRepository over the document store
// with cache-aside reads.
type UserRepository struct {
	store  ports.DocumentStore
	cache  ports.Cache
	maxAge time.Duration
	logger *logrus.Logger
}

// NewUserRepository creates a new user repository.
func NewUserRepository(store ports.DocumentStore, cache ports.Cache, maxAge time.Duration, logger *logrus.Logger) ports.UserRepository {
	return &UserRepository{store: store, cache: cache, maxAge: maxAge, logger: logger}
}

func userToDoc(u *user.User) map[string]any {
	return map[string]any{
		"username":       u.Username,
		"display_name":   u.DisplayName,
		"bio":            u.Bio,
		"profile_image":  u.ProfileImage,
		"skills":         u.Skills,
		"location":       u.Location,
		"device_token":   u.DeviceToken,
		"followers":      ports.StringSet(u.Followers),
		"following":      ports.StringSet(u.Following),
		"average_rating": u.AverageRating,
		"review_count":   u.ReviewCount,
		"is_active":      u.IsActive,
		"created_at":     encodeTime(u.CreatedAt),
		"updated_at":     encodeTime(u.UpdatedAt),
	}
}

func userFromDoc(doc *ports.Document) *user.User {
	m := doc.Data
	return &user.User{
		ID:            doc.ID,
		Username:      docString(m, "username"),
		DisplayName:   docString(m, "display_name"),
		Bio:           docString(m, "bio"),
		ProfileImage:  docString(m, "profile_image"),
		Skills:        docStrings(m, "skills"),
		Location:      docString(m, "location"),
		DeviceToken:   docString(m, "device_token"),
		Followers:     docStrings(m, "followers"),
		Following:     docStrings(m, "following"),
		AverageRating: docFloat(m, "average_rating"),
		ReviewCount:   docInt(m, "review_count"),
		IsActive:      docBool(m, "is_active"),
		CreatedAt:     decodeTime(m["created_at"]),
		UpdatedAt:     decodeTime(m["updated_at"]),
	}
}

// Create writes a new user document.
func (r *UserRepository) Create(ctx context.Context, u *user.User) (string, error) {
	id, err := r.store.Create(ctx, colUsers, userToDoc(u))
	if err != nil {
		return "", apperrors.Backend("create user", err)
	}
	u.ID = id
	cacheRemove(r.cache, ctx, cachekey.UsersPage1())
	r.logger.WithField("user_id", id).Info("user created")
	return id, nil
}

// GetByID returns the user or (nil, nil) when the id does not resolve.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	key := cachekey.User(id)
	if v, ok := cacheFresh[user.User](r.cache, ctx, key, r.maxAge); ok {
		return v, nil
	}
	doc, err := r.store.Get(ctx, colUsers, id)
	if err != nil {
		// Serve a stale copy rather than failing a pure read.
		if v, ok := cacheGet[user.User](r.cache, ctx, key); ok {
			return v, nil
		}
		return nil, apperrors.Backend("get user", err)
	}
	if doc == nil {
		return nil, nil
	}
	u := userFromDoc(doc)
	cacheStoreSilently(r.cache, ctx, key, u)
	return u, nil
}

// Update replaces the user document.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()
	if err := r.store.Set(ctx, colUsers, u.ID, userToDoc(u)); err != nil {
		return apperrors.Backend("update user", err)
	}
	cacheRemove(r.cache, ctx, cachekey.User(u.ID), cachekey.UsersPage1())
	return nil
}

// List returns one page of users. Only the first page is served through
// the cache; cursored pages always hit the store.
func (r *UserRepository) List(ctx context.Context, limit int, cursor string) ([]*user.User, string, error) {
	q := ports.Query{
		Collection: colUsers,
		Filters:    []ports.Filter{{Field: "is_active", Op: ports.OpEqual, Value: true}},
		OrderBy:    "created_at",
		Descending: true,
		Limit:      limit,
		StartAfter: cursor,
	}
	if cursor == "" {
		users, err := loadListSingleflight(r.cache, ctx, cachekey.UsersPage1(), r.maxAge, func() ([]*user.User, error) {
			docs, err := r.store.Query(ctx, q)
			if err != nil {
				return nil, apperrors.Backend("list users", err)
			}
			return mapDocs(docs, userFromDoc), nil
		})
		if err != nil {
			return nil, "", err
		}
		return users, nextCursor(users, limit, func(u *user.User) string { return u.ID }), nil
	}
	docs, err := r.store.Query(ctx, q)
	if err != nil {
		return nil, "", apperrors.Backend("list users", err)
	}
	users := mapDocs(docs, userFromDoc)
	return users, nextCursor(users, limit, func(u *user.User) string { return u.ID }), nil
}

// Search over-fetches recent users and filters by case-insensitive
// substring on username and display name.
func (r *UserRepository) Search(ctx context.Context, query string, limit int) ([]*user.User, error) {
	docs, err := r.store.Query(ctx, ports.Query{
		Collection: colUsers,
		Filters:    []ports.Filter{{Field: "is_active", Op: ports.OpEqual, Value: true}},
		OrderBy:    "created_at",
		Descending: true,
		Limit:      searchFetchLimit,
	})
	if err != nil {
		return nil, apperrors.Backend("search users", err)
	}
	out := make([]*user.User, 0, limit)
	for _, doc := range docs {
		u := userFromDoc(&doc)
		if matchesQuery(query, u.Username, u.DisplayName) {
			out = append(out, u)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// UpdateRatingStats writes the recomputed review aggregate onto the user
// document.
func (r *UserRepository) UpdateRatingStats(ctx context.Context, userID string, stats user.RatingStats) error {
	err := r.store.Update(ctx, colUsers, userID, map[string]any{
		"average_rating": stats.AverageRating,
		"review_count":   stats.ReviewCount,
		"updated_at":     encodeTime(time.Now()),
	})
	if err != nil {
		return apperrors.Backend("update rating stats", err)
	}
	cacheRemove(r.cache, ctx, cachekey.User(userID), cachekey.UsersPage1())
	return nil
}

// Follow adds the edge to both user documents in one atomic batch.
func (r *UserRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	err := r.store.RunBatch(ctx, []ports.BatchOp{
		{Kind: ports.BatchArrayUnion, Collection: colUsers, ID: followerID, Fields: map[string]any{"following": []string{followeeID}}},
		{Kind: ports.BatchArrayUnion, Collection: colUsers, ID: followeeID, Fields: map[string]any{"followers": []string{followerID}}},
	})
	if err != nil {
		return apperrors.Backend("follow", err)
	}
	cacheRemove(r.cache, ctx,
		cachekey.User(followerID),
		cachekey.User(followeeID),
		cachekey.UsersPage1(),
	)
	return nil
}

// Unfollow removes the edge from both user documents in one atomic batch.
func (r *UserRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	err := r.store.RunBatch(ctx, []ports.BatchOp{
		{Kind: ports.BatchArrayRemove, Collection: colUsers, ID: followerID, Fields: map[string]any{"following": []string{followeeID}}},
		{Kind: ports.BatchArrayRemove, Collection: colUsers, ID: followeeID, Fields: map[string]any{"followers": []string{followerID}}},
	})
	if err != nil {
		return apperrors.Backend("unfollow", err)
	}
	cacheRemove(r.cache, ctx,
		cachekey.User(followerID),
		cachekey.User(followeeID),
		cachekey.UsersPage1(),
	)
	return nil
}

// SetProfileImage writes the new image URL onto the user document. The URL
// is denormalized into an unenumerable set of documents and cached lists,
// so the whole cache is flushed instead of chasing individual keys.
func (r *UserRepository) SetProfileImage(ctx context.Context, userID, url string) error {
	err := r.store.Update(ctx, colUsers, userID, map[string]any{
		"profile_image": url,
		"updated_at":    encodeTime(time.Now()),
	})
	if err != nil {
		return apperrors.Backend("set profile image", err)
	}
	if r.cache != nil {
		if err := r.cache.ClearAll(ctx); err != nil {
			r.logger.WithError(err).Warn("cache flush after profile image change failed")
		}
	}
	return nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
