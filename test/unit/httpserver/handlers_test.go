package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/craftyard/marketplace-backend/internal/application/services"
	"github.com/craftyard/marketplace-backend/internal/core/domain/saved"
	"github.com/craftyard/marketplace-backend/internal/core/domain/user"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/httpserver"
	"github.com/craftyard/marketplace-backend/test/mocks"
)

// newTestServer wires real services over repository mocks so handler tests
// exercise the full request path: routing, JWT auth and error mapping.
func newTestServer(t *testing.T, users *mocks.UserRepositoryMock, savedRepo *mocks.SavedRepositoryMock) *httptest.Server {
	t.Helper()
	logger := logrus.New()
	validate := validator.New()
	posts := &mocks.PostRepositoryMock{}
	reels := &mocks.ReelRepositoryMock{}
	reviews := &mocks.ReviewRepositoryMock{}
	messages := &mocks.MessageRepositoryMock{}
	notifications := services.NewNotificationService(&mocks.NotificationRepositoryMock{}, users, &mocks.PushSenderMock{}, logger)

	deps := httpserver.ServerDeps{
		UserService:         services.NewUserService(users, posts, reels, reviews, messages, &mocks.BlobStorageMock{}, notifications, logger),
		PostService:         services.NewPostService(posts, users, validate, logger),
		ReelService:         services.NewReelService(reels, users, notifications, validate, logger),
		ReviewService:       services.NewReviewService(reviews, users, notifications, validate, logger),
		MessageService:      services.NewMessageService(messages, users, notifications, validate, logger),
		NotificationService: notifications,
		StatusService:       services.NewStatusService(&mocks.StatusRepositoryMock{}, users, validate, logger),
		PortfolioService:    services.NewPortfolioService(&mocks.PortfolioRepositoryMock{}, users, validate, logger),
		SavedService:        services.NewSavedService(savedRepo, logger),
		HealthCheckers:      nil,
	}
	cfg := &httpserver.ServerConfig{Host: "127.0.0.1", Port: "0", ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second}
	srv := httpserver.NewServer(cfg, testSecret, logger, deps)
	ts := httptest.NewServer(srv.Echo())
	t.Cleanup(ts.Close)
	return ts
}

func activeUsers(ids ...string) *mocks.UserRepositoryMock {
	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return &mocks.UserRepositoryMock{GetByIDFn: func(ctx context.Context, id string) (*user.User, error) {
		if !set[id] {
			return nil, nil
		}
		return &user.User{ID: id, Username: id, DisplayName: "u-" + id, IsActive: true}, nil
	}}
}

func authedRequest(t *testing.T, method, url, subject string, body []byte) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, subject))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestProtectedRoutesRejectAnonymousRequests(t *testing.T) {
	ts := newTestServer(t, activeUsers("alice"), &mocks.SavedRepositoryMock{})
	resp, err := http.Get(ts.URL + "/api/v1/users/alice")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetProfile_UnknownUserIs404(t *testing.T) {
	ts := newTestServer(t, activeUsers("alice"), &mocks.SavedRepositoryMock{})
	req := authedRequest(t, http.MethodGet, ts.URL+"/api/v1/users/ghost", "alice", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetProfile_ReturnsUserJSON(t *testing.T) {
	ts := newTestServer(t, activeUsers("alice", "bob"), &mocks.SavedRepositoryMock{})
	req := authedRequest(t, http.MethodGet, ts.URL+"/api/v1/users/bob", "alice", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got user.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "bob", got.ID)
	require.Equal(t, "u-bob", got.DisplayName)
}

func TestFollowSelf_MapsTo403(t *testing.T) {
	ts := newTestServer(t, activeUsers("alice"), &mocks.SavedRepositoryMock{})
	req := authedRequest(t, http.MethodPost, ts.URL+"/api/v1/users/alice/follow", "alice", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestToggleSaved_ReportsNewState(t *testing.T) {
	savedRepo := &mocks.SavedRepositoryMock{
		FindFn: func(ctx context.Context, userID string, itemType saved.ItemType, itemID string) (*saved.Item, error) {
			return nil, nil
		},
	}
	ts := newTestServer(t, activeUsers("alice"), savedRepo)
	req := authedRequest(t, http.MethodPost, ts.URL+"/api/v1/saved/post/p1", "alice", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.True(t, got["saved"])
}

func TestToggleSaved_UnknownTypeIs400(t *testing.T) {
	ts := newTestServer(t, activeUsers("alice"), &mocks.SavedRepositoryMock{})
	req := authedRequest(t, http.MethodPost, ts.URL+"/api/v1/saved/playlist/p1", "alice", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthEndpointIsPublic(t *testing.T) {
	ts := newTestServer(t, activeUsers(), &mocks.SavedRepositoryMock{})
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
