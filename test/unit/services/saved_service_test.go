package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	impl "github.com/craftyard/marketplace-backend/internal/application/services"
	"github.com/craftyard/marketplace-backend/internal/core/domain/apperrors"
	"github.com/craftyard/marketplace-backend/internal/core/domain/saved"
	tmocks "github.com/craftyard/marketplace-backend/test/mocks"
)

func TestToggleSave_SavesThenUnsaves(t *testing.T) {
	var stored *saved.Item
	repo := &tmocks.SavedRepositoryMock{
		FindFn: func(ctx context.Context, userID string, itemType saved.ItemType, itemID string) (*saved.Item, error) {
			if stored != nil && stored.ItemID == itemID {
				return stored, nil
			}
			return nil, nil
		},
		CreateFn: func(ctx context.Context, item *saved.Item) (string, error) {
			item.ID = "sv1"
			stored = item
			return item.ID, nil
		},
		DeleteFn: func(ctx context.Context, item *saved.Item) error {
			require.Equal(t, "sv1", item.ID)
			stored = nil
			return nil
		},
	}
	svc := impl.NewSavedService(repo, logrus.New())

	nowSaved, err := svc.ToggleSave(callerCtx("alice"), saved.TypePost, "p1")
	require.NoError(t, err)
	require.True(t, nowSaved)
	require.NotNil(t, stored)
	require.Equal(t, "alice", stored.UserID)
	require.WithinDuration(t, time.Now(), stored.SavedAt, time.Minute)

	nowSaved, err = svc.ToggleSave(callerCtx("alice"), saved.TypePost, "p1")
	require.NoError(t, err)
	require.False(t, nowSaved)
	require.Nil(t, stored)
}

func TestToggleSave_UnknownTypeRejected(t *testing.T) {
	svc := impl.NewSavedService(&tmocks.SavedRepositoryMock{}, logrus.New())
	_, err := svc.ToggleSave(callerCtx("alice"), saved.ItemType("playlist"), "p1")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListSaved_RequiresIdentity(t *testing.T) {
	svc := impl.NewSavedService(&tmocks.SavedRepositoryMock{}, logrus.New())
	_, err := svc.ListSaved(context.Background(), saved.TypeReel)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
