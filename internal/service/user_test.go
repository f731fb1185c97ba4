package service_test

import (
	"context"
	"testing"

	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/mocks"
	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/dangerclosesec/apmap/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()
	userID, apID := uuid.New(), uuid.New()

	setup := func(t *testing.T) (*mocks.MockUserRepositoryIface, *mocks.MockFavoriteRepositoryIface, *service.UserService) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepositoryIface(ctrl)
		favorites := mocks.NewMockFavoriteRepositoryIface(ctrl)
		return users, favorites, service.NewUserService(users, favorites)
	}

	t.Run("add favorite", func(t *testing.T) {
		_, favorites, svc := setup(t)
		favorites.EXPECT().Add(gomock.Any(), &model.UserFavorite{UserID: userID, AccessPointID: apID}).Return(nil)

		require.NoError(t, svc.AddFavorite(ctx, userID, apID))
	})

	t.Run("add duplicate favorite", func(t *testing.T) {
		_, favorites, svc := setup(t)
		favorites.EXPECT().Add(gomock.Any(), gomock.Any()).Return(domain.ErrAlreadyFavorite)

		assert.ErrorIs(t, svc.AddFavorite(ctx, userID, apID), domain.ErrConflict)
	})

	t.Run("remove missing favorite", func(t *testing.T) {
		_, favorites, svc := setup(t)
		favorites.EXPECT().Remove(gomock.Any(), userID, apID).Return(domain.ErrFavoriteNotFound)

		assert.ErrorIs(t, svc.RemoveFavorite(ctx, userID, apID), domain.ErrNotFound)
	})

	t.Run("activity is limited", func(t *testing.T) {
		users, _, svc := setup(t)
		users.EXPECT().Activity(gomock.Any(), userID, 10).Return([]model.Activity{{Type: model.ActivityRating}}, nil)

		activity, err := svc.Activity(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, activity, 1)
	})

	t.Run("profile", func(t *testing.T) {
		users, _, svc := setup(t)
		user := &model.User{ID: userID, Username: "alice"}
		stats := &model.UserStats{}
		users.EXPECT().FindByID(gomock.Any(), userID).Return(user, nil)
		users.EXPECT().Stats(gomock.Any(), userID).Return(stats, nil)

		profile, err := svc.Profile(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "alice", profile.Username)
		assert.Same(t, stats, profile.Stats)
	})

	t.Run("update profile", func(t *testing.T) {
		users, _, svc := setup(t)
		users.EXPECT().UpdateUsername(gomock.Any(), userID, "alice2").Return(&model.User{ID: userID, Username: "alice2"}, nil)

		user, err := svc.UpdateProfile(ctx, userID, service.UpdateProfileInput{Username: " alice2 "})
		require.NoError(t, err)
		assert.Equal(t, "alice2", user.Username)
	})

	t.Run("update profile taken", func(t *testing.T) {
		users, _, svc := setup(t)
		users.EXPECT().UpdateUsername(gomock.Any(), userID, "bob").Return(nil, domain.ErrUsernameTaken)

		_, err := svc.UpdateProfile(ctx, userID, service.UpdateProfileInput{Username: "bob"})
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("update profile too short", func(t *testing.T) {
		_, _, svc := setup(t)

		_, err := svc.UpdateProfile(ctx, userID, service.UpdateProfileInput{Username: "ab"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
