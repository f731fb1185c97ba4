// internal/service/user.go
package service

import (
	"context"
	"strings"

	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/dangerclosesec/apmap/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const activityFeedLimit = 10

type UserService struct {
	users     repository.UserRepositoryIface
	favorites repository.FavoriteRepositoryIface
	validate  *validator.Validate
}

func NewUserService(users repository.UserRepositoryIface, favorites repository.FavoriteRepositoryIface) *UserService {
	return &UserService{
		users:     users,
		favorites: favorites,
		validate:  newValidator(),
	}
}

func (s *UserService) Favorites(ctx context.Context, userID uuid.UUID) ([]model.FavoriteAccessPoint, error) {
	return s.favorites.List(ctx, userID)
}

func (s *UserService) AddFavorite(ctx context.Context, userID, accessPointID uuid.UUID) error {
	return s.favorites.Add(ctx, &model.UserFavorite{
		UserID:        userID,
		AccessPointID: accessPointID,
	})
}

func (s *UserService) RemoveFavorite(ctx context.Context, userID, accessPointID uuid.UUID) error {
	return s.favorites.Remove(ctx, userID, accessPointID)
}

// Activity returns the user's latest contributions, newest first
func (s *UserService) Activity(ctx context.Context, userID uuid.UUID) ([]model.Activity, error) {
	return s.users.Activity(ctx, userID, activityFeedLimit)
}

type Profile struct {
	*model.User
	Stats *model.UserStats `json:"stats"`
}

func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.users.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Stats: stats}, nil
}

type UpdateProfileInput struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*model.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	return s.users.UpdateUsername(ctx, userID, input.Username)
}
