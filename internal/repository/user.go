// internal/repository/user.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepositoryIface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) (*model.User, error)
	SetOrganization(ctx context.Context, id uuid.UUID, orgID *uuid.UUID) error
	Stats(ctx context.Context, id uuid.UUID) (*model.UserStats, error)
	Activity(ctx context.Context, id uuid.UUID, limit int) ([]model.Activity, error)
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", result.Error)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check existing user: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) UpdateUsername(ctx context.Context, id uuid.UUID, username string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Model(&user).
		Clauses(returningAll).
		Where("id = ?", id).
		Update("username", username)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update username: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepository) SetOrganization(ctx context.Context, id uuid.UUID, orgID *uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("organization_id", orgID)
	if result.Error != nil {
		return fmt.Errorf("failed to set user organization: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Stats(ctx context.Context, id uuid.UUID) (*model.UserStats, error) {
	var stats model.UserStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM access_points WHERE created_by = @user) AS access_points_added,
			(SELECT COUNT(*) FROM ratings WHERE user_id = @user) AS ratings_given,
			(SELECT COUNT(*) FROM speed_tests WHERE user_id = @user) AS speed_tests_run,
			(SELECT COUNT(*) FROM user_favorites WHERE user_id = @user) AS favorites
	`, map[string]interface{}{"user": id}).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user stats: %w", err)
	}
	return &stats, nil
}

// Activity merges the user's most recent access points, ratings and speed
// tests, newest first.
func (r *UserRepository) Activity(ctx context.Context, id uuid.UUID, limit int) ([]model.Activity, error) {
	var activity []model.Activity
	err := r.db.WithContext(ctx).Raw(`
		(SELECT 'access_point_added' AS type, ap.id AS access_point_id, ap.ssid, NULL::float8 AS detail, ap.created_at
			FROM access_points ap
			WHERE ap.created_by = @user
			ORDER BY ap.created_at DESC LIMIT @per_kind)
		UNION ALL
		(SELECT 'rating', r.access_point_id, ap.ssid, r.overall_rating::float8, r.updated_at
			FROM ratings r JOIN access_points ap ON ap.id = r.access_point_id
			WHERE r.user_id = @user
			ORDER BY r.updated_at DESC LIMIT @per_kind)
		UNION ALL
		(SELECT 'speed_test', st.access_point_id, ap.ssid, st.download_speed, st.tested_at
			FROM speed_tests st JOIN access_points ap ON ap.id = st.access_point_id
			WHERE st.user_id = @user
			ORDER BY st.tested_at DESC LIMIT @per_kind)
		ORDER BY created_at DESC
		LIMIT @limit
	`, map[string]interface{}{"user": id, "per_kind": activityPerKind, "limit": limit}).Scan(&activity).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user activity: %w", err)
	}
	return activity, nil
}

const activityPerKind = 5
