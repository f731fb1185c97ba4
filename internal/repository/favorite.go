// internal/repository/favorite.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FavoriteRepositoryIface interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.FavoriteAccessPoint, error)
	Add(ctx context.Context, favorite *model.UserFavorite) error
	Remove(ctx context.Context, userID, accessPointID uuid.UUID) error
}

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// List returns the user's favorite access points, most recently favorited
// first.
func (r *FavoriteRepository) List(ctx context.Context, userID uuid.UUID) ([]model.FavoriteAccessPoint, error) {
	var favorites []model.FavoriteAccessPoint
	err := r.db.WithContext(ctx).
		Table("user_favorites uf").
		Select("ap.*, uf.created_at AS favorited_at").
		Joins("JOIN access_points ap ON ap.id = uf.access_point_id").
		Where("uf.user_id = ?", userID).
		Order("uf.created_at DESC").
		Scan(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

func (r *FavoriteRepository) Add(ctx context.Context, favorite *model.UserFavorite) error {
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrAlreadyFavorite
		case isForeignKeyViolation(err):
			return domain.ErrAccessPointNotFound
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, accessPointID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND access_point_id = ?", userID, accessPointID).
		Delete(&model.UserFavorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}
