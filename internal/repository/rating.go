// internal/repository/rating.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepositoryIface interface {
	Upsert(ctx context.Context, rating *model.Rating) error
	FindRecentByAccessPoint(ctx context.Context, accessPointID uuid.UUID, limit int) ([]model.Rating, error)
}

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert stores the user's rating of an access point, replacing any earlier
// one, in a single statement. The stored row is scanned back into rating.
func (r *RatingRepository) Upsert(ctx context.Context, rating *model.Rating) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "access_point_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"overall_rating", "speed_rating", "reliability_rating", "comment", "updated_at",
			}),
		}, returningAll).
		Create(rating).Error
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrAccessPointNotFound
		case isCheckViolation(err):
			return domain.New(domain.ErrValidation, "Ratings must be between 1 and 5")
		}
		return fmt.Errorf("failed to upsert rating: %w", err)
	}
	return nil
}

func (r *RatingRepository) FindRecentByAccessPoint(ctx context.Context, accessPointID uuid.UUID, limit int) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.db.WithContext(ctx).
		Select("ratings.*, users.username").
		Joins("LEFT JOIN users ON users.id = ratings.user_id").
		Where("ratings.access_point_id = ?", accessPointID).
		Order("ratings.created_at DESC").
		Limit(limit).
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find ratings: %w", err)
	}
	return ratings, nil
}
