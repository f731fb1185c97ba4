// internal/repository/service_block.go
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

type ServiceBlockRepositoryIface interface {
	Upsert(ctx context.Context, block *model.ServiceBlock) error
	FindByAccessPoint(ctx context.Context, accessPointID uuid.UUID) ([]model.ServiceBlock, error)
}

type ServiceBlockRepository struct {
	db *gorm.DB
}

func NewServiceBlockRepository(db *gorm.DB) *ServiceBlockRepository {
	return &ServiceBlockRepository{db: db}
}

// Upsert records a service block report. A first report of a service starts
// verified_count at 1; every later report overwrites is_blocked and the
// reporter and adds one to verified_count.
func (r *ServiceBlockRepository) Upsert(ctx context.Context, block *model.ServiceBlock) error {
	block.VerifiedCount = 1
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "access_point_id"}, {Name: "service_name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"is_blocked":     gorm.Expr("EXCLUDED.is_blocked"),
				"reported_by":    gorm.Expr("EXCLUDED.reported_by"),
				"verified_count": gorm.Expr("service_blocks.verified_count + 1"),
				"updated_at":     gorm.Expr("EXCLUDED.updated_at"),
			}),
		}, returningAll).
		Create(block).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrAccessPointNotFound
		}
		return fmt.Errorf("failed to upsert service block: %w", err)
	}
	return nil
}

func (r *ServiceBlockRepository) FindByAccessPoint(ctx context.Context, accessPointID uuid.UUID) ([]model.ServiceBlock, error) {
	var blocks []model.ServiceBlock
	err := r.db.WithContext(ctx).
		Where("access_point_id = ?", accessPointID).
		Order("service_name ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find service blocks: %w", err)
	}
	return blocks, nil
}
