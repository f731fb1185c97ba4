// internal/repository/password.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PasswordRepositoryIface interface {
	FindCurrent(ctx context.Context, accessPointID uuid.UUID, scope *uuid.UUID) (*model.AccessPointPassword, error)
	FindCurrentPublic(ctx context.Context, accessPointID uuid.UUID) (*model.AccessPointPassword, error)
	Rotate(ctx context.Context, password *model.AccessPointPassword) error
}

type PasswordRepository struct {
	db *gorm.DB
}

func NewPasswordRepository(db *gorm.DB) *PasswordRepository {
	return &PasswordRepository{db: db}
}

// FindCurrent returns the current password when it is visible from scope.
func (r *PasswordRepository) FindCurrent(ctx context.Context, accessPointID uuid.UUID, scope *uuid.UUID) (*model.AccessPointPassword, error) {
	var pw model.AccessPointPassword
	q := r.db.WithContext(ctx).
		Where("access_point_id = ? AND is_current", accessPointID)
	q = whereVisible(q, "organization_id", scope)

	err := q.Order("organization_id IS NULL").
		Order("created_at DESC").
		First(&pw).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoPassword
		}
		return nil, fmt.Errorf("finding current password: %w", err)
	}
	return &pw, nil
}

// FindCurrentPublic returns the current password shared with everyone.
func (r *PasswordRepository) FindCurrentPublic(ctx context.Context, accessPointID uuid.UUID) (*model.AccessPointPassword, error) {
	return r.FindCurrent(ctx, accessPointID, nil)
}

// Rotate makes password the only current password of its access point;
// every earlier password, whatever its scope, is kept as history. The
// access point row is locked for the duration of the transaction, so
// concurrent rotations of the same access point are serialized and exactly
// one row stays current.
func (r *PasswordRepository) Rotate(ctx context.Context, password *model.AccessPointPassword) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ap model.AccessPoint
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&ap, "id = ?", password.AccessPointID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAccessPointNotFound
			}
			return fmt.Errorf("locking access point: %w", err)
		}

		err = tx.Model(&model.AccessPointPassword{}).
			Where("access_point_id = ? AND is_current", password.AccessPointID).
			Update("is_current", false).Error
		if err != nil {
			return fmt.Errorf("retiring current password: %w", err)
		}

		password.IsCurrent = true
		if err := tx.Create(password).Error; err != nil {
			return fmt.Errorf("inserting password: %w", err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrAccessPointNotFound) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}
