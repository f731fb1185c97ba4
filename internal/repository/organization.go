// internal/repository/organization.go
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

type OrganizationRepositoryIface interface {
	CreateWithFounder(ctx context.Context, org *model.Organization, founderID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	FindBySlug(ctx context.Context, slug string) (*model.Organization, error)
	Summary(ctx context.Context, id uuid.UUID) (*model.OrganizationSummary, error)
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// CreateWithFounder inserts the organization and moves its founder into it
// in one transaction.
func (r *OrganizationRepository) CreateWithFounder(ctx context.Context, org *model.Organization, founderID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org.CreatedBy = &founderID
		if err := tx.Create(org).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrSlugTaken
			}
			return fmt.Errorf("creating organization: %w", err)
		}

		result := tx.Model(&model.User{}).
			Where("id = ?", founderID).
			Update("organization_id", org.ID)
		if result.Error != nil {
			return fmt.Errorf("attaching founder: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrSlugTaken) || errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization: %w", err)
	}
	return &org, nil
}

func (r *OrganizationRepository) FindBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).First(&org, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization: %w", err)
	}
	return &org, nil
}

func (r *OrganizationRepository) Summary(ctx context.Context, id uuid.UUID) (*model.OrganizationSummary, error) {
	var summary model.OrganizationSummary
	result := r.db.WithContext(ctx).Raw(`
		SELECT o.*,
			(SELECT COUNT(*) FROM users u WHERE u.organization_id = o.id) AS member_count,
			(SELECT COUNT(*) FROM access_points ap WHERE ap.organization_id = o.id) AS access_point_count
		FROM organizations o
		WHERE o.id = ?
	`, id).Scan(&summary)
	if result.Error != nil {
		return nil, fmt.Errorf("summarizing organization: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrOrganizationNotFound
	}
	return &summary, nil
}
