package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CredentialAuditLogRepositoryIface interface {
	Create(ctx context.Context, log *model.CredentialAuditLog) error
	Query(ctx context.Context, params QueryParams) ([]model.CredentialAuditLog, int64, error)
}

// CredentialAuditLogRepository handles database operations for credential audit logs
type CredentialAuditLogRepository struct {
	db *gorm.DB
}

// NewCredentialAuditLogRepository creates a new CredentialAuditLogRepository
func NewCredentialAuditLogRepository(db *gorm.DB) *CredentialAuditLogRepository {
	return &CredentialAuditLogRepository{
		db: db,
	}
}

// Create inserts a new audit log entry
func (r *CredentialAuditLogRepository) Create(ctx context.Context, log *model.CredentialAuditLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	result := r.db.WithContext(ctx).Create(log)
	if result.Error != nil {
		return fmt.Errorf("failed to create credential audit log: %w", result.Error)
	}

	return nil
}

// QueryParams holds parameters for querying audit logs
type QueryParams struct {
	OrganizationID uuid.UUID
	AccessPointID  *uuid.UUID
	Action         string
	StartTime      time.Time
	EndTime        time.Time
	Limit          int
	Offset         int
}

// Query retrieves one organization's audit logs, newest first
func (r *CredentialAuditLogRepository) Query(ctx context.Context, params QueryParams) ([]model.CredentialAuditLog, int64, error) {
	var logs []model.CredentialAuditLog
	var count int64

	query := r.db.WithContext(ctx).Model(&model.CredentialAuditLog{}).
		Where("organization_id = ?", params.OrganizationID)

	// Apply filters
	if params.AccessPointID != nil {
		query = query.Where("access_point_id = ?", *params.AccessPointID)
	}
	if params.Action != "" {
		query = query.Where("action = ?", params.Action)
	}
	if !params.StartTime.IsZero() {
		query = query.Where("created_at >= ?", params.StartTime)
	}
	if !params.EndTime.IsZero() {
		query = query.Where("created_at <= ?", params.EndTime)
	}

	// Get total count for pagination
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count credential audit logs: %w", err)
	}

	// Apply pagination
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	} else {
		query = query.Limit(100) // Default limit
	}

	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	result := query.Order("created_at DESC").Find(&logs)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to query credential audit logs: %w", result.Error)
	}

	return logs, count, nil
}
