// internal/repository/speedtest.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/apmap/internal/domain"
	"github.com/dangerclosesec/apmap/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpeedTestRepositoryIface interface {
	Create(ctx context.Context, test *model.SpeedTest) error
	FindRecentByAccessPoint(ctx context.Context, accessPointID uuid.UUID, limit int) ([]model.SpeedTest, error)
	Statistics(ctx context.Context, accessPointID uuid.UUID) (*model.SpeedTestStatistics, error)
}

type SpeedTestRepository struct {
	db *gorm.DB
}

func NewSpeedTestRepository(db *gorm.DB) *SpeedTestRepository {
	return &SpeedTestRepository{db: db}
}

func (r *SpeedTestRepository) Create(ctx context.Context, test *model.SpeedTest) error {
	if err := r.db.WithContext(ctx).Create(test).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrAccessPointNotFound
		}
		return fmt.Errorf("failed to create speed test: %w", err)
	}
	return nil
}

func (r *SpeedTestRepository) FindRecentByAccessPoint(ctx context.Context, accessPointID uuid.UUID, limit int) ([]model.SpeedTest, error) {
	var tests []model.SpeedTest
	err := r.db.WithContext(ctx).
		Where("access_point_id = ?", accessPointID).
		Order("tested_at DESC").
		Limit(limit).
		Find(&tests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find speed tests: %w", err)
	}
	return tests, nil
}

// Statistics averages every speed test of the access point. The averages
// are nil when there are no tests.
func (r *SpeedTestRepository) Statistics(ctx context.Context, accessPointID uuid.UUID) (*model.SpeedTestStatistics, error) {
	var stats model.SpeedTestStatistics
	err := r.db.WithContext(ctx).Model(&model.SpeedTest{}).
		Select(`AVG(download_speed) AS avg_download,
			AVG(upload_speed) AS avg_upload,
			AVG(ping) AS avg_ping,
			COUNT(*) AS total_tests`).
		Where("access_point_id = ?", accessPointID).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute speed test statistics: %w", err)
	}
	return &stats, nil
}
