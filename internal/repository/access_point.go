// internal/repository/access_point.go
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

// NearbyQuery selects access points within RadiusMeters of a point.
type NearbyQuery struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	Limit        int
}

type AccessPointRepositoryIface interface {
	CreateWithPassword(ctx context.Context, ap *model.AccessPoint, password *model.AccessPointPassword) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AccessPoint, error)
	FindNearby(ctx context.Context, q NearbyQuery) ([]model.NearbyAccessPoint, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.AccessPoint, error)
	UpsertObserved(ctx context.Context, aps []model.AccessPoint) ([]model.AccessPoint, error)
}

type AccessPointRepository struct {
	db *gorm.DB
}

func NewAccessPointRepository(db *gorm.DB) *AccessPointRepository {
	return &AccessPointRepository{db: db}
}

// CreateWithPassword inserts the access point and, when password is not nil,
// its first current password in the same transaction.
func (r *AccessPointRepository) CreateWithPassword(ctx context.Context, ap *model.AccessPoint, password *model.AccessPointPassword) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ap).Error; err != nil {
			return err
		}

		if password == nil {
			return nil
		}

		password.AccessPointID = ap.ID
		password.IsCurrent = true
		return tx.Create(password).Error
	})

	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.New(domain.ErrConflict, "Access point already exists")
		case isCheckViolation(err):
			return domain.New(domain.ErrValidation, "Invalid coordinates")
		}
		return fmt.Errorf("failed to create access point: %w", err)
	}

	return nil
}

func (r *AccessPointRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AccessPoint, error) {
	var ap model.AccessPoint
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccessPointNotFound
		}
		return nil, fmt.Errorf("finding access point: %w", err)
	}
	return &ap, nil
}

// FindNearby runs the proximity search as a single statement over the
// geography column, so the distance filter and ordering use the GiST index.
// has_password counts a current password of any scope; its contents are
// never selected here.
func (r *AccessPointRepository) FindNearby(ctx context.Context, q NearbyQuery) ([]model.NearbyAccessPoint, error) {
	var results []model.NearbyAccessPoint
	err := r.db.WithContext(ctx).Raw(`
		WITH origin AS (
			SELECT ST_SetSRID(ST_MakePoint(@lon, @lat), 4326)::geography AS point
		)
		SELECT
			ap.id, ap.ssid, ap.bssid, ap.security_type, ap.is_open, ap.requires_login,
			ap.latitude, ap.longitude, ap.address, ap.venue_name, ap.venue_type,
			ap.created_by, ap.organization_id, ap.last_seen, ap.is_verified,
			ap.external_meta, ap.created_at, ap.updated_at,
			ST_Distance(ap.location, origin.point) AS distance_meters,
			AVG(r.overall_rating)::float8 AS avg_rating,
			COUNT(r.id) AS rating_count,
			EXISTS (
				SELECT 1 FROM access_point_passwords p
				WHERE p.access_point_id = ap.id AND p.is_current
			) AS has_password
		FROM access_points ap
		CROSS JOIN origin
		LEFT JOIN ratings r ON r.access_point_id = ap.id
		WHERE ST_DWithin(ap.location, origin.point, @radius)
		GROUP BY ap.id, origin.point
		ORDER BY distance_meters ASC, ap.id ASC
		LIMIT @limit
	`, map[string]interface{}{
		"lat":    q.Latitude,
		"lon":    q.Longitude,
		"radius": q.RadiusMeters,
		"limit":  q.Limit,
	}).Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby access points: %w", err)
	}
	return results, nil
}

func (r *AccessPointRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.AccessPoint, error) {
	var aps []model.AccessPoint
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&aps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list organization access points: %w", err)
	}
	return aps, nil
}

// UpsertObserved inserts externally observed access points. A row that
// already exists for the same (ssid, bssid, latitude, longitude) only has
// last_seen and updated_at refreshed. The stored rows are returned.
func (r *AccessPointRepository) UpsertObserved(ctx context.Context, aps []model.AccessPoint) ([]model.AccessPoint, error) {
	if len(aps) == 0 {
		return nil, nil
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "ssid"}, {Name: "bssid"}, {Name: "latitude"}, {Name: "longitude"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"last_seen", "updated_at"}),
		}, returningAll).
		Create(&aps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert observed access points: %w", err)
	}
	return aps, nil
}
