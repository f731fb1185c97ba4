package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AccessPoint is a wireless network observed at a location. The location
// geography column is generated by the database from Latitude/Longitude and
// is never written here.
type AccessPoint struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SSID           string            `gorm:"column:ssid;type:varchar(255);not null" json:"ssid"`
	BSSID          *string           `gorm:"column:bssid;type:varchar(17)" json:"bssid"`
	SecurityType   *string           `gorm:"type:varchar(50)" json:"security_type"`
	IsOpen         bool              `gorm:"not null;default:false" json:"is_open"`
	RequiresLogin  bool              `gorm:"not null;default:false" json:"requires_login"`
	Latitude       float64           `gorm:"not null" json:"latitude"`
	Longitude      float64           `gorm:"not null" json:"longitude"`
	Address        *string           `gorm:"type:text" json:"address"`
	VenueName      *string           `gorm:"type:varchar(255)" json:"venue_name"`
	VenueType      *string           `gorm:"type:varchar(100)" json:"venue_type"`
	CreatedBy      *uuid.UUID        `gorm:"type:uuid" json:"created_by"`
	OrganizationID *uuid.UUID        `gorm:"type:uuid" json:"organization_id"`
	LastSeen       *time.Time        `json:"last_seen"`
	IsVerified     bool              `gorm:"not null;default:false" json:"is_verified"`
	ExternalMeta   datatypes.JSONMap `gorm:"type:jsonb" json:"external_meta,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NearbyAccessPoint is an access point annotated by a proximity query.
type NearbyAccessPoint struct {
	AccessPoint
	DistanceMeters float64  `gorm:"column:distance_meters" json:"distance"`
	AvgRating      *float64 `gorm:"column:avg_rating" json:"avg_rating"`
	RatingCount    int64    `gorm:"column:rating_count" json:"rating_count"`
	HasPassword    bool     `gorm:"column:has_password" json:"has_password"`
}

// AccessPointDetail is an access point with its recent feedback and, when
// visible to the requester, its current password.
type AccessPointDetail struct {
	AccessPoint
	Ratings       []Rating       `json:"ratings"`
	SpeedTests    []SpeedTest    `json:"speed_tests"`
	ServiceBlocks []ServiceBlock `json:"service_blocks"`
	Password      *string        `json:"password"`
}
