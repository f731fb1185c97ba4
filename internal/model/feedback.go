package model

import (
	"time"

	"github.com/google/uuid"
)

type Rating struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AccessPointID     uuid.UUID `gorm:"type:uuid;not null" json:"access_point_id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	OverallRating     int       `gorm:"not null" json:"overall_rating"`
	SpeedRating       *int      `json:"speed_rating"`
	ReliabilityRating *int      `json:"reliability_rating"`
	Comment           *string   `gorm:"type:text" json:"comment"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Username is filled when ratings are listed with their authors.
	Username string `gorm:"->;-:migration" json:"username,omitempty"`
}

type SpeedTest struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AccessPointID uuid.UUID  `gorm:"type:uuid;not null" json:"access_point_id"`
	UserID        *uuid.UUID `gorm:"type:uuid" json:"user_id"`
	DownloadSpeed float64    `gorm:"not null" json:"download_speed"`
	UploadSpeed   float64    `gorm:"not null" json:"upload_speed"`
	Ping          float64    `gorm:"not null" json:"ping"`
	TestServer    *string    `gorm:"type:varchar(255)" json:"test_server"`
	TestedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"tested_at"`
}

// SpeedTestStatistics summarizes every speed test of one access point.
type SpeedTestStatistics struct {
	AvgDownload *float64 `gorm:"column:avg_download" json:"avg_download"`
	AvgUpload   *float64 `gorm:"column:avg_upload" json:"avg_upload"`
	AvgPing     *float64 `gorm:"column:avg_ping" json:"avg_ping"`
	TotalTests  int64    `gorm:"column:total_tests" json:"total_tests"`
}

type ServiceBlock struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AccessPointID uuid.UUID  `gorm:"type:uuid;not null" json:"access_point_id"`
	ServiceName   string     `gorm:"type:varchar(100);not null" json:"service_name"`
	IsBlocked     bool       `gorm:"not null" json:"is_blocked"`
	ReportedBy    *uuid.UUID `gorm:"type:uuid" json:"reported_by"`
	VerifiedCount int        `gorm:"not null;default:1" json:"verified_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type UserFavorite struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	AccessPointID uuid.UUID `gorm:"type:uuid;not null" json:"access_point_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// FavoriteAccessPoint is a favorited access point with the time it was
// favorited.
type FavoriteAccessPoint struct {
	AccessPoint
	FavoritedAt time.Time `gorm:"column:favorited_at" json:"favorited_at"`
}

// ActivityType identifies the kind of entry in a user's activity feed.
type ActivityType string

const (
	ActivityAccessPointAdded ActivityType = "access_point_added"
	ActivityRating           ActivityType = "rating"
	ActivitySpeedTest        ActivityType = "speed_test"
)

// Activity is one entry of a user's activity feed.
type Activity struct {
	Type          ActivityType `gorm:"column:type" json:"type"`
	AccessPointID uuid.UUID    `gorm:"column:access_point_id" json:"access_point_id"`
	SSID          string       `gorm:"column:ssid" json:"ssid"`
	Detail        *float64     `gorm:"column:detail" json:"detail,omitempty"`
	CreatedAt     time.Time    `gorm:"column:created_at" json:"created_at"`
}
