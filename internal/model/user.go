package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username       string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash   string     `gorm:"type:text;not null" json:"-"`
	OrganizationID *uuid.UUID `gorm:"type:uuid" json:"organization_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// UserStats are the per-user activity counters shown on the profile.
type UserStats struct {
	AccessPointsAdded int64 `json:"access_points_added"`
	RatingsGiven      int64 `json:"ratings_given"`
	SpeedTestsRun     int64 `json:"speed_tests_run"`
	Favorites         int64 `json:"favorites"`
}
