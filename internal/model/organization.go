package model

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// OrganizationSummary is an organization with its membership and access
// point counts.
type OrganizationSummary struct {
	Organization
	MemberCount      int64 `json:"member_count"`
	AccessPointCount int64 `json:"access_point_count"`
}
