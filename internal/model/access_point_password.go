package model

import (
	"time"

	"github.com/google/uuid"
)

// AccessPointPassword is one credential for an access point. OrganizationID
// nil means the password is public.
type AccessPointPassword struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AccessPointID  uuid.UUID  `gorm:"type:uuid;not null" json:"access_point_id"`
	Password       string     `gorm:"type:text;not null" json:"password"`
	AddedBy        *uuid.UUID `gorm:"type:uuid" json:"added_by"`
	OrganizationID *uuid.UUID `gorm:"type:uuid" json:"organization_id"`
	IsCurrent      bool       `gorm:"not null" json:"is_current"`
	CreatedAt      time.Time  `json:"created_at"`
}
