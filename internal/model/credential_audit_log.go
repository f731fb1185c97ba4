package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CredentialAuditLog records an access point password being revealed or
// changed.
type CredentialAuditLog struct {
	ID             uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccessPointID  uuid.UUID         `json:"access_point_id" gorm:"type:uuid;not null"`
	ActorID        *uuid.UUID        `json:"actor_id" gorm:"type:uuid"`
	OrganizationID *uuid.UUID        `json:"organization_id" gorm:"type:uuid"`
	Action         string            `json:"action"`
	RequestID      string            `json:"request_id"`
	ClientIP       string            `json:"client_ip"`
	UserAgent      string            `json:"user_agent"`
	Context        datatypes.JSONMap `json:"context" gorm:"type:jsonb"`
	CreatedAt      time.Time         `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for CredentialAuditLog
func (CredentialAuditLog) TableName() string {
	return "credential_audit_logs"
}

// Constants for CredentialAuditLog actions
const (
	ActionPasswordViewed  = "password_viewed"
	ActionPasswordQRCode  = "password_qr_code"
	ActionPasswordRotated = "password_rotated"
)
