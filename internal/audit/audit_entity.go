package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Action verbs recorded in the trail.
const (
	ActionLeaveApplied    = "leave_applied"
	ActionLeaveApproved   = "leave_approved"
	ActionLeaveRejected   = "leave_rejected"
	ActionLeaveCancelled  = "leave_cancelled"
	ActionUserCreated     = "user_created"
	ActionUserUpdated     = "user_updated"
	ActionUserDeleted     = "user_deleted"
	ActionRoleChanged     = "role_changed"
	ActionManagerAssigned = "manager_assigned"
	ActionConfigCreated   = "config_created"
	ActionConfigUpdated   = "config_updated"
	ActionUserLogin       = "user_login"
	ActionUserLogout      = "user_logout"
)

// Resource types recorded in the trail.
const (
	ResourceLeave  = "leave"
	ResourceUser   = "user"
	ResourceConfig = "system_config"
)

type AuditLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorID    *uuid.UUID     `gorm:"type:uuid;index:idx_audit_logs_actor"`
	Resource   string         `gorm:"type:varchar(50);not null;index:idx_audit_logs_resource"`
	ResourceID string         `gorm:"type:varchar(255);not null;index:idx_audit_logs_resource"`
	Action     string         `gorm:"type:varchar(100);not null;index:idx_audit_logs_action"`
	Detail     datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
