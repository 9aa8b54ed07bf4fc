package leave

import (
	"time"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/user"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Leave is one request in the state machine. Cancellation removes the row, so
// no cancelled status exists here.
type Leave struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_leaves_user"`
	ApproverID      *uuid.UUID `gorm:"type:uuid;index:idx_leaves_approver"`
	LeaveType       string     `gorm:"type:varchar(50);not null"`
	FromDate        time.Time  `gorm:"type:date;not null"`
	ToDate          time.Time  `gorm:"type:date;not null"`
	WorkingDays     int        `gorm:"not null"`
	Reason          string     `gorm:"type:text;not null"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_leaves_status"`
	ApproverComment *string    `gorm:"type:varchar(500)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	User     *user.User `gorm:"foreignKey:UserID"`
	Approver *user.User `gorm:"foreignKey:ApproverID"`
}

func (Leave) TableName() string {
	return "leaves"
}

func ValidDecision(status string) bool {
	return status == StatusApproved || status == StatusRejected
}
