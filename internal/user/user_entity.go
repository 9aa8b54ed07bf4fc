package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// User is a single flat entity; the manager hierarchy is a self-reference,
// never a separate type. Reportees are the derived reverse lookup.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string     `gorm:"type:varchar(255);not null"`
	Email     string     `gorm:"type:text;not null;uniqueIndex:uq_users_email"`
	Password  string     `gorm:"type:text;not null" json:"-"`
	Role      string     `gorm:"type:varchar(20);not null;default:'employee';index:idx_users_role"`
	ManagerID *uuid.UUID `gorm:"type:uuid;index:idx_users_manager"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_users_deleted_at"`

	Manager   *User  `gorm:"foreignKey:ManagerID"`
	Reportees []User `gorm:"foreignKey:ManagerID"`
}

func (User) TableName() string {
	return "users"
}

func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}
