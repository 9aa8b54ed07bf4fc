package user

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindAll(ctx context.Context, search, role string, limit, offset int) ([]User, int64, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	FindManagers(ctx context.Context) ([]User, error)
	FindUnassigned(ctx context.Context) ([]User, error)
	FindAnyAdmin(ctx context.Context, excludeID string) (*User, error)
	DetachReportees(ctx context.Context, managerID string) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to an open transaction so guard checks and
// writes observe the same snapshot.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	txdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: txdb}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindAll(ctx context.Context, search, role string, limit, offset int) ([]User, int64, error) {
	db := r.db.WithContext(ctx).Model(&User{})
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if role != "" {
		db = db.Where("role = ?", role)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := db.Preload("Manager").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Preload("Reportees").
		First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}

func (r *repository) FindManagers(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("role = ?", RoleManager).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) FindUnassigned(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("manager_id IS NULL").
		Where("role = ?", RoleEmployee).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

// FindAnyAdmin picks the oldest admin account, skipping excludeID so a
// requester is never chosen as their own approver.
func (r *repository) FindAnyAdmin(ctx context.Context, excludeID string) (*User, error) {
	db := r.db.WithContext(ctx).Where("role = ?", RoleAdmin)
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	var u User
	err := db.Order("created_at ASC").First(&u).Error
	return &u, err
}

func (r *repository) DetachReportees(ctx context.Context, managerID string) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("manager_id = ?", managerID).
		Update("manager_id", nil).Error
}

func (r *repository) CountByRole(ctx context.Context, role string) (int64, error) {
	db := r.db.WithContext(ctx).Model(&User{})
	if role != "" {
		db = db.Where("role = ?", role)
	}
	var count int64
	err := db.Count(&count).Error
	return count, err
}
