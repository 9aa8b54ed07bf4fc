package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	Update(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByUser(ctx context.Context, userID, status string, limit, offset int) ([]Leave, int64, error)
	FindAll(ctx context.Context, status string, limit, offset int) ([]Leave, int64, error)
	FindByManager(ctx context.Context, managerID, status string, limit, offset int) ([]Leave, int64, error)
	// HasOverlapping runs the symmetric interval test against the user's
	// pending and approved leaves.
	HasOverlapping(ctx context.Context, userID string, from, to time.Time) (bool, error)
	// UsedWorkingDaysByType sums the working days of pending+approved leaves
	// per type for one user and year.
	UsedWorkingDaysByType(ctx context.Context, userID string, year int) (map[string]int, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountGroupedByType(ctx context.Context) (map[string]int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to an open transaction so the overlap check and
// the insert observe the same snapshot.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	txdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: txdb}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Leave{}, "id = ?", id).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Approver").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByUser(ctx context.Context, userID, status string, limit, offset int) ([]Leave, int64, error) {
	db := r.db.WithContext(ctx).Model(&Leave{}).Where("user_id = ?", userID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	return r.page(db, limit, offset)
}

func (r *repository) FindAll(ctx context.Context, status string, limit, offset int) ([]Leave, int64, error) {
	db := r.db.WithContext(ctx).Model(&Leave{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	return r.page(db, limit, offset)
}

func (r *repository) FindByManager(ctx context.Context, managerID, status string, limit, offset int) ([]Leave, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&Leave{}).
		Joins("JOIN users ON users.id = leaves.user_id").
		Where("users.manager_id = ?", managerID)
	if status != "" {
		db = db.Where("leaves.status = ?", status)
	}
	return r.page(db, limit, offset)
}

func (r *repository) page(db *gorm.DB, limit, offset int) ([]Leave, int64, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leaves []Leave
	err := db.Preload("User").
		Preload("Approver").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) HasOverlapping(ctx context.Context, userID string, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("user_id = ?", userID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (to_date < ? OR from_date > ?)", from, to).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UsedWorkingDaysByType(ctx context.Context, userID string, year int) (map[string]int, error) {
	type row struct {
		LeaveType string
		Total     int
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Select("leave_type, COALESCE(SUM(working_days), 0) AS total").
		Where("user_id = ?", userID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("EXTRACT(YEAR FROM from_date) = ?", year).
		Group("leave_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	used := make(map[string]int, len(rows))
	for _, r := range rows {
		used[r.LeaveType] = r.Total
	}
	return used, nil
}

func (r *repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	db := r.db.WithContext(ctx).Model(&Leave{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	var count int64
	err := db.Count(&count).Error
	return count, err
}

func (r *repository) CountGroupedByType(ctx context.Context) (map[string]int64, error) {
	type row struct {
		LeaveType string
		Total     int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Select("leave_type, COUNT(*) AS total").
		Group("leave_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.LeaveType] = r.Total
	}
	return counts, nil
}
