package audit

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, entry *AuditLog) error
	FindAll(ctx context.Context, action string, limit, offset int) ([]AuditLog, int64, error)
	FindByActor(ctx context.Context, actorID string, limit, offset int) ([]AuditLog, int64, error)
	CountRecent(ctx context.Context, limit int) ([]AuditLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindAll(ctx context.Context, action string, limit, offset int) ([]AuditLog, int64, error) {
	db := r.db.WithContext(ctx).Model(&AuditLog{})
	if action != "" {
		db = db.Where("action = ?", action)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []AuditLog
	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, total, err
}

func (r *repository) FindByActor(ctx context.Context, actorID string, limit, offset int) ([]AuditLog, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&AuditLog{}).
		Where("actor_id = ?", actorID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []AuditLog
	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, total, err
}

func (r *repository) CountRecent(ctx context.Context, limit int) ([]AuditLog, error) {
	var logs []AuditLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
