package sysconfig

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=config_repo.go -destination=mock/config_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, c *YearConfig) error
	Update(ctx context.Context, c *YearConfig) error
	// FindByYear returns (nil, nil) when no configuration exists: absence is a
	// normal state, not an error.
	FindByYear(ctx context.Context, year int) (*YearConfig, error)
	ExistsForYear(ctx context.Context, year int) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *YearConfig) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) Update(ctx context.Context, c *YearConfig) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) FindByYear(ctx context.Context, year int) (*YearConfig, error) {
	var c YearConfig
	err := r.db.WithContext(ctx).First(&c, "year = ?", year).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) ExistsForYear(ctx context.Context, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&YearConfig{}).
		Where("year = ?", year).
		Count(&count).Error
	return count > 0, err
}
