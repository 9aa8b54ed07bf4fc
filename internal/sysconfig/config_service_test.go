package sysconfig_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/audit"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/shared/apperror"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/sysconfig"
	sysconfigerrors "github.com/sushant-78/smart-leave-managment-back-end/internal/sysconfig/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

type fakeConfigRepository struct {
	createFn        func(ctx context.Context, c *sysconfig.YearConfig) error
	updateFn        func(ctx context.Context, c *sysconfig.YearConfig) error
	findByYearFn    func(ctx context.Context, year int) (*sysconfig.YearConfig, error)
	existsForYearFn func(ctx context.Context, year int) (bool, error)
}

func (f *fakeConfigRepository) Create(ctx context.Context, c *sysconfig.YearConfig) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeConfigRepository) Update(ctx context.Context, c *sysconfig.YearConfig) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

func (f *fakeConfigRepository) FindByYear(ctx context.Context, year int) (*sysconfig.YearConfig, error) {
	if f.findByYearFn != nil {
		return f.findByYearFn(ctx, year)
	}
	return nil, nil
}

func (f *fakeConfigRepository) ExistsForYear(ctx context.Context, year int) (bool, error) {
	if f.existsForYearFn != nil {
		return f.existsForYearFn(ctx, year)
	}
	return false, nil
}

func existingJSON(t *testing.T, v any) datatypes.JSON {
	t.Helper()
	payload, err := json.Marshal(v)
	assert.NoError(t, err)
	return payload
}

type fakeRecorder struct {
	entries []audit.Entry
}

func (f *fakeRecorder) Record(ctx context.Context, entry audit.Entry) {
	f.entries = append(f.entries, entry)
}

func TestConfigService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := "9b8e7f2a-0000-0000-0000-000000000001"

	t.Run("success seeds default leave types", func(t *testing.T) {
		repo := &fakeConfigRepository{}
		recorder := &fakeRecorder{}
		svc := sysconfig.NewService(repo, recorder)

		var created *sysconfig.YearConfig
		repo.createFn = func(ctx context.Context, c *sysconfig.YearConfig) error {
			created = c
			return nil
		}

		resp, err := svc.Create(ctx, actorID, sysconfig.CreateConfigRequest{
			Year:               2025,
			WorkingDaysPerWeek: 5,
			Holidays:           map[string]string{"2025-03-05": "Founders Day"},
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, 2025, resp.Year)
		assert.Equal(t, 5, resp.WorkingDaysPerWeek)
		assert.Equal(t, 12, resp.LeaveTypes["casual"])
		assert.Equal(t, 8, resp.LeaveTypes["sick"])
		assert.Equal(t, 20, resp.LeaveTypes["earned"])
		assert.Len(t, recorder.entries, 1)
		assert.Equal(t, audit.ActionConfigCreated, recorder.entries[0].Action)
	})

	t.Run("negative year already exists", func(t *testing.T) {
		repo := &fakeConfigRepository{
			existsForYearFn: func(ctx context.Context, year int) (bool, error) {
				return true, nil
			},
		}
		svc := sysconfig.NewService(repo, &fakeRecorder{})

		_, err := svc.Create(ctx, actorID, sysconfig.CreateConfigRequest{
			Year:               2025,
			WorkingDaysPerWeek: 5,
		})

		assert.ErrorIs(t, err, sysconfigerrors.ErrConfigAlreadyExists)
	})

	t.Run("negative invalid working days", func(t *testing.T) {
		svc := sysconfig.NewService(&fakeConfigRepository{}, &fakeRecorder{})

		_, err := svc.Create(ctx, actorID, sysconfig.CreateConfigRequest{
			Year:               2025,
			WorkingDaysPerWeek: 3,
		})

		assert.ErrorIs(t, err, sysconfigerrors.ErrInvalidWorkingDays)
	})

	t.Run("negative holiday outside the year", func(t *testing.T) {
		svc := sysconfig.NewService(&fakeConfigRepository{}, &fakeRecorder{})

		_, err := svc.Create(ctx, actorID, sysconfig.CreateConfigRequest{
			Year:               2025,
			WorkingDaysPerWeek: 5,
			Holidays:           map[string]string{"2024-12-25": "Christmas"},
		})

		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
		assert.Contains(t, appErr.Message, "2024-12-25")
	})

	t.Run("negative sunday holiday under strict toggle", func(t *testing.T) {
		t.Setenv("CONFIG_STRICT_SUNDAY_HOLIDAYS", "")
		svc := sysconfig.NewService(&fakeConfigRepository{}, &fakeRecorder{})

		// 2025-03-09 is a Sunday.
		_, err := svc.Create(ctx, actorID, sysconfig.CreateConfigRequest{
			Year:               2025,
			WorkingDaysPerWeek: 5,
			Holidays:           map[string]string{"2025-03-09": "Somewhere Day"},
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Sunday")
	})

	t.Run("sunday holiday accepted when toggle disabled", func(t *testing.T) {
		t.Setenv("CONFIG_STRICT_SUNDAY_HOLIDAYS", "false")
		svc := sysconfig.NewService(&fakeConfigRepository{}, &fakeRecorder{})

		_, err := svc.Create(ctx, actorID, sysconfig.CreateConfigRequest{
			Year:               2025,
			WorkingDaysPerWeek: 5,
			Holidays:           map[string]string{"2025-03-09": "Somewhere Day"},
		})

		assert.NoError(t, err)
	})

	t.Run("negative entitlement below zero", func(t *testing.T) {
		svc := sysconfig.NewService(&fakeConfigRepository{}, &fakeRecorder{})

		_, err := svc.Create(ctx, actorID, sysconfig.CreateConfigRequest{
			Year:               2025,
			WorkingDaysPerWeek: 5,
			LeaveTypes:         map[string]int{"casual": -1},
		})

		assert.ErrorIs(t, err, sysconfigerrors.ErrNegativeEntitlement)
	})
}

func TestConfigService_Upsert(t *testing.T) {
	ctx := context.Background()
	actorID := "9b8e7f2a-0000-0000-0000-000000000001"

	t.Run("creates with defaults when the year is absent", func(t *testing.T) {
		repo := &fakeConfigRepository{}
		recorder := &fakeRecorder{}
		svc := sysconfig.NewService(repo, recorder)

		var created *sysconfig.YearConfig
		repo.createFn = func(ctx context.Context, c *sysconfig.YearConfig) error {
			created = c
			return nil
		}

		days := 6
		resp, err := svc.Upsert(ctx, actorID, 2025, sysconfig.UpdateConfigRequest{
			WorkingDaysPerWeek: &days,
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, 6, resp.WorkingDaysPerWeek)
		assert.Equal(t, 12, resp.LeaveTypes["casual"])
		assert.Equal(t, audit.ActionConfigCreated, recorder.entries[0].Action)
	})

	t.Run("merges only provided fields on an existing year", func(t *testing.T) {
		existing := &sysconfig.YearConfig{
			Year:               2025,
			WorkingDaysPerWeek: 5,
		}
		existing.Holidays = existingJSON(t, map[string]string{"2025-03-05": "Founders Day"})
		existing.LeaveTypes = existingJSON(t, map[string]int{"casual": 12})

		repo := &fakeConfigRepository{
			findByYearFn: func(ctx context.Context, year int) (*sysconfig.YearConfig, error) {
				return existing, nil
			},
		}
		recorder := &fakeRecorder{}
		svc := sysconfig.NewService(repo, recorder)

		updated := false
		repo.updateFn = func(ctx context.Context, c *sysconfig.YearConfig) error {
			updated = true
			return nil
		}

		days := 4
		resp, err := svc.Upsert(ctx, actorID, 2025, sysconfig.UpdateConfigRequest{
			WorkingDaysPerWeek: &days,
		})

		assert.NoError(t, err)
		assert.True(t, updated)
		assert.Equal(t, 4, resp.WorkingDaysPerWeek)
		// Untouched fields survive the merge.
		assert.Equal(t, "Founders Day", resp.Holidays["2025-03-05"])
		assert.Equal(t, 12, resp.LeaveTypes["casual"])
		assert.Equal(t, audit.ActionConfigUpdated, recorder.entries[0].Action)
	})

	t.Run("negative storage failure passes through", func(t *testing.T) {
		repo := &fakeConfigRepository{
			findByYearFn: func(ctx context.Context, year int) (*sysconfig.YearConfig, error) {
				return nil, errors.New("db down")
			},
		}
		svc := sysconfig.NewService(repo, &fakeRecorder{})

		_, err := svc.Upsert(ctx, actorID, 2025, sysconfig.UpdateConfigRequest{})

		assert.EqualError(t, err, "db down")
	})
}

func TestConfigService_GetByYear(t *testing.T) {
	ctx := context.Background()

	t.Run("negative absent year is not found at the read edge", func(t *testing.T) {
		svc := sysconfig.NewService(&fakeConfigRepository{}, &fakeRecorder{})

		_, err := svc.GetByYear(ctx, 2025)

		assert.ErrorIs(t, err, sysconfigerrors.ErrConfigNotFound)
	})
}
