package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/audit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAuditRepository struct {
	createFn  func(ctx context.Context, entry *audit.AuditLog) error
	findAllFn func(ctx context.Context, action string, limit, offset int) ([]audit.AuditLog, int64, error)
}

func (f *fakeAuditRepository) Create(ctx context.Context, entry *audit.AuditLog) error {
	if f.createFn != nil {
		return f.createFn(ctx, entry)
	}
	return nil
}

func (f *fakeAuditRepository) FindAll(ctx context.Context, action string, limit, offset int) ([]audit.AuditLog, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, action, limit, offset)
	}
	return nil, 0, nil
}

func (f *fakeAuditRepository) FindByActor(ctx context.Context, actorID string, limit, offset int) ([]audit.AuditLog, int64, error) {
	return nil, 0, nil
}

func (f *fakeAuditRepository) CountRecent(ctx context.Context, limit int) ([]audit.AuditLog, error) {
	return nil, nil
}

func TestAuditService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("success persists actor and detail", func(t *testing.T) {
		actorID := uuid.New()

		var saved *audit.AuditLog
		repo := &fakeAuditRepository{
			createFn: func(ctx context.Context, entry *audit.AuditLog) error {
				saved = entry
				return nil
			},
		}
		svc := audit.NewService(repo)

		svc.Record(ctx, audit.Entry{
			ActorID:    actorID.String(),
			Resource:   audit.ResourceLeave,
			ResourceID: uuid.New().String(),
			Action:     audit.ActionLeaveApplied,
			Detail:     map[string]any{"leave_type": "casual"},
		})

		assert.NotNil(t, saved)
		assert.Equal(t, audit.ActionLeaveApplied, saved.Action)
		assert.NotNil(t, saved.ActorID)
		assert.Equal(t, actorID, *saved.ActorID)
		assert.JSONEq(t, `{"leave_type":"casual"}`, string(saved.Detail))
	})

	t.Run("storage failure does not panic or propagate", func(t *testing.T) {
		repo := &fakeAuditRepository{
			createFn: func(ctx context.Context, entry *audit.AuditLog) error {
				return errors.New("connection reset")
			},
		}
		svc := audit.NewService(repo)

		assert.NotPanics(t, func() {
			svc.Record(ctx, audit.Entry{
				Resource:   audit.ResourceUser,
				ResourceID: uuid.New().String(),
				Action:     audit.ActionUserDeleted,
			})
		})
	})

	t.Run("malformed actor id is stored without an actor", func(t *testing.T) {
		var saved *audit.AuditLog
		repo := &fakeAuditRepository{
			createFn: func(ctx context.Context, entry *audit.AuditLog) error {
				saved = entry
				return nil
			},
		}
		svc := audit.NewService(repo)

		svc.Record(ctx, audit.Entry{
			ActorID:    "not-a-uuid",
			Resource:   audit.ResourceConfig,
			ResourceID: "2025",
			Action:     audit.ActionConfigUpdated,
		})

		assert.NotNil(t, saved)
		assert.Nil(t, saved.ActorID)
	})
}

func TestAuditService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success maps rows and computes the offset", func(t *testing.T) {
		repo := &fakeAuditRepository{
			findAllFn: func(ctx context.Context, action string, limit, offset int) ([]audit.AuditLog, int64, error) {
				assert.Equal(t, audit.ActionLeaveApproved, action)
				assert.Equal(t, 10, limit)
				assert.Equal(t, 20, offset)
				return []audit.AuditLog{
					{ID: uuid.New(), Resource: audit.ResourceLeave, Action: audit.ActionLeaveApproved},
				}, 21, nil
			},
		}
		svc := audit.NewService(repo)

		logs, total, err := svc.GetAll(ctx, audit.ActionLeaveApproved, 3, 10)

		assert.NoError(t, err)
		assert.Equal(t, int64(21), total)
		assert.Len(t, logs, 1)
		assert.Equal(t, audit.ActionLeaveApproved, logs[0].Action)
	})
}
