package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entry is what business services hand to the Recorder.
type Entry struct {
	ActorID    string
	Resource   string
	ResourceID string
	Action     string
	Detail     map[string]any
}

// Recorder is the write side of the audit trail. A failed write must never
// abort the business operation that triggered it, so Record returns nothing.
//
//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

type Service interface {
	Recorder
	GetAll(ctx context.Context, action string, page, pageSize int) ([]AuditLogResponse, int64, error)
	GetByActor(ctx context.Context, actorID string, page, pageSize int) ([]AuditLogResponse, int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, entry Entry) {
	row := &AuditLog{
		ID:         uuid.New(),
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		Action:     entry.Action,
	}

	if entry.ActorID != "" {
		if actorUUID, err := uuid.Parse(entry.ActorID); err == nil {
			row.ActorID = &actorUUID
		}
	}

	if entry.Detail != nil {
		if payload, err := json.Marshal(entry.Detail); err == nil {
			row.Detail = payload
		}
	}

	// Log-then-continue: the triggering mutation is already committed.
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("audit record failed",
			zap.String("resource", entry.Resource),
			zap.String("resource_id", entry.ResourceID),
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		return
	}

	s.logger.Debug("audit recorded",
		zap.String("resource", entry.Resource),
		zap.String("resource_id", entry.ResourceID),
		zap.String("action", entry.Action),
	)
}

func (s *service) GetAll(ctx context.Context, action string, page, pageSize int) ([]AuditLogResponse, int64, error) {
	offset := (page - 1) * pageSize
	logs, total, err := s.repo.FindAll(ctx, action, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(logs), total, nil
}

func (s *service) GetByActor(ctx context.Context, actorID string, page, pageSize int) ([]AuditLogResponse, int64, error) {
	offset := (page - 1) * pageSize
	logs, total, err := s.repo.FindByActor(ctx, actorID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(logs), total, nil
}
