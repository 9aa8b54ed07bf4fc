package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/audit"
	usererrors "github.com/sushant-78/smart-leave-managment-back-end/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context, search, role string, page, pageSize int) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	GetManagers(ctx context.Context) ([]UserResponse, error)
	GetUnassigned(ctx context.Context) ([]UserResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, recorder: recorder, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateUserRequest) (UserResponse, error) {
	s.logger.Debug("create user requested",
		zap.String("actor_id", actorID),
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	if !ValidRole(req.Role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	var managerUUID *uuid.UUID
	if req.ManagerID != nil && *req.ManagerID != "" {
		resolved, err := s.resolveManager(ctx, *req.ManagerID)
		if err != nil {
			return UserResponse{}, err
		}
		managerUUID = resolved
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return UserResponse{}, err
	}

	u := &User{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      req.Role,
		ManagerID: managerUUID,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:    actorID,
		Resource:   audit.ResourceUser,
		ResourceID: u.ID.String(),
		Action:     audit.ActionUserCreated,
		Detail: map[string]any{
			"name":  u.Name,
			"email": u.Email,
			"role":  u.Role,
		},
	})

	s.logger.Info("create user success",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)

	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context, search, role string, page, pageSize int) ([]UserResponse, int64, error) {
	offset := (page - 1) * pageSize
	users, total, err := s.repo.FindAll(ctx, search, role, pageSize, offset)
	if err != nil {
		return nil, 0, mapRepositoryError(err)
	}
	return mapToListResponse(users), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateUserRequest) (UserResponse, error) {
	s.logger.Debug("update user requested",
		zap.String("actor_id", actorID),
		zap.String("user_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	previousRole := u.Role

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		if !ValidRole(*req.Role) {
			return UserResponse{}, usererrors.ErrInvalidRole
		}
		u.Role = *req.Role
	}

	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			u.ManagerID = nil
		} else {
			if *req.ManagerID == id {
				return UserResponse{}, usererrors.ErrSelfManager
			}
			resolved, err := s.resolveManagerTx(ctx, qtx, *req.ManagerID)
			if err != nil {
				return UserResponse{}, err
			}
			u.ManagerID = resolved
		}
	}

	// Demoting a manager detaches their reportees in the same transaction.
	if previousRole == RoleManager && u.Role == RoleEmployee {
		if err := qtx.DetachReportees(ctx, id); err != nil {
			s.logger.Error("detach reportees failed", zap.String("user_id", id), zap.Error(err))
			return UserResponse{}, err
		}
	}

	// Save dropped the preloaded associations on purpose.
	u.Manager = nil
	u.Reportees = nil

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update user commit failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	action := audit.ActionUserUpdated
	if previousRole != u.Role {
		action = audit.ActionRoleChanged
	}
	s.recorder.Record(ctx, audit.Entry{
		ActorID:    actorID,
		Resource:   audit.ResourceUser,
		ResourceID: id,
		Action:     action,
		Detail: map[string]any{
			"previous_role": previousRole,
			"role":          u.Role,
		},
	})

	s.logger.Info("update user success", zap.String("user_id", id))

	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}
	if actorID == id {
		return usererrors.ErrSelfDeletion
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if u.Role == RoleManager {
		if err := qtx.DetachReportees(ctx, id); err != nil {
			s.logger.Error("detach reportees failed", zap.String("user_id", id), zap.Error(err))
			return err
		}
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:    actorID,
		Resource:   audit.ResourceUser,
		ResourceID: id,
		Action:     audit.ActionUserDeleted,
		Detail: map[string]any{
			"name":  u.Name,
			"email": u.Email,
		},
	})

	s.logger.Info("delete user success", zap.String("user_id", id))

	return nil
}

func (s *service) GetManagers(ctx context.Context) ([]UserResponse, error) {
	managers, err := s.repo.FindManagers(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(managers), nil
}

func (s *service) GetUnassigned(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindUnassigned(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(users), nil
}

func (s *service) resolveManager(ctx context.Context, managerID string) (*uuid.UUID, error) {
	return s.resolveManagerTx(ctx, s.repo, managerID)
}

func (s *service) resolveManagerTx(ctx context.Context, repo Repository, managerID string) (*uuid.UUID, error) {
	managerUUID, err := uuid.Parse(managerID)
	if err != nil {
		return nil, usererrors.ErrInvalidManager
	}

	manager, err := repo.FindByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrInvalidManager
		}
		return nil, err
	}
	if manager.Role != RoleManager {
		return nil, usererrors.ErrInvalidManager
	}

	return &managerUUID, nil
}
