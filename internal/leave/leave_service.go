package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/audit"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/events"
	leaveerrors "github.com/sushant-78/smart-leave-managment-back-end/internal/leave/errors"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/messaging/kafka"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/shared/apperror"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/shared/contextutil"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/sysconfig"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, requesterID string, req ApplyLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, requesterID, leaveID string) error
	Decide(ctx context.Context, actorID, actorRole, leaveID string, req DecideLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actorID, role, status string, page, pageSize int) ([]LeaveResponse, int64, error)
	GetTeam(ctx context.Context, managerID, status string, page, pageSize int) ([]LeaveResponse, int64, error)
	GetByID(ctx context.Context, actorID, role, leaveID string) (LeaveResponse, error)
	GetBalance(ctx context.Context, userID string, year int) (BalanceResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	users    user.Repository
	configs  sysconfig.Repository
	balances *BalanceResolver
	outbox   kafka.OutboxRepository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	configs sysconfig.Repository,
	balances *BalanceResolver,
	outbox kafka.OutboxRepository,
	recorder audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		users:    users,
		configs:  configs,
		balances: balances,
		outbox:   outbox,
		recorder: recorder,
		logger:   l,
	}
}

// Apply runs the guard chain and persists the request atomically. The
// overlap-check-then-insert pair runs under a serializable transaction so two
// concurrent applications for overlapping dates cannot both commit.
func (s *service) Apply(ctx context.Context, requesterID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("apply leave requested",
		zap.String("user_id", requesterID),
		zap.String("leave_type", req.LeaveType),
		zap.String("from_date", req.FromDate),
		zap.String("to_date", req.ToDate),
	)

	from, to, err := parseRange(req.FromDate, req.ToDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	year := from.Year()

	cfg, err := s.configs.FindByYear(ctx, year)
	if err != nil {
		return LeaveResponse{}, err
	}
	if cfg == nil {
		return LeaveResponse{}, leaveerrors.ErrNoConfigForYear
	}

	entitlements := cfg.EntitlementMap()
	entitlement, known := entitlements[req.LeaveType]
	if !known {
		return LeaveResponse{}, leaveerrors.ErrUnknownLeaveType
	}

	span := cfg.Policy().CountWorkingDays(from, to)

	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return LeaveResponse{}, err
	}

	approver, err := s.resolveApprover(ctx, requester)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlapping, err := qtx.HasOverlapping(ctx, requesterID, from, to)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlapping {
		return LeaveResponse{}, leaveerrors.ErrOverlappingLeave
	}

	if span <= 0 {
		return LeaveResponse{}, leaveerrors.ErrNoWorkingDays
	}

	used, err := qtx.UsedWorkingDaysByType(ctx, requesterID, year)
	if err != nil {
		return LeaveResponse{}, err
	}
	remaining := entitlement - used[req.LeaveType]
	if remaining < 0 {
		remaining = 0
	}
	if span > remaining {
		return LeaveResponse{}, apperror.Newf(
			apperror.CodeInvalidInput,
			http.StatusBadRequest,
			"insufficient %s balance: requested %d working days, %d remaining",
			req.LeaveType, span, remaining,
		)
	}

	l := &Leave{
		ID:          uuid.New(),
		UserID:      requester.ID,
		LeaveType:   req.LeaveType,
		FromDate:    from,
		ToDate:      to,
		WorkingDays: span,
		Reason:      req.Reason,
		Status:      StatusPending,
	}
	if approver != nil {
		l.ApproverID = &approver.ID
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueueEvent(ctx, tx, events.LeaveApplied, l, requester, approver, ""); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.balances.Invalidate(ctx, requesterID, year)

	s.recorder.Record(ctx, audit.Entry{
		ActorID:    requesterID,
		Resource:   audit.ResourceLeave,
		ResourceID: l.ID.String(),
		Action:     audit.ActionLeaveApplied,
		Detail: map[string]any{
			"leave_type":   l.LeaveType,
			"from_date":    req.FromDate,
			"to_date":      req.ToDate,
			"working_days": span,
		},
	})

	s.logger.Info("apply leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", requesterID),
		zap.Int("working_days", span),
	)

	l.User = requester
	l.Approver = approver
	return mapToResponse(*l), nil
}

// Cancel removes a pending request entirely; only the audit trail remembers
// it existed.
func (s *service) Cancel(ctx context.Context, requesterID, leaveID string) error {
	if _, err := uuid.Parse(leaveID); err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		return mapNotFound(err)
	}
	if l.UserID.String() != requesterID {
		return leaveerrors.ErrNotRequester
	}
	if l.Status != StatusPending {
		return leaveerrors.ErrLeaveNotPending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, leaveID); err != nil {
		s.logger.Error("cancel leave delete failed", zap.String("leave_id", leaveID), zap.Error(err))
		return err
	}

	if err := s.enqueueEvent(ctx, tx, events.LeaveCancelled, l, l.User, l.Approver, ""); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.balances.Invalidate(ctx, requesterID, l.FromDate.Year())

	s.recorder.Record(ctx, audit.Entry{
		ActorID:    requesterID,
		Resource:   audit.ResourceLeave,
		ResourceID: leaveID,
		Action:     audit.ActionLeaveCancelled,
		Detail: map[string]any{
			"leave_type": l.LeaveType,
			"from_date":  l.FromDate.Format(dateLayout),
			"to_date":    l.ToDate.Format(dateLayout),
		},
	})

	s.logger.Info("cancel leave success", zap.String("leave_id", leaveID))

	return nil
}

// Decide approves or rejects a pending request. The working-day span is
// recomputed against the year's current policy; holidays added since the
// application change the recorded span here.
func (s *service) Decide(ctx context.Context, actorID, actorRole, leaveID string, req DecideLeaveRequest) (LeaveResponse, error) {
	if _, err := uuid.Parse(leaveID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	if !ValidDecision(req.Status) {
		return LeaveResponse{}, apperror.InvalidField("status")
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapNotFound(err)
	}

	if l.UserID.String() == actorID {
		return LeaveResponse{}, leaveerrors.ErrSelfDecision
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	assigned := l.ApproverID != nil && l.ApproverID.String() == actorID
	if !assigned && actorRole != user.RoleAdmin {
		return LeaveResponse{}, leaveerrors.ErrNotApprover
	}

	if cfg, err := s.configs.FindByYear(ctx, l.FromDate.Year()); err == nil && cfg != nil {
		l.WorkingDays = cfg.Policy().CountWorkingDays(l.FromDate, l.ToDate)
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrNotApprover
	}

	l.Status = req.Status
	l.ApproverID = &actorUUID
	l.ApproverComment = req.Comment

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Save would cascade into the preloaded associations.
	requester := l.User
	approver := l.Approver
	l.User = nil
	l.Approver = nil

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed", zap.String("leave_id", leaveID), zap.Error(err))
		return LeaveResponse{}, err
	}

	eventType := events.LeaveApproved
	action := audit.ActionLeaveApproved
	if req.Status == StatusRejected {
		eventType = events.LeaveRejected
		action = audit.ActionLeaveRejected
	}

	comment := ""
	if req.Comment != nil {
		comment = *req.Comment
	}
	if err := s.enqueueEvent(ctx, tx, eventType, l, requester, approver, comment); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.balances.Invalidate(ctx, l.UserID.String(), l.FromDate.Year())

	s.recorder.Record(ctx, audit.Entry{
		ActorID:    actorID,
		Resource:   audit.ResourceLeave,
		ResourceID: leaveID,
		Action:     action,
		Detail: map[string]any{
			"leave_type": l.LeaveType,
			"status":     l.Status,
		},
	})

	s.logger.Info("decide leave success",
		zap.String("leave_id", leaveID),
		zap.String("status", l.Status),
		zap.String("approver_id", actorID),
	)

	l.User = requester
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, actorID, role, status string, page, pageSize int) ([]LeaveResponse, int64, error) {
	offset := (page - 1) * pageSize

	var (
		leaves []Leave
		total  int64
		err    error
	)
	if role == user.RoleAdmin {
		leaves, total, err = s.repo.FindAll(ctx, status, pageSize, offset)
	} else {
		leaves, total, err = s.repo.FindByUser(ctx, actorID, status, pageSize, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

func (s *service) GetTeam(ctx context.Context, managerID, status string, page, pageSize int) ([]LeaveResponse, int64, error) {
	offset := (page - 1) * pageSize
	leaves, total, err := s.repo.FindByManager(ctx, managerID, status, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

func (s *service) GetByID(ctx context.Context, actorID, role, leaveID string) (LeaveResponse, error) {
	if _, err := uuid.Parse(leaveID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapNotFound(err)
	}

	isRequester := l.UserID.String() == actorID
	isApprover := l.ApproverID != nil && l.ApproverID.String() == actorID
	if !isRequester && !isApprover && role != user.RoleAdmin {
		return LeaveResponse{}, leaveerrors.ErrNotApprover
	}

	return mapToResponse(*l), nil
}

func (s *service) GetBalance(ctx context.Context, userID string, year int) (BalanceResponse, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	balances, err := s.balances.Resolve(ctx, userID, year)
	if err != nil {
		return BalanceResponse{}, err
	}

	return BalanceResponse{Year: year, Balances: balances}, nil
}

// resolveApprover picks the requester's manager, falling back to an admin
// other than the requester. A nil approver leaves the request decidable by
// any admin.
func (s *service) resolveApprover(ctx context.Context, requester *user.User) (*user.User, error) {
	if requester.ManagerID != nil {
		manager, err := s.users.FindByID(ctx, requester.ManagerID.String())
		if err == nil {
			return manager, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	admin, err := s.users.FindAnyAdmin(ctx, requester.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return admin, nil
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, eventType string, l *Leave, requester, approver *user.User, comment string) error {
	event := events.LeaveLifecycleEvent{
		EventType:   eventType,
		RequestID:   contextutil.GetRequestID(ctx),
		LeaveID:     l.ID.String(),
		UserID:      l.UserID.String(),
		LeaveType:   l.LeaveType,
		FromDate:    l.FromDate.Format(dateLayout),
		ToDate:      l.ToDate.Format(dateLayout),
		WorkingDays: l.WorkingDays,
		Comment:     comment,
		OccurredAt:  time.Now().UTC(),
	}
	if requester != nil {
		event.UserName = requester.Name
		event.UserEmail = requester.Email
	}
	if approver != nil {
		event.ApproverEmail = approver.Email
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     event.RequestID,
		AggregateType: "leave",
		AggregateID:   event.LeaveID,
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidField("from_date")
	}
	to, err := time.Parse(dateLayout, toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidField("to_date")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	if from.Year() != to.Year() {
		return time.Time{}, time.Time{}, leaveerrors.ErrCrossYearRange
	}
	return from, to, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}
