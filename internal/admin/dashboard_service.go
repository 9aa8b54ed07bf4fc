package admin

import (
	"context"
	"time"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/audit"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/leave"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/sysconfig"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/user"

	"go.uber.org/zap"
)

const recentAuditLimit = 10

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	GetDashboard(ctx context.Context) (DashboardResponse, error)
}

type service struct {
	users   user.Repository
	leaves  leave.Repository
	configs sysconfig.Repository
	audits  audit.Repository
	logger  *zap.Logger
}

func NewService(
	users user.Repository,
	leaves leave.Repository,
	configs sysconfig.Repository,
	audits audit.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("admin.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("admin.service")
	}
	return &service{users: users, leaves: leaves, configs: configs, audits: audits, logger: l}
}

func (s *service) GetDashboard(ctx context.Context) (DashboardResponse, error) {
	var resp DashboardResponse

	total, err := s.users.CountByRole(ctx, "")
	if err != nil {
		return resp, err
	}
	employees, err := s.users.CountByRole(ctx, user.RoleEmployee)
	if err != nil {
		return resp, err
	}
	managers, err := s.users.CountByRole(ctx, user.RoleManager)
	if err != nil {
		return resp, err
	}
	admins, err := s.users.CountByRole(ctx, user.RoleAdmin)
	if err != nil {
		return resp, err
	}
	unassigned, err := s.users.FindUnassigned(ctx)
	if err != nil {
		return resp, err
	}
	resp.Users = UserStats{
		Total:      total,
		Employees:  employees,
		Managers:   managers,
		Admins:     admins,
		Unassigned: int64(len(unassigned)),
	}

	leavesTotal, err := s.leaves.CountByStatus(ctx, "")
	if err != nil {
		return resp, err
	}
	pending, err := s.leaves.CountByStatus(ctx, leave.StatusPending)
	if err != nil {
		return resp, err
	}
	approved, err := s.leaves.CountByStatus(ctx, leave.StatusApproved)
	if err != nil {
		return resp, err
	}
	rejected, err := s.leaves.CountByStatus(ctx, leave.StatusRejected)
	if err != nil {
		return resp, err
	}
	byType, err := s.leaves.CountGroupedByType(ctx)
	if err != nil {
		return resp, err
	}
	resp.Leaves = LeaveStats{
		Total:    leavesTotal,
		Pending:  pending,
		Approved: approved,
		Rejected: rejected,
		ByType:   byType,
	}

	cfg, err := s.configs.FindByYear(ctx, time.Now().Year())
	if err != nil {
		return resp, err
	}
	resp.ConfigPresent = cfg != nil

	recent, err := s.audits.CountRecent(ctx, recentAuditLimit)
	if err != nil {
		return resp, err
	}
	resp.RecentAudit = audit.ToListResponse(recent)

	return resp, nil
}
