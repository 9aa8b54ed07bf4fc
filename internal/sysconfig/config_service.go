package sysconfig

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/audit"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/shared/apperror"
	sysconfigerrors "github.com/sushant-78/smart-leave-managment-back-end/internal/sysconfig/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=config_service.go -destination=mock/config_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateConfigRequest) (ConfigResponse, error)
	Upsert(ctx context.Context, actorID string, year int, req UpdateConfigRequest) (ConfigResponse, error)
	GetByYear(ctx context.Context, year int) (ConfigResponse, error)
	GetCurrent(ctx context.Context) (ConfigResponse, error)
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("sysconfig.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sysconfig.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateConfigRequest) (ConfigResponse, error) {
	s.logger.Debug("create config requested",
		zap.String("actor_id", actorID),
		zap.Int("year", req.Year),
	)

	if !ValidWorkingDaysPerWeek(req.WorkingDaysPerWeek) {
		return ConfigResponse{}, sysconfigerrors.ErrInvalidWorkingDays
	}
	if err := validateHolidays(req.Holidays, req.Year); err != nil {
		return ConfigResponse{}, err
	}

	leaveTypes := req.LeaveTypes
	if len(leaveTypes) == 0 {
		leaveTypes = DefaultLeaveTypes
	}
	if err := validateEntitlements(leaveTypes); err != nil {
		return ConfigResponse{}, err
	}

	exists, err := s.repo.ExistsForYear(ctx, req.Year)
	if err != nil {
		return ConfigResponse{}, err
	}
	if exists {
		return ConfigResponse{}, sysconfigerrors.ErrConfigAlreadyExists
	}

	cfg := &YearConfig{
		ID:                 uuid.New(),
		Year:               req.Year,
		WorkingDaysPerWeek: req.WorkingDaysPerWeek,
		Holidays:           encodeJSON(holidaysOrEmpty(req.Holidays)),
		LeaveTypes:         encodeJSON(leaveTypes),
	}

	if err := s.repo.Create(ctx, cfg); err != nil {
		s.logger.Error("create config persist failed", zap.Int("year", req.Year), zap.Error(err))
		return ConfigResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:    actorID,
		Resource:   audit.ResourceConfig,
		ResourceID: cfg.ID.String(),
		Action:     audit.ActionConfigCreated,
		Detail: map[string]any{
			"year":                  cfg.Year,
			"working_days_per_week": cfg.WorkingDaysPerWeek,
		},
	})

	s.logger.Info("create config success", zap.Int("year", req.Year))

	return mapToResponse(*cfg), nil
}

// Upsert creates the year when absent and otherwise merges only the fields
// the caller provided. Configuration stays mutable all year; last write wins.
func (s *service) Upsert(ctx context.Context, actorID string, year int, req UpdateConfigRequest) (ConfigResponse, error) {
	s.logger.Debug("upsert config requested",
		zap.String("actor_id", actorID),
		zap.Int("year", year),
	)

	if req.WorkingDaysPerWeek != nil && !ValidWorkingDaysPerWeek(*req.WorkingDaysPerWeek) {
		return ConfigResponse{}, sysconfigerrors.ErrInvalidWorkingDays
	}
	if req.Holidays != nil {
		if err := validateHolidays(*req.Holidays, year); err != nil {
			return ConfigResponse{}, err
		}
	}
	if req.LeaveTypes != nil {
		if err := validateEntitlements(*req.LeaveTypes); err != nil {
			return ConfigResponse{}, err
		}
	}

	cfg, err := s.repo.FindByYear(ctx, year)
	if err != nil {
		return ConfigResponse{}, err
	}

	action := audit.ActionConfigUpdated
	if cfg == nil {
		action = audit.ActionConfigCreated
		cfg = &YearConfig{
			ID:                 uuid.New(),
			Year:               year,
			WorkingDaysPerWeek: 5,
			Holidays:           encodeJSON(map[string]string{}),
			LeaveTypes:         encodeJSON(DefaultLeaveTypes),
		}
	}

	if req.WorkingDaysPerWeek != nil {
		cfg.WorkingDaysPerWeek = *req.WorkingDaysPerWeek
	}
	if req.Holidays != nil {
		cfg.Holidays = encodeJSON(holidaysOrEmpty(*req.Holidays))
	}
	if req.LeaveTypes != nil {
		cfg.LeaveTypes = encodeJSON(*req.LeaveTypes)
	}

	if action == audit.ActionConfigCreated {
		err = s.repo.Create(ctx, cfg)
	} else {
		err = s.repo.Update(ctx, cfg)
	}
	if err != nil {
		s.logger.Error("upsert config persist failed", zap.Int("year", year), zap.Error(err))
		return ConfigResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:    actorID,
		Resource:   audit.ResourceConfig,
		ResourceID: cfg.ID.String(),
		Action:     action,
		Detail: map[string]any{
			"year":                  cfg.Year,
			"working_days_per_week": cfg.WorkingDaysPerWeek,
		},
	})

	s.logger.Info("upsert config success", zap.Int("year", year))

	return mapToResponse(*cfg), nil
}

func (s *service) GetByYear(ctx context.Context, year int) (ConfigResponse, error) {
	cfg, err := s.repo.FindByYear(ctx, year)
	if err != nil {
		return ConfigResponse{}, err
	}
	if cfg == nil {
		return ConfigResponse{}, sysconfigerrors.ErrConfigNotFound
	}
	return mapToResponse(*cfg), nil
}

func (s *service) GetCurrent(ctx context.Context) (ConfigResponse, error) {
	return s.GetByYear(ctx, time.Now().Year())
}

func holidaysOrEmpty(holidays map[string]string) map[string]string {
	if holidays == nil {
		return map[string]string{}
	}
	return holidays
}

func strictSundayHolidays() bool {
	return os.Getenv("CONFIG_STRICT_SUNDAY_HOLIDAYS") != "false"
}

func validateHolidays(holidays map[string]string, year int) error {
	strict := strictSundayHolidays()
	for date := range holidays {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return apperror.Newf(
				apperror.CodeInvalidInput,
				http.StatusBadRequest,
				"holiday %q is not a valid ISO date", date,
			)
		}
		if parsed.Year() != year {
			return apperror.Newf(
				apperror.CodeInvalidInput,
				http.StatusBadRequest,
				"holiday %s does not fall in %d", date, year,
			)
		}
		if strict && parsed.Weekday() == time.Sunday {
			return apperror.Newf(
				apperror.CodeInvalidInput,
				http.StatusBadRequest,
				"holiday %s falls on a Sunday", date,
			)
		}
	}
	return nil
}

func validateEntitlements(leaveTypes map[string]int) error {
	for _, days := range leaveTypes {
		if days < 0 {
			return sysconfigerrors.ErrNegativeEntitlement
		}
	}
	return nil
}
