package auth

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/audit"
	autherrors "github.com/sushant-78/smart-leave-managment-back-end/internal/auth/errors"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultTokenTTL = 24 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, userID string) (string, error)
	GetMe(ctx context.Context, userID string) (user.UserResponse, error)
}

type service struct {
	users    user.Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(users user.Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, recorder: recorder, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	s.logger.Debug("login requested", zap.String("email", req.Email))

	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same response as a bad password so emails cannot be probed.
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("email", req.Email))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.signToken(u)
	if err != nil {
		s.logger.Error("login token sign failed", zap.Error(err))
		return LoginResponse{}, err
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:    u.ID.String(),
		Resource:   audit.ResourceUser,
		ResourceID: u.ID.String(),
		Action:     audit.ActionUserLogin,
		Detail: map[string]any{
			"email": u.Email,
		},
	})

	s.logger.Info("login success",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)

	return LoginResponse{
		Token: token,
		User:  user.ToResponse(*u),
	}, nil
}

// Refresh reissues a token for an already-authenticated caller. The role is
// re-read from storage so a demotion takes effect on the next refresh.
func (s *service) Refresh(ctx context.Context, userID string) (string, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", autherrors.ErrInvalidToken
		}
		return "", err
	}
	return s.signToken(u)
}

func (s *service) GetMe(ctx context.Context, userID string) (user.UserResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.UserResponse{}, autherrors.ErrUserNotFound
		}
		return user.UserResponse{}, err
	}
	return user.ToResponse(*u), nil
}

func (s *service) signToken(u *user.User) (string, error) {
	ttl := defaultTokenTTL
	if raw := os.Getenv("JWT_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"role":    u.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
