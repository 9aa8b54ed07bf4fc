package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/audit"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/auth"
	autherrors "github.com/sushant-78/smart-leave-managment-back-end/internal/auth/errors"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	findByEmailFn func(ctx context.Context, email string) (*user.User, error)
	findByIDFn    func(ctx context.Context, id string) (*user.User, error)
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) FindAll(ctx context.Context, search, role string, limit, offset int) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepository) Delete(ctx context.Context, id string) error    { return nil }

func (f *fakeUserRepository) FindManagers(ctx context.Context) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepository) FindUnassigned(ctx context.Context) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepository) FindAnyAdmin(ctx context.Context, excludeID string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) DetachReportees(ctx context.Context, managerID string) error {
	return nil
}

func (f *fakeUserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	return 0, nil
}

type fakeRecorder struct {
	entries []audit.Entry
}

func (f *fakeRecorder) Record(ctx context.Context, entry audit.Entry) {
	f.entries = append(f.entries, entry)
}

func hashedUser(t *testing.T, password string) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &user.User{
		ID:       uuid.New(),
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: string(hash),
		Role:     user.RoleEmployee,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues a signed token with identity claims", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		u := hashedUser(t, "s3cret-pass")
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				assert.Equal(t, "asha@example.com", email)
				return u, nil
			},
		}
		recorder := &fakeRecorder{}
		svc := auth.NewService(repo, recorder)

		resp, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "asha@example.com",
			Password: "s3cret-pass",
		})

		assert.NoError(t, err)
		assert.Equal(t, u.ID.String(), resp.User.ID)

		token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		assert.True(t, token.Valid)

		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, u.ID.String(), claims["user_id"])
		assert.Equal(t, user.RoleEmployee, claims["role"])

		assert.Len(t, recorder.entries, 1)
		assert.Equal(t, audit.ActionUserLogin, recorder.entries[0].Action)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		u := hashedUser(t, "s3cret-pass")
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo, &fakeRecorder{})

		_, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "asha@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email yields the same error", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, &fakeRecorder{})

		_, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "ghost@example.com",
			Password: "whatever",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("token carries the current role", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		u := hashedUser(t, "s3cret-pass")
		u.Role = user.RoleManager
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo, &fakeRecorder{})

		raw, err := svc.Refresh(ctx, u.ID.String())

		assert.NoError(t, err)

		token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, user.RoleManager, claims["role"])
	})

	t.Run("negative deleted user", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, &fakeRecorder{})

		_, err := svc.Refresh(ctx, uuid.New().String())

		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}
