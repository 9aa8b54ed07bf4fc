package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/user"
	usererrors "github.com/sushant-78/smart-leave-managment-back-end/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeUserService struct {
	createFn        func(ctx context.Context, actorID string, req user.CreateUserRequest) (user.UserResponse, error)
	getAllFn        func(ctx context.Context, search, role string, page, pageSize int) ([]user.UserResponse, int64, error)
	getByIDFn       func(ctx context.Context, id string) (user.UserResponse, error)
	updateFn        func(ctx context.Context, actorID, id string, req user.UpdateUserRequest) (user.UserResponse, error)
	deleteFn        func(ctx context.Context, actorID, id string) error
	getManagersFn   func(ctx context.Context) ([]user.UserResponse, error)
	getUnassignedFn func(ctx context.Context) ([]user.UserResponse, error)
}

func (f *fakeUserService) Create(ctx context.Context, actorID string, req user.CreateUserRequest) (user.UserResponse, error) {
	return f.createFn(ctx, actorID, req)
}

func (f *fakeUserService) GetAll(ctx context.Context, search, role string, page, pageSize int) ([]user.UserResponse, int64, error) {
	return f.getAllFn(ctx, search, role, page, pageSize)
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeUserService) Update(ctx context.Context, actorID, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	return f.updateFn(ctx, actorID, id, req)
}

func (f *fakeUserService) Delete(ctx context.Context, actorID, id string) error {
	return f.deleteFn(ctx, actorID, id)
}

func (f *fakeUserService) GetManagers(ctx context.Context) ([]user.UserResponse, error) {
	return f.getManagersFn(ctx)
}

func (f *fakeUserService) GetUnassigned(ctx context.Context) ([]user.UserResponse, error) {
	return f.getUnassignedFn(ctx)
}

func TestUserHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()

		svc := &fakeUserService{
			createFn: func(ctx context.Context, aid string, req user.CreateUserRequest) (user.UserResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, user.RoleEmployee, req.Role)
				return user.UserResponse{
					ID:    uuid.New().String(),
					Name:  req.Name,
					Email: req.Email,
					Role:  req.Role,
				}, nil
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"name":"Asha Rao","email":"asha@example.com","password":"s3cret-pass","role":"employee"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", actorID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative duplicate email maps to conflict", func(t *testing.T) {
		svc := &fakeUserService{
			createFn: func(ctx context.Context, aid string, req user.CreateUserRequest) (user.UserResponse, error) {
				return user.UserResponse{}, usererrors.ErrEmailAlreadyExists
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"name":"Asha Rao","email":"asha@example.com","password":"s3cret-pass","role":"employee"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("negative unknown role", func(t *testing.T) {
		h := user.NewHandler(&fakeUserService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"name":"Asha Rao","email":"asha@example.com","password":"s3cret-pass","role":"director"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestUserHandler_GetByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("negative unknown user", func(t *testing.T) {
		svc := &fakeUserService{
			getByIDFn: func(ctx context.Context, id string) (user.UserResponse, error) {
				return user.UserResponse{}, usererrors.ErrUserNotFound
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users/"+uuid.New().String(), nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("negative deleting yourself is rejected", func(t *testing.T) {
		actorID := uuid.New().String()

		svc := &fakeUserService{
			deleteFn: func(ctx context.Context, aid, id string) error {
				return usererrors.ErrSelfDeletion
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/users/"+actorID, nil)
		c.Params = gin.Params{{Key: "id", Value: actorID}}
		c.Set("user_id", actorID)

		h.Delete(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}
