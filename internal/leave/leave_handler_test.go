package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/leave"
	leaveerrors "github.com/sushant-78/smart-leave-managment-back-end/internal/leave/errors"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/user"

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

type fakeLeaveService struct {
	applyFn      func(ctx context.Context, requesterID string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error)
	cancelFn     func(ctx context.Context, requesterID, leaveID string) error
	decideFn     func(ctx context.Context, actorID, actorRole, leaveID string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error)
	getAllFn     func(ctx context.Context, actorID, role, status string, page, pageSize int) ([]leave.LeaveResponse, int64, error)
	getTeamFn    func(ctx context.Context, managerID, status string, page, pageSize int) ([]leave.LeaveResponse, int64, error)
	getByIDFn    func(ctx context.Context, actorID, role, leaveID string) (leave.LeaveResponse, error)
	getBalanceFn func(ctx context.Context, userID string, year int) (leave.BalanceResponse, error)
}

func (f *fakeLeaveService) Apply(ctx context.Context, requesterID string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	return f.applyFn(ctx, requesterID, req)
}

func (f *fakeLeaveService) Cancel(ctx context.Context, requesterID, leaveID string) error {
	return f.cancelFn(ctx, requesterID, leaveID)
}

func (f *fakeLeaveService) Decide(ctx context.Context, actorID, actorRole, leaveID string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	return f.decideFn(ctx, actorID, actorRole, leaveID, req)
}

func (f *fakeLeaveService) GetAll(ctx context.Context, actorID, role, status string, page, pageSize int) ([]leave.LeaveResponse, int64, error) {
	return f.getAllFn(ctx, actorID, role, status, page, pageSize)
}

func (f *fakeLeaveService) GetTeam(ctx context.Context, managerID, status string, page, pageSize int) ([]leave.LeaveResponse, int64, error) {
	return f.getTeamFn(ctx, managerID, status, page, pageSize)
}

func (f *fakeLeaveService) GetByID(ctx context.Context, actorID, role, leaveID string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, actorID, role, leaveID)
}

func (f *fakeLeaveService) GetBalance(ctx context.Context, userID string, year int) (leave.BalanceResponse, error) {
	return f.getBalanceFn(ctx, userID, year)
}

func TestLeaveHandler_Apply(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()

		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, requesterID string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, requesterID)
				assert.Equal(t, "casual", req.LeaveType)
				return leave.LeaveResponse{
					ID:          uuid.New().String(),
					UserID:      requesterID,
					LeaveType:   req.LeaveType,
					FromDate:    req.FromDate,
					ToDate:      req.ToDate,
					WorkingDays: 3,
					Status:      leave.StatusPending,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"casual","from_date":"2025-03-10","to_date":"2025-03-12","reason":"family wedding out of town"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", actorID)

		h.Apply(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leave.StatusPending, got.Status)
		assert.Equal(t, 3, got.WorkingDays)
	})

	t.Run("negative missing reason", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"casual","from_date":"2025-03-10","to_date":"2025-03-12"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative overlap maps to conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, requesterID string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrOverlappingLeave
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"casual","from_date":"2025-03-10","to_date":"2025-03-12","reason":"family wedding out of town"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())

		h.Apply(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestLeaveHandler_Decide(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success passes actor identity through", func(t *testing.T) {
		actorID := uuid.New().String()
		leaveID := uuid.New().String()

		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, aid, role, lid string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, user.RoleManager, role)
				assert.Equal(t, leaveID, lid)
				assert.Equal(t, leave.StatusApproved, req.Status)
				return leave.LeaveResponse{ID: lid, Status: leave.StatusApproved}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/leaves/"+leaveID+"/decision", strings.NewReader(`{"status":"approved"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("user_id", actorID)
		c.Set("role", user.RoleManager)

		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative self decision maps to forbidden", func(t *testing.T) {
		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, aid, role, lid string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrSelfDecision
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/leaves/x/decision", strings.NewReader(`{"status":"approved"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())
		c.Set("role", user.RoleManager)

		h.Decide(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("negative invalid status value", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/leaves/x/decision", strings.NewReader(`{"status":"maybe"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_GetBalance(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success forwards the year query", func(t *testing.T) {
		userID := uuid.New().String()

		svc := &fakeLeaveService{
			getBalanceFn: func(ctx context.Context, uid string, year int) (leave.BalanceResponse, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, 2024, year)
				return leave.BalanceResponse{
					Year: 2024,
					Balances: map[string]leave.TypeBalance{
						"casual": {Entitlement: 12, Used: 2, Remaining: 10},
					},
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/balance?year=2024", nil)
		c.Set("user_id", userID)

		h.GetBalance(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var got leave.BalanceResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, 10, got.Balances["casual"].Remaining)
	})

	t.Run("negative missing config bubbles up", func(t *testing.T) {
		svc := &fakeLeaveService{
			getBalanceFn: func(ctx context.Context, uid string, year int) (leave.BalanceResponse, error) {
				return leave.BalanceResponse{}, leaveerrors.ErrNoConfigForYear
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/balance", nil)
		c.Set("user_id", uuid.New().String())

		h.GetBalance(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
