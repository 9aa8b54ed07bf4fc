package leave

import (
	"net/http"
	"strconv"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/shared/apperror"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func respondError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}

func (h *Handler) Apply(c *gin.Context) {
	ctx := c.Request.Context()
	requesterID := c.GetString("user_id")

	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Apply(ctx, requesterID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()
	requesterID := c.GetString("user_id")
	leaveID := c.Param("id")

	if err := h.service.Cancel(ctx, requesterID, leaveID); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cancelled": true}, nil)
}

func (h *Handler) Decide(c *gin.Context) {
	ctx := c.Request.Context()
	actorID := c.GetString("user_id")
	actorRole := c.GetString("role")
	leaveID := c.Param("id")

	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Decide(ctx, actorID, actorRole, leaveID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	actorID := c.GetString("user_id")
	role := c.GetString("role")
	status := c.Query("status")
	page, pageSize := pagination(c)

	leaves, total, err := h.service.GetAll(ctx, actorID, role, status, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, leaves, &meta)
}

func (h *Handler) GetTeam(c *gin.Context) {
	ctx := c.Request.Context()
	managerID := c.GetString("user_id")
	status := c.Query("status")
	page, pageSize := pagination(c)

	leaves, total, err := h.service.GetTeam(ctx, managerID, status, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, leaves, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	actorID := c.GetString("user_id")
	role := c.GetString("role")
	leaveID := c.Param("id")

	resp, err := h.service.GetByID(ctx, actorID, role, leaveID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetBalance(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")

	year, _ := strconv.Atoi(c.Query("year"))

	resp, err := h.service.GetBalance(ctx, userID, year)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
