package user

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
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{service: service, logger: l}
}

func respondError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	actorID := c.GetString("user_id")

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(ctx, actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	search := c.Query("search")
	role := c.Query("role")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}

	users, total, err := h.service.GetAll(ctx, search, role, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, users, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	resp, err := h.service.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	actorID := c.GetString("user_id")
	id := c.Param("id")

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(ctx, actorID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	actorID := c.GetString("user_id")
	id := c.Param("id")

	if err := h.service.Delete(ctx, actorID, id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) GetManagers(c *gin.Context) {
	ctx := c.Request.Context()

	managers, err := h.service.GetManagers(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, managers, nil)
}

func (h *Handler) GetUnassigned(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.service.GetUnassigned(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, users, nil)
}
