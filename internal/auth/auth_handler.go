package auth

import (
	"net/http"

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
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, logger: l}
}

func respondError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Login(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")

	token, err := h.service.Refresh(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")

	resp, err := h.service.GetMe(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
