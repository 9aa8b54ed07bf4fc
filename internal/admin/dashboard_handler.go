package admin

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
	l := zap.L().Named("admin.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("admin.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	resp, err := h.service.GetDashboard(ctx)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
