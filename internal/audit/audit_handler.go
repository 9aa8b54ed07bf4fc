package audit

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
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{service: service, logger: l}
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

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	action := c.Query("action_type")
	page, pageSize := pagination(c)

	logs, total, err := h.service.GetAll(ctx, action, page, pageSize)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, logs, &meta)
}

func (h *Handler) GetMine(c *gin.Context) {
	ctx := c.Request.Context()
	actorID := c.GetString("user_id")
	page, pageSize := pagination(c)

	logs, total, err := h.service.GetByActor(ctx, actorID, page, pageSize)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, logs, &meta)
}
