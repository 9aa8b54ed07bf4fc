package sysconfig

import (
	"net/http"
	"strconv"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/shared/apperror"
	"github.com/sushant-78/smart-leave-managment-back-end/internal/shared/response"
	sysconfigerrors "github.com/sushant-78/smart-leave-managment-back-end/internal/sysconfig/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("sysconfig.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sysconfig.handler")
	}
	return &Handler{service: service, logger: l}
}

func respondError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func yearParam(c *gin.Context) (int, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		return 0, sysconfigerrors.ErrInvalidYear
	}
	return year, nil
}

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	actorID := c.GetString("user_id")

	var req CreateConfigRequest
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

func (h *Handler) Upsert(c *gin.Context) {
	ctx := c.Request.Context()
	actorID := c.GetString("user_id")

	year, err := yearParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Upsert(ctx, actorID, year, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByYear(c *gin.Context) {
	ctx := c.Request.Context()

	year, err := yearParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.service.GetByYear(ctx, year)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetCurrent(c *gin.Context) {
	ctx := c.Request.Context()

	resp, err := h.service.GetCurrent(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
