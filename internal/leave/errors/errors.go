package leaveerrors

import (
	"net/http"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"to_date must not be before from_date",
		http.StatusBadRequest,
	)
	ErrCrossYearRange = apperror.New(
		apperror.CodeInvalidInput,
		"leave must fall within a single calendar year",
		http.StatusBadRequest,
	)
	ErrNoConfigForYear = apperror.New(
		apperror.CodeInvalidInput,
		"no configuration exists for the requested year",
		http.StatusBadRequest,
	)
	ErrUnknownLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type for the requested year",
		http.StatusBadRequest,
	)
	ErrOverlappingLeave = apperror.New(
		apperror.CodeConflict,
		"an existing pending or approved leave overlaps the requested dates",
		http.StatusConflict,
	)
	ErrNoWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"the requested range contains no working days",
		http.StatusBadRequest,
	)
	ErrLeaveNotPending = apperror.New(
		apperror.CodeInvalidState,
		"leave request is no longer pending",
		http.StatusConflict,
	)
	ErrNotRequester = apperror.New(
		apperror.CodeForbidden,
		"only the requester may cancel this leave",
		http.StatusForbidden,
	)
	ErrNotApprover = apperror.New(
		apperror.CodeForbidden,
		"you are not authorized to decide this leave",
		http.StatusForbidden,
	)
	ErrSelfDecision = apperror.New(
		apperror.CodeForbidden,
		"you cannot decide your own leave request",
		http.StatusForbidden,
	)
)
