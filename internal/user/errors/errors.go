package usererrors

import (
	"net/http"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be one of employee, manager, admin",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"email already exists",
		http.StatusConflict,
	)
	ErrInvalidManager = apperror.New(
		apperror.CodeInvalidInput,
		"manager must be an existing user with the manager role",
		http.StatusBadRequest,
	)
	ErrSelfManager = apperror.New(
		apperror.CodeInvalidInput,
		"user cannot be their own manager",
		http.StatusBadRequest,
	)
	ErrSelfDeletion = apperror.New(
		apperror.CodeInvalidInput,
		"cannot delete your own account",
		http.StatusBadRequest,
	)
)
