package sysconfigerrors

import (
	"net/http"

	"github.com/sushant-78/smart-leave-managment-back-end/internal/shared/apperror"
)

var (
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be a four-digit calendar year",
		http.StatusBadRequest,
	)
	ErrInvalidWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"working days per week must be 4, 5 or 6",
		http.StatusBadRequest,
	)
	ErrConfigNotFound = apperror.New(
		apperror.CodeNotFound,
		"no configuration exists for the requested year",
		http.StatusNotFound,
	)
	ErrConfigAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a configuration for this year already exists",
		http.StatusConflict,
	)
	ErrNegativeEntitlement = apperror.New(
		apperror.CodeInvalidInput,
		"leave type entitlement must not be negative",
		http.StatusBadRequest,
	)
)
