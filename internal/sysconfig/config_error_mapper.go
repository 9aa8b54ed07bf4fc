package sysconfig

import (
	"errors"
	"strings"

	sysconfigerrors "github.com/sushant-78/smart-leave-managment-back-end/internal/sysconfig/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// The exists-then-create window is closed by the unique index on year; a
// racing insert surfaces as 23505 and maps to the same conflict sentinel.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return sysconfigerrors.ErrConfigAlreadyExists
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_year_configs_year") {
		return sysconfigerrors.ErrConfigAlreadyExists
	}

	return err
}
