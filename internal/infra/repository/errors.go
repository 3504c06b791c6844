package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
)

const pgUniqueViolation = "23505"

// translateWriteError turns store constraint failures into typed errors.
// Anything unrecognised passes through and surfaces as internal.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return uniqueViolation(pgErr.ConstraintName + " " + pgErr.Detail)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return uniqueViolation(err.Error())
	}

	return err
}

func uniqueViolation(hint string) error {
	hint = strings.ToLower(hint)
	switch {
	case strings.Contains(hint, "api_key"):
		return httperr.ErrBusiness("api_key_conflict")
	case strings.Contains(hint, "username"):
		return httperr.ErrBusiness("username_taken")
	default:
		return httperr.ErrBusiness("already_exists")
	}
}

func notFoundOr(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}
