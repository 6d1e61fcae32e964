package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// MapDBError --- PG error mapping (pgx/libpq) ---
// notFoundMsg dipakai saat gorm.ErrRecordNotFound.
func MapDBError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(notFoundMsg)
	}

	code, constraint := pgCode(err)
	switch code {
	case pgUniqueViolation:
		return &AppError{Kind: KindConflict, Message: conflictMessage(constraint), Err: err}
	case pgForeignKeyViolation:
		return &AppError{Kind: KindInvalidInput, Message: "Referenced record does not exist", Err: err}
	case pgCheckViolation:
		return &AppError{Kind: KindInvalidInput, Message: "Value violates a constraint", Err: err}
	}
	return Internal("database error", err)
}

func pgCode(err error) (code, constraint string) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code, pgxErr.ConstraintName
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	return "", ""
}

func conflictMessage(constraint string) string {
	c := strings.ToLower(constraint)
	switch {
	case strings.Contains(c, "username"):
		return "Username already exists"
	case strings.Contains(c, "email"):
		return "Email already exists"
	case strings.Contains(c, "multiplayer"):
		return "You have already enrolled in this multiplayer course"
	case strings.Contains(c, "enrollment"):
		return "Enrollment already exists"
	case strings.Contains(c, "progress"):
		return "Progress already exists"
	default:
		return "Duplicate data (unique violation)"
	}
}
