package apperror

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique-constraint failure on
// constraint. SQLite reports the column list instead of the index name, so
// columns (for example "time_entries.user_id") is matched against its text.
func IsUniqueViolation(err error, constraint, columns string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
	}

	msg := err.Error()
	if strings.Contains(msg, "duplicate key value") {
		return constraint == "" || strings.Contains(msg, constraint)
	}
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return columns == "" || strings.Contains(msg, columns)
	}
	return false
}
