package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlstateUniqueViolation    = "23505"
	sqlstateExclusionViolation = "23P01"
)

// IsExclusionConflict reports a postgres exclusion constraint violation,
// raised when two orders of one employee would overlap.
func IsExclusionConflict(err error) bool {
	return hasSQLState(err, sqlstateExclusionViolation)
}

func IsUniqueViolation(err error) bool {
	return hasSQLState(err, sqlstateUniqueViolation)
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
