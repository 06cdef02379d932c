package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const exclusionViolation = "23P01"

// IsExclusionConflict reports whether err is a Postgres exclusion
// constraint violation, raised when two overlapping active reservations
// race past the in-transaction check.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == exclusionViolation
	}
	return false
}
