package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isPgNoRowsError checks if error is a "no rows" error
func isPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isPgDuplicateError checks if error is a unique constraint violation
func isPgDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}
