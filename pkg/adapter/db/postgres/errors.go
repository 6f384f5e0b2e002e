package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique or
// primary key constraint violation (SQLSTATE 23505). Repositories use
// it in order to turn the authoritative constraint guards of the
// schema into categorized errors.
func IsUniqueViolation(err error) bool {
	return sqlState(err) == "23505"
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign
// key constraint violation (SQLSTATE 23503), that is, a referenced
// row vanished or never existed.
func IsForeignKeyViolation(err error) bool {
	return sqlState(err) == "23503"
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.SQLState()
	}
	return ""
}
