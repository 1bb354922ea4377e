// Package pgutils classifies PostgreSQL errors coming back through pgx or bun.
package pgutils

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
const CodeForeignKeyViolation = "23503"

// IsForeignKeyViolation reports a link insert that referenced a missing row.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == CodeForeignKeyViolation
	}
	// pgdriver only exposes the code in the message.
	msg := err.Error()
	return strings.Contains(msg, "#"+CodeForeignKeyViolation) || strings.Contains(msg, "SQLSTATE "+CodeForeignKeyViolation)
}
