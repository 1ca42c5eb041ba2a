package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// foreignKeyViolation is the SQLSTATE for foreign_key_violation.
const foreignKeyViolation = "23503"

// checkRowsAffected turns an UPDATE or DELETE that matched nothing into
// notFound.
func checkRowsAffected(tag pgconn.CommandTag, notFound error, id uuid.UUID) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return nil
}

// isForeignKeyViolation reports whether err is a FK violation. A non-empty
// column narrows the match to constraints naming it.
func isForeignKeyViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != foreignKeyViolation {
		return false
	}
	if column == "" {
		return true
	}
	return strings.Contains(pgErr.ConstraintName, column) ||
		strings.Contains(pgErr.Message, column)
}
