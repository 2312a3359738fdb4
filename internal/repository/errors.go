package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/spec-kit/mini-crm/pkg/util/errorutil"
)

// Postgres error codes translated at the adapter boundary so that
// services never depend on storage-specific error vocabulary.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapPgError converts pgx/pgconn errors into domain error kinds.
// resource names the entity for not-found messages; conflictMsg describes
// the uniqueness constraint being violated.
func mapPgError(err error, resource, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewConflict(conflictMsg, map[string]any{"constraint": pgErr.ConstraintName})
		case pgForeignKeyViolation:
			return apperrors.NewConflict(resource+" is referenced by other records", map[string]any{"constraint": pgErr.ConstraintName})
		}
	}
	return err
}
