package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/spec-kit/mini-crm/pkg/util/errorutil"
)

func TestMapPgErrorNoRows(t *testing.T) {
	err := mapPgError(pgx.ErrNoRows, "customer", "")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestMapPgErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "customers_email_key"}
	err := mapPgError(pgErr, "customer", "email or phone already exists")
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestMapPgErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "tasks_customer_id_fkey"}
	err := mapPgError(pgErr, "customer", "")
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected Conflict for restricted delete, got %v", err)
	}
}

func TestMapPgErrorPassthrough(t *testing.T) {
	cause := errors.New("connection refused")
	if got := mapPgError(cause, "customer", ""); !errors.Is(got, cause) {
		t.Fatalf("unclassified errors must pass through, got %v", got)
	}
	if mapPgError(nil, "customer", "") != nil {
		t.Fatal("nil must map to nil")
	}
}
