package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "uq_claims_linked_entry"}, apperrors.ErrDuplicate},
		{"wrapped unique violation", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"}), apperrors.ErrDuplicate},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, apperrors.ErrRetryable},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, apperrors.ErrRetryable},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, apperrors.ErrRetryable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.err, "op"), tt.want)
		})
	}

	assert.NoError(t, translateError(nil, "op"))

	fk := &pgconn.PgError{Code: "23503"}
	got := translateError(fk, "op")
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(got, &pgErr))
	assert.NotErrorIs(t, got, apperrors.ErrDuplicate)
}

func TestArgListNumbersPlaceholders(t *testing.T) {
	args := &argList{}
	assert.Equal(t, "$1", args.add("a"))
	assert.Equal(t, "$2", args.add(2))
	assert.Equal(t, []any{"a", 2}, args.values)
}
