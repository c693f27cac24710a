package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, apperrors.ErrDuplicate},
		{"primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, apperrors.ErrDuplicate},
		{"busy", sqlite3.Error{Code: sqlite3.ErrBusy}, apperrors.ErrRetryable},
		{"locked", sqlite3.Error{Code: sqlite3.ErrLocked}, apperrors.ErrRetryable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.err, "op"), tt.want)
		})
	}

	assert.NoError(t, translateError(nil, "op"))
	other := errors.New("disk on fire")
	got := translateError(other, "op")
	assert.ErrorIs(t, got, other)
	assert.NotErrorIs(t, got, apperrors.ErrRetryable)
}

func TestClaimRepositoryMapsDriverErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &ClaimRepository{db: db}
	scope := domain.TenantScope{OwnerID: "o", SubGroupKey: "g"}
	entryID := "entry-1"
	claim := domain.Claim{
		ClaimID: "c1", Scope: scope, EnrollmentID: "e1", PolicyID: "p1", ActorID: "a1",
		LinkedEntryID: &entryID, IncidentDate: time.Now(), Status: domain.ClaimPending, FiledAt: time.Now(),
	}

	mock.ExpectExec("INSERT INTO claims").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})
	err = repo.InsertClaim(context.Background(), claim)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	mock.ExpectQuery("FROM claims").WillReturnRows(sqlmock.NewRows([]string{"claim_id"}))
	_, err = repo.FindClaimByID(context.Background(), scope, "c1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	mock.ExpectExec("UPDATE claims SET").WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.UpdateClaimOutcome(context.Background(), claim, domain.ClaimPending)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	assert.NoError(t, mock.ExpectationsWereMet())
}
