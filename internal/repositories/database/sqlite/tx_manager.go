package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
)

// TxManager runs units of work on a SQLite handle. The handle is opened with
// _txlock=immediate, so each transaction holds the write lock from BEGIN and
// the ForUpdate reads need no locking clause.
type TxManager struct {
	db *sql.DB
}

func newTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

var _ portsrepo.TransactionManager = (*TxManager)(nil)

// WithTx implements portsrepo.TransactionManager.
func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context, uow portsrepo.UnitOfWork) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return translateError(err, "begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, &unitOfWork{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			slog.Default().Error("failed to roll back transaction", slog.String("error", rbErr.Error()))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return translateError(err, "commit transaction")
	}
	return nil
}

type unitOfWork struct {
	tx *sql.Tx
}

func (u *unitOfWork) Ledger() portsrepo.LedgerEntryTxRepository {
	return &LedgerEntryRepository{db: u.tx}
}

func (u *unitOfWork) Policies() portsrepo.PolicyReader {
	return &PolicyRepository{db: u.tx}
}

func (u *unitOfWork) Enrollments() portsrepo.EnrollmentTxRepository {
	return &EnrollmentRepository{db: u.tx}
}

func (u *unitOfWork) Claims() portsrepo.ClaimTxRepository {
	return &ClaimRepository{db: u.tx}
}
