package pgsql

import (
	"context"
	"errors"
	"log/slog"

	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager runs units of work on a pgx pool at READ COMMITTED. Rows that
// must not change underneath a decision are taken with SELECT ... FOR UPDATE.
type TxManager struct {
	pool *pgxpool.Pool
}

func newTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

var _ portsrepo.TransactionManager = (*TxManager)(nil)

// WithTx implements portsrepo.TransactionManager.
func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context, uow portsrepo.UnitOfWork) error) error {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return translateError(err, "begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.Background())
			panic(p)
		}
	}()

	if err := fn(ctx, &unitOfWork{tx: tx}); err != nil {
		// Roll back with a fresh context so a cancelled request still releases its locks.
		if rbErr := tx.Rollback(context.Background()); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Default().Error("failed to roll back transaction", slog.String("error", rbErr.Error()))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return translateError(err, "commit transaction")
	}
	return nil
}

type unitOfWork struct {
	tx pgx.Tx
}

func (u *unitOfWork) Ledger() portsrepo.LedgerEntryTxRepository {
	return &PgxLedgerEntryRepository{db: u.tx}
}

func (u *unitOfWork) Policies() portsrepo.PolicyReader {
	return &PgxPolicyRepository{db: u.tx}
}

func (u *unitOfWork) Enrollments() portsrepo.EnrollmentTxRepository {
	return &PgxEnrollmentRepository{db: u.tx}
}

func (u *unitOfWork) Claims() portsrepo.ClaimTxRepository {
	return &PgxClaimRepository{db: u.tx}
}
