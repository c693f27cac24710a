package repositories

import (
	"context"
)

// UnitOfWork exposes the repositories bound to one open transaction.
// Everything read or written through it commits or rolls back together.
type UnitOfWork interface {
	Ledger() LedgerEntryTxRepository
	Policies() PolicyReader
	Enrollments() EnrollmentTxRepository
	Claims() ClaimTxRepository
}

// TransactionManager runs fn inside a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise,
// including when ctx is cancelled. Storage conflicts surface as
// apperrors.ErrRetryable so callers may rerun the whole unit.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}
