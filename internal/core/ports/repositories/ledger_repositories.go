package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryReader defines read operations for ledger entries. Every method
// filters by the full scope tuple.
type LedgerEntryReader interface {
	// FindEntryByID retrieves one entry, void or not.
	FindEntryByID(ctx context.Context, scope domain.TenantScope, entryID string) (*domain.LedgerEntry, error)

	// ListEntries returns a page of entries, newest first. An empty actorID lists the whole scope.
	ListEntries(ctx context.Context, scope domain.TenantScope, actorID string, includeVoid bool, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// SumBalance sums the amounts of the actor's non-void entries.
	SumBalance(ctx context.Context, scope domain.TenantScope, actorID string) (decimal.Decimal, error)
}

// LedgerEntryWriter defines write operations for ledger entries
type LedgerEntryWriter interface {
	// InsertEntry appends a new entry.
	InsertEntry(ctx context.Context, entry domain.LedgerEntry) error

	// MarkEntryVoid flips is_void. Returns apperrors.ErrAlreadyVoid when the
	// entry is already void and apperrors.ErrNotFound when it is not in scope.
	MarkEntryVoid(ctx context.Context, scope domain.TenantScope, entryID string, voidedBy string, voidedAt time.Time) error
}

// LedgerEntryRepositoryFacade combines the non-transactional ledger interfaces
type LedgerEntryRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}

// LedgerEntryTxRepository is the ledger view available inside a UnitOfWork.
type LedgerEntryTxRepository interface {
	LedgerEntryRepositoryFacade

	// FindEntryByIDForUpdate reads the entry and holds an exclusive row lock
	// until the transaction ends.
	FindEntryByIDForUpdate(ctx context.Context, scope domain.TenantScope, entryID string) (*domain.LedgerEntry, error)
}
