package services

import (
	"context"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations for the ledger
type LedgerReaderSvc interface {
	GetEntry(ctx context.Context, scope domain.TenantScope, entryID string, requestingUserID string) (*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, scope domain.TenantScope, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// Balance sums the actor's non-void entries in scope.
	Balance(ctx context.Context, scope domain.TenantScope, actorID string, requestingUserID string) (decimal.Decimal, error)
}

// LedgerWriterSvc defines write operations for the ledger
type LedgerWriterSvc interface {
	// RecordEntry appends a new entry. Never mutates an existing one.
	RecordEntry(ctx context.Context, scope domain.TenantScope, req dto.RecordEntryRequest, requestingUserID string) (*domain.LedgerEntry, error)

	// VoidEntry reverses an entry and rejects its pending claims atomically.
	// Returns apperrors.ErrAlreadyVoid when there is nothing to do.
	VoidEntry(ctx context.Context, scope domain.TenantScope, entryID string, requestingUserID string) (*domain.LedgerEntry, error)

	// Transfer moves money between two actors as two entries in one transaction.
	Transfer(ctx context.Context, scope domain.TenantScope, req dto.TransferRequest, requestingUserID string) ([]domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
