package dto

import (
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordEntryRequest defines the data needed to append a ledger entry.
type RecordEntryRequest struct {
	ActorID     string           `json:"actorID" binding:"required"`
	Amount      decimal.Decimal  `json:"amount"`
	Kind        domain.EntryKind `json:"kind" binding:"required"`
	Description string           `json:"description" binding:"max=500"`
}

// TransferRequest moves money between two participants of the same scope.
type TransferRequest struct {
	FromActorID string          `json:"fromActorID" binding:"required"`
	ToActorID   string          `json:"toActorID" binding:"required,nefield=FromActorID"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"max=500"`
}

// ListEntriesParams are the query parameters for listing ledger entries.
type ListEntriesParams struct {
	ActorID     string `form:"actorID"`
	IncludeVoid bool   `form:"includeVoid"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken   string `form:"nextToken"`
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID     string           `json:"entryID"`
	ActorID     string           `json:"actorID"`
	Amount      decimal.Decimal  `json:"amount"`
	Kind        domain.EntryKind `json:"kind"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"createdAt"`
	CreatedBy   string           `json:"createdBy"`
	IsVoid      bool             `json:"isVoid"`
	VoidedAt    *time.Time       `json:"voidedAt,omitempty"`
	VoidedBy    *string          `json:"voidedBy,omitempty"`
}

// ListEntriesResponse is one page of ledger entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// BalanceResponse is an actor's balance over non-void entries.
type BalanceResponse struct {
	ActorID string          `json:"actorID"`
	Balance decimal.Decimal `json:"balance"`
}

// TransferResponse returns both legs of a transfer.
type TransferResponse struct {
	Entries []EntryResponse `json:"entries"`
}

func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:     e.EntryID,
		ActorID:     e.ActorID,
		Amount:      e.Amount,
		Kind:        e.Kind,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
		IsVoid:      e.IsVoid,
		VoidedAt:    e.VoidedAt,
		VoidedBy:    e.VoidedBy,
	}
}

func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return out
}
