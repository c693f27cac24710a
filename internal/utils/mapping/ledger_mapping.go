package mapping

import (
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/SscSPs/claims_ledger/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:     d.EntryID,
		OwnerID:     d.Scope.OwnerID,
		SubGroupKey: d.Scope.SubGroupKey,
		ActorID:     d.ActorID,
		Amount:      d.Amount,
		Kind:        string(d.Kind),
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
		IsVoid:      d.IsVoid,
		VoidedAt:    d.VoidedAt,
		VoidedBy:    toNullString(d.VoidedBy),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     m.EntryID,
		Scope:       domain.TenantScope{OwnerID: m.OwnerID, SubGroupKey: m.SubGroupKey},
		ActorID:     m.ActorID,
		Amount:      m.Amount,
		Kind:        domain.EntryKind(m.Kind),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
		IsVoid:      m.IsVoid,
		VoidedAt:    m.VoidedAt,
		VoidedBy:    fromNullString(m.VoidedBy),
	}
}
