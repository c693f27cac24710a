package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind tags the reason for a monetary movement.
type EntryKind string

const (
	KindDeposit       EntryKind = "deposit"
	KindWithdrawal    EntryKind = "withdrawal"
	KindPurchase      EntryKind = "purchase"
	KindTransfer      EntryKind = "transfer"
	KindPayroll       EntryKind = "payroll"
	KindPremium       EntryKind = "premium"
	KindReimbursement EntryKind = "reimbursement"
	KindAdjustment    EntryKind = "adjustment"
)

// MaxDescriptionLength bounds ledger entry descriptions, in characters.
const MaxDescriptionLength = 500

// Reasons reported by ledger validation.
const (
	ReasonAmountZero          = "amount must be non-zero"
	ReasonUnknownKind         = "unknown entry kind"
	ReasonDescriptionTooLong  = "description too long"
	ReasonInsufficientBalance = "insufficient balance"
	ReasonSameActor           = "sender and receiver must differ"
	ReasonTransferNotPositive = "transfer amount must be positive"
)

// IsValid reports whether k is a known kind.
func (k EntryKind) IsValid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindPurchase, KindTransfer,
		KindPayroll, KindPremium, KindReimbursement, KindAdjustment:
		return true
	}
	return false
}

// LedgerEntry is one monetary movement for an actor inside a scope.
// Entries are never deleted; the only mutation is the one-way void flag.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"`
	Scope       TenantScope     `json:"scope"`
	ActorID     string          `json:"actorID"` // owning actor
	Amount      decimal.Decimal `json:"amount"`  // signed
	Kind        EntryKind       `json:"kind"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
	IsVoid      bool            `json:"isVoid"`
	VoidedAt    *time.Time      `json:"voidedAt,omitempty"`
	VoidedBy    *string         `json:"voidedBy,omitempty"`
}

// ReimbursableAmount is the magnitude a linked-entry claim can recover.
func (e LedgerEntry) ReimbursableAmount() decimal.Decimal {
	return e.Amount.Abs()
}
