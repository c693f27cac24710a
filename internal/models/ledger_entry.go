package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row of ledger_entries.
type LedgerEntry struct {
	EntryID     string          `db:"entry_id"`
	OwnerID     string          `db:"owner_id"`
	SubGroupKey string          `db:"sub_group_key"`
	ActorID     string          `db:"actor_id"`
	Amount      decimal.Decimal `db:"amount"`
	Kind        string          `db:"kind"`
	Description string          `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
	CreatedBy   string          `db:"created_by"`
	IsVoid      bool            `db:"is_void"`
	VoidedAt    *time.Time      `db:"voided_at"`
	VoidedBy    sql.NullString  `db:"voided_by"`
}
