package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Claim is a row of claims.
type Claim struct {
	ClaimID         string              `db:"claim_id"`
	OwnerID         string              `db:"owner_id"`
	SubGroupKey     string              `db:"sub_group_key"`
	EnrollmentID    string              `db:"enrollment_id"`
	PolicyID        string              `db:"policy_id"`
	ActorID         string              `db:"actor_id"`
	LinkedEntryID   sql.NullString      `db:"linked_entry_id"`
	RequestedAmount decimal.NullDecimal `db:"requested_amount"`
	IncidentDate    time.Time           `db:"incident_date"`
	Description     string              `db:"description"`
	Status          string              `db:"status"`
	ApprovedAmount  decimal.NullDecimal `db:"approved_amount"`
	RejectionReason sql.NullString      `db:"rejection_reason"`
	FiledAt         time.Time           `db:"filed_at"`
	DecidedAt       *time.Time          `db:"decided_at"`
	DecidedBy       sql.NullString      `db:"decided_by"`
	PaidAt          *time.Time          `db:"paid_at"`
	PayoutEntryID   sql.NullString      `db:"payout_entry_id"`
}
