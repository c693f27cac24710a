package models

import "github.com/shopspring/decimal"

// Policy is a row of policies.
type Policy struct {
	PolicyID                string              `db:"policy_id"`
	OwnerID                 string              `db:"owner_id"`
	SubGroupKey             string              `db:"sub_group_key"`
	Name                    string              `db:"name"`
	Description             string              `db:"description"`
	ClaimType               string              `db:"claim_type"`
	Premium                 decimal.Decimal     `db:"premium"`
	WaitingPeriodDays       int                 `db:"waiting_period_days"`
	ClaimFilingDeadlineDays int                 `db:"claim_filing_deadline_days"`
	MaxClaimsPerPeriod      int                 `db:"max_claims_per_period"`
	MaxPayoutPerPeriod      decimal.Decimal     `db:"max_payout_per_period"`
	MaxPayoutPerClaim       decimal.NullDecimal `db:"max_payout_per_claim"`
	PeriodUnit              string              `db:"period_unit"`
	DeferredPayout          bool                `db:"deferred_payout"`
	IsActive                bool                `db:"is_active"`
	AuditFields
}
