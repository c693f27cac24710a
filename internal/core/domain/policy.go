package domain

import (
	"github.com/shopspring/decimal"
)

// ClaimType decides what a claim under a policy must reference.
type ClaimType string

const (
	// ClaimTypeLinkedEntry claims reimburse one specific ledger entry.
	ClaimTypeLinkedEntry ClaimType = "linked_entry"
	// ClaimTypeFreeForm claims carry a requested amount instead.
	ClaimTypeFreeForm ClaimType = "free_form"
)

func (t ClaimType) IsValid() bool {
	return t == ClaimTypeLinkedEntry || t == ClaimTypeFreeForm
}

// Policy is a reimbursement product offered inside a scope.
// Policies are soft-deactivated, never deleted.
type Policy struct {
	PolicyID                string           `json:"policyID"`
	Scope                   TenantScope      `json:"scope"` // Scope.OwnerID is the policy owner
	Name                    string           `json:"name"`
	Description             string           `json:"description"`
	ClaimType               ClaimType        `json:"claimType"`
	Premium                 decimal.Decimal  `json:"premium"`
	WaitingPeriodDays       int              `json:"waitingPeriodDays"`
	ClaimFilingDeadlineDays int              `json:"claimFilingDeadlineDays"`
	MaxClaimsPerPeriod      int              `json:"maxClaimsPerPeriod"`
	MaxPayoutPerPeriod      decimal.Decimal  `json:"maxPayoutPerPeriod"`
	MaxPayoutPerClaim       *decimal.Decimal `json:"maxPayoutPerClaim,omitempty"`
	Period                  PeriodUnit       `json:"period"`
	DeferredPayout          bool             `json:"deferredPayout"`
	IsActive                bool             `json:"isActive"`
	AuditFields
}
