package dto

import (
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePolicyRequest defines the data needed to create a reimbursement policy.
type CreatePolicyRequest struct {
	Name                    string            `json:"name" binding:"required,max=100"`
	Description             string            `json:"description" binding:"max=1000"`
	ClaimType               domain.ClaimType  `json:"claimType" binding:"required,oneof=linked_entry free_form"`
	Premium                 decimal.Decimal   `json:"premium" binding:"decimal_gte0"`
	WaitingPeriodDays       int               `json:"waitingPeriodDays" binding:"min=0"`
	ClaimFilingDeadlineDays int               `json:"claimFilingDeadlineDays" binding:"min=0"`
	MaxClaimsPerPeriod      int               `json:"maxClaimsPerPeriod" binding:"min=0"`
	MaxPayoutPerPeriod      decimal.Decimal   `json:"maxPayoutPerPeriod" binding:"decimal_gte0"`
	MaxPayoutPerClaim       *decimal.Decimal  `json:"maxPayoutPerClaim" binding:"omitempty,decimal_gt0"`
	Period                  domain.PeriodUnit `json:"period" binding:"omitempty,oneof=weekly monthly quarterly yearly"`
	DeferredPayout          bool              `json:"deferredPayout"`
}

// UpdatePolicyRequest defines the fields an owner may change. Nil means unchanged.
type UpdatePolicyRequest struct {
	Name                    *string            `json:"name" binding:"omitempty,max=100"`
	Description             *string            `json:"description" binding:"omitempty,max=1000"`
	Premium                 *decimal.Decimal   `json:"premium" binding:"omitempty,decimal_gte0"`
	WaitingPeriodDays       *int               `json:"waitingPeriodDays" binding:"omitempty,min=0"`
	ClaimFilingDeadlineDays *int               `json:"claimFilingDeadlineDays" binding:"omitempty,min=0"`
	MaxClaimsPerPeriod      *int               `json:"maxClaimsPerPeriod" binding:"omitempty,min=0"`
	MaxPayoutPerPeriod      *decimal.Decimal   `json:"maxPayoutPerPeriod" binding:"omitempty,decimal_gte0"`
	MaxPayoutPerClaim       *decimal.Decimal   `json:"maxPayoutPerClaim" binding:"omitempty,decimal_gt0"`
	ClearMaxPayoutPerClaim  bool               `json:"clearMaxPayoutPerClaim"`
	Period                  *domain.PeriodUnit `json:"period" binding:"omitempty,oneof=weekly monthly quarterly yearly"`
	DeferredPayout          *bool              `json:"deferredPayout"`
}

// ListPoliciesParams are the query parameters for listing policies.
type ListPoliciesParams struct {
	IncludeInactive bool `form:"includeInactive"`
}

// PolicyResponse defines the data returned for a policy.
type PolicyResponse struct {
	PolicyID                string            `json:"policyID"`
	OwnerID                 string            `json:"ownerID"`
	Name                    string            `json:"name"`
	Description             string            `json:"description"`
	ClaimType               domain.ClaimType  `json:"claimType"`
	Premium                 decimal.Decimal   `json:"premium" binding:"decimal_gte0"`
	WaitingPeriodDays       int               `json:"waitingPeriodDays"`
	ClaimFilingDeadlineDays int               `json:"claimFilingDeadlineDays"`
	MaxClaimsPerPeriod      int               `json:"maxClaimsPerPeriod"`
	MaxPayoutPerPeriod      decimal.Decimal   `json:"maxPayoutPerPeriod" binding:"decimal_gte0"`
	MaxPayoutPerClaim       *decimal.Decimal  `json:"maxPayoutPerClaim,omitempty"`
	Period                  domain.PeriodUnit `json:"period"`
	DeferredPayout          bool              `json:"deferredPayout"`
	IsActive                bool              `json:"isActive"`
	CreatedAt               time.Time         `json:"createdAt"`
	LastUpdatedAt           time.Time         `json:"lastUpdatedAt"`
}

// ListPoliciesResponse wraps a list of policies.
type ListPoliciesResponse struct {
	Policies []PolicyResponse `json:"policies"`
}

func ToPolicyResponse(p *domain.Policy) PolicyResponse {
	return PolicyResponse{
		PolicyID:                p.PolicyID,
		OwnerID:                 p.Scope.OwnerID,
		Name:                    p.Name,
		Description:             p.Description,
		ClaimType:               p.ClaimType,
		Premium:                 p.Premium,
		WaitingPeriodDays:       p.WaitingPeriodDays,
		ClaimFilingDeadlineDays: p.ClaimFilingDeadlineDays,
		MaxClaimsPerPeriod:      p.MaxClaimsPerPeriod,
		MaxPayoutPerPeriod:      p.MaxPayoutPerPeriod,
		MaxPayoutPerClaim:       p.MaxPayoutPerClaim,
		Period:                  p.Period,
		DeferredPayout:          p.DeferredPayout,
		IsActive:                p.IsActive,
		CreatedAt:               p.CreatedAt,
		LastUpdatedAt:           p.LastUpdatedAt,
	}
}

func ToListPoliciesResponse(policies []domain.Policy) ListPoliciesResponse {
	out := make([]PolicyResponse, len(policies))
	for i := range policies {
		out[i] = ToPolicyResponse(&policies[i])
	}
	return ListPoliciesResponse{Policies: out}
}
