package mapping

import (
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/SscSPs/claims_ledger/internal/models"
)

// ToModelPolicy converts a domain Policy to a model Policy
func ToModelPolicy(d domain.Policy) models.Policy {
	return models.Policy{
		PolicyID:                d.PolicyID,
		OwnerID:                 d.Scope.OwnerID,
		SubGroupKey:             d.Scope.SubGroupKey,
		Name:                    d.Name,
		Description:             d.Description,
		ClaimType:               string(d.ClaimType),
		Premium:                 d.Premium,
		WaitingPeriodDays:       d.WaitingPeriodDays,
		ClaimFilingDeadlineDays: d.ClaimFilingDeadlineDays,
		MaxClaimsPerPeriod:      d.MaxClaimsPerPeriod,
		MaxPayoutPerPeriod:      d.MaxPayoutPerPeriod,
		MaxPayoutPerClaim:       toNullDecimal(d.MaxPayoutPerClaim),
		PeriodUnit:              string(d.Period),
		DeferredPayout:          d.DeferredPayout,
		IsActive:                d.IsActive,
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPolicy converts a model Policy to a domain Policy
func ToDomainPolicy(m models.Policy) domain.Policy {
	return domain.Policy{
		PolicyID:                m.PolicyID,
		Scope:                   domain.TenantScope{OwnerID: m.OwnerID, SubGroupKey: m.SubGroupKey},
		Name:                    m.Name,
		Description:             m.Description,
		ClaimType:               domain.ClaimType(m.ClaimType),
		Premium:                 m.Premium,
		WaitingPeriodDays:       m.WaitingPeriodDays,
		ClaimFilingDeadlineDays: m.ClaimFilingDeadlineDays,
		MaxClaimsPerPeriod:      m.MaxClaimsPerPeriod,
		MaxPayoutPerPeriod:      m.MaxPayoutPerPeriod,
		MaxPayoutPerClaim:       fromNullDecimal(m.MaxPayoutPerClaim),
		Period:                  domain.PeriodUnit(m.PeriodUnit),
		DeferredPayout:          m.DeferredPayout,
		IsActive:                m.IsActive,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}
