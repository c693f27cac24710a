package mapping

import (
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/SscSPs/claims_ledger/internal/models"
)

// ToModelClaim converts a domain Claim to a model Claim
func ToModelClaim(d domain.Claim) models.Claim {
	return models.Claim{
		ClaimID:         d.ClaimID,
		OwnerID:         d.Scope.OwnerID,
		SubGroupKey:     d.Scope.SubGroupKey,
		EnrollmentID:    d.EnrollmentID,
		PolicyID:        d.PolicyID,
		ActorID:         d.ActorID,
		LinkedEntryID:   toNullString(d.LinkedEntryID),
		RequestedAmount: toNullDecimal(d.RequestedAmount),
		IncidentDate:    d.IncidentDate,
		Description:     d.Description,
		Status:          string(d.Status),
		ApprovedAmount:  toNullDecimal(d.ApprovedAmount),
		RejectionReason: toNullString(d.RejectionReason),
		FiledAt:         d.FiledAt,
		DecidedAt:       d.DecidedAt,
		DecidedBy:       toNullString(d.DecidedBy),
		PaidAt:          d.PaidAt,
		PayoutEntryID:   toNullString(d.PayoutEntryID),
	}
}

// ToDomainClaim converts a model Claim to a domain Claim
func ToDomainClaim(m models.Claim) domain.Claim {
	return domain.Claim{
		ClaimID:         m.ClaimID,
		Scope:           domain.TenantScope{OwnerID: m.OwnerID, SubGroupKey: m.SubGroupKey},
		EnrollmentID:    m.EnrollmentID,
		PolicyID:        m.PolicyID,
		ActorID:         m.ActorID,
		LinkedEntryID:   fromNullString(m.LinkedEntryID),
		RequestedAmount: fromNullDecimal(m.RequestedAmount),
		IncidentDate:    m.IncidentDate,
		Description:     m.Description,
		Status:          domain.ClaimStatus(m.Status),
		ApprovedAmount:  fromNullDecimal(m.ApprovedAmount),
		RejectionReason: fromNullString(m.RejectionReason),
		FiledAt:         m.FiledAt,
		DecidedAt:       m.DecidedAt,
		DecidedBy:       fromNullString(m.DecidedBy),
		PaidAt:          m.PaidAt,
		PayoutEntryID:   fromNullString(m.PayoutEntryID),
	}
}
