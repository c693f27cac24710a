package mapping

import (
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/SscSPs/claims_ledger/internal/models"
)

// ToModelEnrollment converts a domain Enrollment to a model Enrollment
func ToModelEnrollment(d domain.Enrollment) models.Enrollment {
	return models.Enrollment{
		EnrollmentID:   d.EnrollmentID,
		OwnerID:        d.Scope.OwnerID,
		SubGroupKey:    d.Scope.SubGroupKey,
		ActorID:        d.ActorID,
		PolicyID:       d.PolicyID,
		EnrolledAt:     d.EnrolledAt,
		CoverageStart:  d.CoverageStart,
		Status:         string(d.Status),
		PaymentCurrent: d.PaymentCurrent,
		PremiumEntryID: toNullString(d.PremiumEntryID),
		CancelledAt:    d.CancelledAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEnrollment converts a model Enrollment to a domain Enrollment
func ToDomainEnrollment(m models.Enrollment) domain.Enrollment {
	return domain.Enrollment{
		EnrollmentID:   m.EnrollmentID,
		Scope:          domain.TenantScope{OwnerID: m.OwnerID, SubGroupKey: m.SubGroupKey},
		ActorID:        m.ActorID,
		PolicyID:       m.PolicyID,
		EnrolledAt:     m.EnrolledAt,
		CoverageStart:  m.CoverageStart,
		Status:         domain.EnrollmentStatus(m.Status),
		PaymentCurrent: m.PaymentCurrent,
		PremiumEntryID: fromNullString(m.PremiumEntryID),
		CancelledAt:    m.CancelledAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
