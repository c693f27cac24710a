package dto

import (
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
)

// EnrollRequest enrolls an actor in a policy. ActorID defaults to the caller;
// only the scope owner may enroll someone else.
type EnrollRequest struct {
	ActorID string `json:"actorID"`
}

// SetPaymentStatusRequest marks an enrollment's premium payments current or lapsed.
type SetPaymentStatusRequest struct {
	PaymentCurrent *bool `json:"paymentCurrent" binding:"required"`
}

// ListEnrollmentsParams are the query parameters for listing enrollments.
type ListEnrollmentsParams struct {
	ActorID string `form:"actorID"`
}

// EnrollmentResponse defines the data returned for an enrollment.
type EnrollmentResponse struct {
	EnrollmentID   string                  `json:"enrollmentID"`
	ActorID        string                  `json:"actorID"`
	PolicyID       string                  `json:"policyID"`
	EnrolledAt     time.Time               `json:"enrolledAt"`
	CoverageStart  time.Time               `json:"coverageStart"`
	Status         domain.EnrollmentStatus `json:"status"`
	PaymentCurrent bool                    `json:"paymentCurrent"`
	CoverageActive bool                    `json:"coverageActive"`
	PremiumEntryID *string                 `json:"premiumEntryID,omitempty"`
	CancelledAt    *time.Time              `json:"cancelledAt,omitempty"`
}

// ListEnrollmentsResponse wraps a list of enrollments.
type ListEnrollmentsResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
}

func ToEnrollmentResponse(e *domain.Enrollment, coverageActive bool) EnrollmentResponse {
	return EnrollmentResponse{
		EnrollmentID:   e.EnrollmentID,
		ActorID:        e.ActorID,
		PolicyID:       e.PolicyID,
		EnrolledAt:     e.EnrolledAt,
		CoverageStart:  e.CoverageStart,
		Status:         e.Status,
		PaymentCurrent: e.PaymentCurrent,
		CoverageActive: coverageActive,
		PremiumEntryID: e.PremiumEntryID,
		CancelledAt:    e.CancelledAt,
	}
}

// ToListEnrollmentsResponse asks coverageActive for the coverage flag of each enrollment.
func ToListEnrollmentsResponse(enrollments []domain.Enrollment, coverageActive func(domain.Enrollment) bool) ListEnrollmentsResponse {
	out := make([]EnrollmentResponse, len(enrollments))
	for i := range enrollments {
		out[i] = ToEnrollmentResponse(&enrollments[i], coverageActive(enrollments[i]))
	}
	return ListEnrollmentsResponse{Enrollments: out}
}
