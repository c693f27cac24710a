package domain

import "time"

// EnrollmentStatus is the lifecycle state of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// Enrollment binds an actor to a policy.
type Enrollment struct {
	EnrollmentID   string           `json:"enrollmentID"`
	Scope          TenantScope      `json:"scope"`
	ActorID        string           `json:"actorID"`
	PolicyID       string           `json:"policyID"`
	EnrolledAt     time.Time        `json:"enrolledAt"`
	CoverageStart  time.Time        `json:"coverageStart"`
	Status         EnrollmentStatus `json:"status"`
	PaymentCurrent bool             `json:"paymentCurrent"`
	PremiumEntryID *string          `json:"premiumEntryID,omitempty"`
	CancelledAt    *time.Time       `json:"cancelledAt,omitempty"`
	AuditFields
}

// IsCoverageActive is true iff the waiting period has elapsed and payments are current.
func (e Enrollment) IsCoverageActive(now time.Time) bool {
	return !now.Before(e.CoverageStart) && e.PaymentCurrent
}

// CoverageStartFor returns the instant coverage begins for an enrollment made at enrolledAt.
func CoverageStartFor(enrolledAt time.Time, waitingPeriodDays int) time.Time {
	return enrolledAt.AddDate(0, 0, waitingPeriodDays)
}
