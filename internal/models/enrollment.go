package models

import (
	"database/sql"
	"time"
)

// Enrollment is a row of enrollments.
type Enrollment struct {
	EnrollmentID   string         `db:"enrollment_id"`
	OwnerID        string         `db:"owner_id"`
	SubGroupKey    string         `db:"sub_group_key"`
	ActorID        string         `db:"actor_id"`
	PolicyID       string         `db:"policy_id"`
	EnrolledAt     time.Time      `db:"enrolled_at"`
	CoverageStart  time.Time      `db:"coverage_start"`
	Status         string         `db:"status"`
	PaymentCurrent bool           `db:"payment_current"`
	PremiumEntryID sql.NullString `db:"premium_entry_id"`
	CancelledAt    *time.Time     `db:"cancelled_at"`
	AuditFields
}
