package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
)

// EnrollmentReader defines read operations for enrollments
type EnrollmentReader interface {
	FindEnrollmentByID(ctx context.Context, scope domain.TenantScope, enrollmentID string) (*domain.Enrollment, error)

	// FindEnrollmentForActor returns the actor's enrollment in the policy,
	// preferring an active one over the most recent cancelled one.
	FindEnrollmentForActor(ctx context.Context, scope domain.TenantScope, actorID, policyID string) (*domain.Enrollment, error)

	// ListEnrollments lists enrollments in scope. An empty actorID lists all of them.
	ListEnrollments(ctx context.Context, scope domain.TenantScope, actorID string) ([]domain.Enrollment, error)
}

// EnrollmentWriter defines write operations for enrollments
type EnrollmentWriter interface {
	// SaveEnrollment inserts a new enrollment. A second active enrollment for
	// the same actor and policy returns apperrors.ErrDuplicate.
	SaveEnrollment(ctx context.Context, enrollment domain.Enrollment) error

	UpdateEnrollmentStatus(ctx context.Context, scope domain.TenantScope, enrollmentID string, status domain.EnrollmentStatus, cancelledAt *time.Time, updatedBy string, updatedAt time.Time) error
	UpdatePaymentStatus(ctx context.Context, scope domain.TenantScope, enrollmentID string, paymentCurrent bool, updatedBy string, updatedAt time.Time) error
}

// EnrollmentRepositoryFacade combines all enrollment-related repository interfaces
type EnrollmentRepositoryFacade interface {
	EnrollmentReader
	EnrollmentWriter
}

// EnrollmentTxRepository is the enrollment view available inside a UnitOfWork.
type EnrollmentTxRepository interface {
	EnrollmentRepositoryFacade

	// FindEnrollmentByIDForUpdate locks the enrollment row. Holding it
	// serializes claim submissions and decisions of the same enrollment.
	FindEnrollmentByIDForUpdate(ctx context.Context, scope domain.TenantScope, enrollmentID string) (*domain.Enrollment, error)
}
