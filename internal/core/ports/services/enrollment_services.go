package services

import (
	"context"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/SscSPs/claims_ledger/internal/dto"
)

// EnrollmentReaderSvc defines read operations for enrollments
type EnrollmentReaderSvc interface {
	GetEnrollment(ctx context.Context, scope domain.TenantScope, actorID, policyID string) (*domain.Enrollment, error)
	ListEnrollments(ctx context.Context, scope domain.TenantScope, requestingUserID string, params dto.ListEnrollmentsParams) ([]domain.Enrollment, error)

	// IsCoverageActive is true iff the waiting period has elapsed and payments are current.
	IsCoverageActive(enrollment domain.Enrollment) bool
}

// EnrollmentWriterSvc defines write operations for enrollments
type EnrollmentWriterSvc interface {
	// Enroll buys coverage: debits the premium and creates the enrollment atomically.
	Enroll(ctx context.Context, scope domain.TenantScope, policyID string, req dto.EnrollRequest, requestingUserID string) (*domain.Enrollment, error)
	CancelEnrollment(ctx context.Context, scope domain.TenantScope, enrollmentID string, requestingUserID string) (*domain.Enrollment, error)
	SetPaymentStatus(ctx context.Context, scope domain.TenantScope, enrollmentID string, req dto.SetPaymentStatusRequest, requestingUserID string) (*domain.Enrollment, error)
}

// EnrollmentSvcFacade combines all enrollment-related service interfaces
type EnrollmentSvcFacade interface {
	EnrollmentReaderSvc
	EnrollmentWriterSvc
}
