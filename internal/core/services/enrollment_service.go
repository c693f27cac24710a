package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/google/uuid"
)

type enrollmentService struct {
	BaseService
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade
}

// NewEnrollmentService creates the enrollment manager.
func NewEnrollmentService(repo portsrepo.EnrollmentRepositoryFacade, txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.EnrollmentSvcFacade {
	return &enrollmentService{
		BaseService:    newBaseService(txManager, options...),
		enrollmentRepo: repo,
	}
}

var _ portssvc.EnrollmentSvcFacade = (*enrollmentService)(nil)

func (s *enrollmentService) GetEnrollment(ctx context.Context, scope domain.TenantScope, actorID, policyID string) (*domain.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.FindEnrollmentForActor(ctx, scope, actorID, policyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("enrollment")
		}
		s.LogError(ctx, err, "Failed to get enrollment",
			slog.String("actor_id", actorID),
			slog.String("policy_id", policyID))
		return nil, err
	}
	return enrollment, nil
}

func (s *enrollmentService) ListEnrollments(ctx context.Context, scope domain.TenantScope, requestingUserID string, params dto.ListEnrollmentsParams) ([]domain.Enrollment, error) {
	actorID := params.ActorID
	if !scope.IsOwner(requestingUserID) {
		if actorID != "" && actorID != requestingUserID {
			return nil, apperrors.NewForbiddenError("participants may only list their own enrollments")
		}
		actorID = requestingUserID
	}
	enrollments, err := s.enrollmentRepo.ListEnrollments(ctx, scope, actorID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list enrollments")
		return nil, err
	}
	return enrollments, nil
}

func (s *enrollmentService) IsCoverageActive(enrollment domain.Enrollment) bool {
	return enrollment.Status == domain.EnrollmentActive && enrollment.IsCoverageActive(s.now())
}

func (s *enrollmentService) Enroll(ctx context.Context, scope domain.TenantScope, policyID string, req dto.EnrollRequest, requestingUserID string) (*domain.Enrollment, error) {
	actorID := req.ActorID
	if actorID == "" {
		actorID = requestingUserID
	}
	if err := s.requireSelfOrOwner(ctx, scope, requestingUserID, actorID, "enroll another actor"); err != nil {
		return nil, err
	}

	var enrollment domain.Enrollment
	err := s.runInTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		policy, err := uow.Policies().FindPolicyByID(ctx, scope, policyID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("policy")
			}
			return err
		}
		if !policy.IsActive {
			var verrs apperrors.ValidationErrors
			verrs.Add("policyID", domain.ReasonPolicyInactive)
			return verrs
		}

		existing, err := uow.Enrollments().FindEnrollmentForActor(ctx, scope, actorID, policyID)
		switch {
		case err == nil && existing.Status == domain.EnrollmentActive:
			return apperrors.NewAppError(apperrors.ErrDuplicate, "actor is already enrolled in this policy", nil)
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			return err
		}

		now := s.now()
		enrollment = domain.Enrollment{
			EnrollmentID:   uuid.NewString(),
			Scope:          scope,
			ActorID:        actorID,
			PolicyID:       policyID,
			EnrolledAt:     now,
			CoverageStart:  domain.CoverageStartFor(now, policy.WaitingPeriodDays),
			Status:         domain.EnrollmentActive,
			PaymentCurrent: true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		}

		if policy.Premium.IsPositive() {
			balance, err := uow.Ledger().SumBalance(ctx, scope, actorID)
			if err != nil {
				return err
			}
			if balance.LessThan(policy.Premium) {
				var verrs apperrors.ValidationErrors
				verrs.Add("premium", domain.ReasonInsufficientBalance)
				return verrs
			}
			premium := domain.LedgerEntry{
				EntryID:     uuid.NewString(),
				Scope:       scope,
				ActorID:     actorID,
				Amount:      policy.Premium.Neg(),
				Kind:        domain.KindPremium,
				Description: "Premium for " + policy.Name,
				CreatedAt:   now,
				CreatedBy:   requestingUserID,
			}
			if err := uow.Ledger().InsertEntry(ctx, premium); err != nil {
				return err
			}
			enrollment.PremiumEntryID = &premium.EntryID
		}

		if err := uow.Enrollments().SaveEnrollment(ctx, enrollment); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return apperrors.NewAppError(apperrors.ErrDuplicate, "actor is already enrolled in this policy", err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to enroll",
				slog.String("actor_id", actorID),
				slog.String("policy_id", policyID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Actor enrolled",
		slog.String("enrollment_id", enrollment.EnrollmentID),
		slog.String("actor_id", actorID),
		slog.String("policy_id", policyID))
	return &enrollment, nil
}

func (s *enrollmentService) CancelEnrollment(ctx context.Context, scope domain.TenantScope, enrollmentID string, requestingUserID string) (*domain.Enrollment, error) {
	var cancelled *domain.Enrollment
	err := s.runInTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		enrollment, err := uow.Enrollments().FindEnrollmentByIDForUpdate(ctx, scope, enrollmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("enrollment")
			}
			return err
		}
		if err := s.requireSelfOrOwner(ctx, scope, requestingUserID, enrollment.ActorID, "cancel another actor's enrollment"); err != nil {
			return err
		}
		if enrollment.Status == domain.EnrollmentCancelled {
			return apperrors.NewAppError(apperrors.ErrConflict, "enrollment is already cancelled", nil)
		}

		now := s.now()
		if err := uow.Enrollments().UpdateEnrollmentStatus(ctx, scope, enrollmentID, domain.EnrollmentCancelled, &now, requestingUserID, now); err != nil {
			return err
		}
		enrollment.Status = domain.EnrollmentCancelled
		enrollment.CancelledAt = &now
		enrollment.LastUpdatedAt = now
		enrollment.LastUpdatedBy = requestingUserID
		cancelled = enrollment
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Enrollment cancelled", slog.String("enrollment_id", enrollmentID))
	return cancelled, nil
}

func (s *enrollmentService) SetPaymentStatus(ctx context.Context, scope domain.TenantScope, enrollmentID string, req dto.SetPaymentStatusRequest, requestingUserID string) (*domain.Enrollment, error) {
	if err := s.requireOwner(ctx, scope, requestingUserID, "change payment status"); err != nil {
		return nil, err
	}
	if req.PaymentCurrent == nil {
		var verrs apperrors.ValidationErrors
		verrs.Add("paymentCurrent", "payment status is required")
		return nil, verrs
	}

	var updated *domain.Enrollment
	err := s.runInTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		enrollment, err := uow.Enrollments().FindEnrollmentByIDForUpdate(ctx, scope, enrollmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("enrollment")
			}
			return err
		}

		now := s.now()
		if err := uow.Enrollments().UpdatePaymentStatus(ctx, scope, enrollmentID, *req.PaymentCurrent, requestingUserID, now); err != nil {
			return err
		}
		enrollment.PaymentCurrent = *req.PaymentCurrent
		enrollment.LastUpdatedAt = now
		enrollment.LastUpdatedBy = requestingUserID
		updated = enrollment
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Enrollment payment status changed",
		slog.String("enrollment_id", enrollmentID),
		slog.Bool("payment_current", *req.PaymentCurrent))
	return updated, nil
}
