package services

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/google/uuid"
)

const maxClaimDescriptionLength = 1000

func reject(reason string) error {
	return apperrors.NewRejectedError(reason)
}

// SubmitClaim runs the eligibility checks in order and inserts the claim as
// pending. The first failing check is reported.
func (s *claimService) SubmitClaim(ctx context.Context, scope domain.TenantScope, actorID string, req dto.SubmitClaimRequest) (*domain.Claim, error) {
	claim, err := s.submitClaim(ctx, scope, actorID, req)
	s.metrics.ClaimSubmitted(outcomeOf(err))
	if err != nil {
		var rejected *apperrors.RejectedError
		if errors.As(err, &rejected) {
			s.LogInfo(ctx, "Claim rejected at submission",
				slog.String("actor_id", actorID),
				slog.String("policy_id", req.PolicyID),
				slog.String("reason", rejected.Reason))
		} else if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Claim submission failed",
				slog.String("actor_id", actorID),
				slog.String("policy_id", req.PolicyID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Claim submitted",
		slog.String("claim_id", claim.ClaimID),
		slog.String("enrollment_id", claim.EnrollmentID))
	return claim, nil
}

func (s *claimService) submitClaim(ctx context.Context, scope domain.TenantScope, actorID string, req dto.SubmitClaimRequest) (*domain.Claim, error) {
	var verrs apperrors.ValidationErrors
	if actorID == "" {
		verrs.Add("actorID", "actor is required")
	}
	if req.PolicyID == "" {
		verrs.Add("policyID", "policy is required")
	}
	if req.IncidentDate.IsZero() {
		verrs.Add("incidentDate", "incident date is required")
	}
	if utf8.RuneCountInString(req.Description) > maxClaimDescriptionLength {
		verrs.Add("description", domain.ReasonDescriptionTooLong)
	}
	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	var claim domain.Claim
	err := s.runInTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		policy, err := uow.Policies().FindPolicyByID(ctx, scope, req.PolicyID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("policy")
			}
			return err
		}

		now := s.now()
		enrollment, err := s.lockEligibleEnrollment(ctx, uow, scope, actorID, policy, now)
		if err != nil {
			return err
		}

		if err := s.checkClaimSubject(ctx, uow, scope, actorID, policy, req); err != nil {
			return err
		}

		if req.IncidentDate.After(now) {
			return reject(domain.ReasonIncidentInFuture)
		}
		if policy.ClaimFilingDeadlineDays > 0 && now.After(req.IncidentDate.AddDate(0, 0, policy.ClaimFilingDeadlineDays)) {
			return reject(domain.ReasonFilingDeadlinePassed)
		}

		if policy.MaxClaimsPerPeriod > 0 {
			period := s.currentPeriod(policy.Period)
			count, err := uow.Claims().CountActiveClaimsFiledBetween(ctx, scope, enrollment.EnrollmentID, period.Start, period.End)
			if err != nil {
				return err
			}
			if count >= policy.MaxClaimsPerPeriod {
				return reject(domain.ReasonClaimLimitReached)
			}
		}

		if req.LinkedEntryID != nil {
			_, err := uow.Claims().FindClaimByLinkedEntry(ctx, scope, *req.LinkedEntryID)
			switch {
			case err == nil:
				return apperrors.NewDuplicateRejection(domain.ReasonDuplicate)
			case !errors.Is(err, apperrors.ErrNotFound):
				return err
			}
		}

		claim = domain.Claim{
			ClaimID:         uuid.NewString(),
			Scope:           scope,
			EnrollmentID:    enrollment.EnrollmentID,
			PolicyID:        policy.PolicyID,
			ActorID:         actorID,
			LinkedEntryID:   req.LinkedEntryID,
			RequestedAmount: req.RequestedAmount,
			IncidentDate:    req.IncidentDate.UTC(),
			Description:     req.Description,
			Status:          domain.ClaimPending,
			FiledAt:         now,
		}
		// Racing submissions for the same entry surface here as ErrDuplicate.
		if err := uow.Claims().InsertClaim(ctx, claim); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return apperrors.NewDuplicateRejection(domain.ReasonDuplicate)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// lockEligibleEnrollment finds the actor's enrollment in policy, locks it and
// checks that coverage is active.
func (s *claimService) lockEligibleEnrollment(ctx context.Context, uow portsrepo.UnitOfWork, scope domain.TenantScope, actorID string, policy *domain.Policy, now time.Time) (*domain.Enrollment, error) {
	found, err := uow.Enrollments().FindEnrollmentForActor(ctx, scope, actorID, policy.PolicyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, reject(domain.ReasonNotEnrolled)
		}
		return nil, err
	}
	enrollment, err := uow.Enrollments().FindEnrollmentByIDForUpdate(ctx, scope, found.EnrollmentID)
	if err != nil {
		return nil, err
	}

	switch {
	case enrollment.ActorID != actorID:
		return nil, reject(domain.ReasonNotEnrolled)
	case enrollment.Status != domain.EnrollmentActive:
		return nil, reject(domain.ReasonEnrollmentCancelled)
	case !policy.IsActive:
		return nil, reject(domain.ReasonPolicyInactive)
	case now.Before(enrollment.CoverageStart):
		return nil, reject(domain.ReasonWaitingPeriod)
	case !enrollment.PaymentCurrent:
		return nil, reject(domain.ReasonPaymentNotCurrent)
	}
	return enrollment, nil
}

// checkClaimSubject validates what the claim reimburses: a linked entry the
// actor owns, or a requested amount for free-form policies.
func (s *claimService) checkClaimSubject(ctx context.Context, uow portsrepo.UnitOfWork, scope domain.TenantScope, actorID string, policy *domain.Policy, req dto.SubmitClaimRequest) error {
	if policy.ClaimType == domain.ClaimTypeFreeForm {
		switch {
		case req.LinkedEntryID != nil:
			return reject(domain.ReasonLinkedEntryNotAllowed)
		case req.RequestedAmount == nil:
			return reject(domain.ReasonAmountRequired)
		case !req.RequestedAmount.IsPositive():
			return reject(domain.ReasonAmountNotPositive)
		}
		return nil
	}

	if req.LinkedEntryID == nil || *req.LinkedEntryID == "" {
		return reject(domain.ReasonLinkedEntryRequired)
	}
	entry, err := uow.Ledger().FindEntryByIDForUpdate(ctx, scope, *req.LinkedEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return reject(domain.ReasonLinkedEntryNotFound)
		}
		return err
	}

	switch {
	case entry.IsVoid:
		return reject(domain.ReasonLinkedEntryVoided)
	case entry.ActorID != actorID:
		return reject(domain.ReasonNotEntryOwner)
	case req.RequestedAmount == nil:
		return nil
	case !req.RequestedAmount.IsPositive():
		return reject(domain.ReasonAmountNotPositive)
	case req.RequestedAmount.GreaterThan(entry.ReimbursableAmount()):
		return reject(domain.ReasonAmountExceedsEntry)
	}
	return nil
}
