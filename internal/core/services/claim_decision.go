package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/audit"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultRejectionReason = "rejected by decider"

// DecideClaim approves or rejects a pending claim. Everything the decision
// depends on is re-read under lock inside the transaction. An approval that
// finds the period cap exhausted returns ValidationErrors carrying
// ReasonPeriodCapExhausted and leaves the claim pending, so it can be approved
// in a later period or rejected explicitly.
func (s *claimService) DecideClaim(ctx context.Context, scope domain.TenantScope, claimID string, deciderID string, req dto.DecideClaimRequest) (*domain.Claim, error) {
	claim, err := s.decideClaim(ctx, scope, claimID, deciderID, req)
	s.metrics.ClaimDecided(string(req.Decision), outcomeOf(err))
	if err != nil {
		s.reportDecisionFailure(ctx, scope, claimID, deciderID, err)
		return nil, err
	}

	s.LogInfo(ctx, "Claim decided",
		slog.String("claim_id", claim.ClaimID),
		slog.String("decision", string(req.Decision)),
		slog.String("status", string(claim.Status)))
	return claim, nil
}

func (s *claimService) decideClaim(ctx context.Context, scope domain.TenantScope, claimID string, deciderID string, req dto.DecideClaimRequest) (*domain.Claim, error) {
	if err := s.requireOwner(ctx, scope, deciderID, "decide claims"); err != nil {
		return nil, err
	}
	var verrs apperrors.ValidationErrors
	if !req.Decision.IsValid() {
		verrs.Add("decision", domain.ReasonDecisionInvalid)
	}
	if req.CapOverride != nil && !req.CapOverride.IsPositive() {
		verrs.Add("capOverride", domain.ReasonCapOverrideInvalid)
	}
	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	var decided *domain.Claim
	err := s.runInTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		decided = nil

		claim, entry, err := s.lockClaim(ctx, uow, scope, claimID)
		if err != nil {
			return err
		}
		var failed apperrors.ValidationErrors
		if claim.Status != domain.ClaimPending {
			failed.Add("status", domain.ReasonNotPending)
		}

		now := s.now()
		if req.Decision == domain.DecisionReject {
			if err := failed.OrNil(); err != nil {
				return err
			}
			reason := strings.TrimSpace(req.Reason)
			if reason == "" {
				reason = defaultRejectionReason
			}
			claim.Status = domain.ClaimRejected
			claim.RejectionReason = &reason
			claim.DecidedAt = &now
			claim.DecidedBy = &deciderID
			if err := saveOutcome(ctx, uow, claim, domain.ClaimPending); err != nil {
				return err
			}
			decided = claim
			return nil
		}

		mismatch := checkLinkedEntry(&failed, claim, entry)
		var (
			policy *domain.Policy
			amount decimal.Decimal
		)
		if claim.Status == domain.ClaimPending {
			policy, err = uow.Policies().FindPolicyByID(ctx, scope, claim.PolicyID)
			if err != nil {
				return err
			}
			amount, err = s.approvableAmount(ctx, uow, &failed, scope, policy, claim, entry, req.CapOverride)
			if err != nil {
				return err
			}
		}
		if len(failed) > 0 {
			if mismatch {
				return integrityError(claim, entry, failed)
			}
			return failed
		}

		claim.ApprovedAmount = &amount
		claim.DecidedAt = &now
		claim.DecidedBy = &deciderID
		if policy.DeferredPayout {
			claim.Status = domain.ClaimApproved
		} else if err := s.settle(ctx, uow, scope, claim, deciderID, now); err != nil {
			return err
		}

		if err := saveOutcome(ctx, uow, claim, domain.ClaimPending); err != nil {
			return err
		}
		decided = claim
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

// PayClaim moves an approved claim to paid and writes its reimbursement
// entry in the same transaction.
func (s *claimService) PayClaim(ctx context.Context, scope domain.TenantScope, claimID string, deciderID string) (*domain.Claim, error) {
	if err := s.requireOwner(ctx, scope, deciderID, "pay claims"); err != nil {
		return nil, err
	}

	var paid *domain.Claim
	err := s.runInTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		paid = nil

		claim, entry, err := s.lockClaim(ctx, uow, scope, claimID)
		if err != nil {
			return err
		}

		var failed apperrors.ValidationErrors
		if claim.Status != domain.ClaimApproved {
			failed.Add("status", domain.ReasonNotApproved)
			return failed
		}
		if mismatch := checkLinkedEntry(&failed, claim, entry); mismatch {
			return integrityError(claim, entry, failed)
		}
		if err := failed.OrNil(); err != nil {
			return err
		}
		if claim.ApprovedAmount == nil {
			return apperrors.NewAppError(apperrors.ErrInternal, "approved claim "+claimID+" has no approved amount", nil)
		}

		if err := s.settle(ctx, uow, scope, claim, deciderID, s.now()); err != nil {
			return err
		}
		if err := saveOutcome(ctx, uow, claim, domain.ClaimApproved); err != nil {
			return err
		}
		paid = claim
		return nil
	})
	if err != nil {
		s.reportDecisionFailure(ctx, scope, claimID, deciderID, err)
		return nil, err
	}

	s.LogInfo(ctx, "Claim paid",
		slog.String("claim_id", paid.ClaimID),
		slog.String("payout_entry_id", *paid.PayoutEntryID))
	return paid, nil
}

// lockClaim takes the claim's locks in global order: enrollment, linked
// entry, claim. The returned entry is nil when the claim links none.
func (s *claimService) lockClaim(ctx context.Context, uow portsrepo.UnitOfWork, scope domain.TenantScope, claimID string) (*domain.Claim, *domain.LedgerEntry, error) {
	peek, err := uow.Claims().FindClaimByID(ctx, scope, claimID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewNotFoundError("claim")
		}
		return nil, nil, err
	}

	if _, err := uow.Enrollments().FindEnrollmentByIDForUpdate(ctx, scope, peek.EnrollmentID); err != nil {
		return nil, nil, err
	}

	var entry *domain.LedgerEntry
	if peek.LinkedEntryID != nil {
		entry, err = uow.Ledger().FindEntryByIDForUpdate(ctx, scope, *peek.LinkedEntryID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, err
		}
	}

	claim, err := uow.Claims().FindClaimByIDForUpdate(ctx, scope, claimID)
	if err != nil {
		return nil, nil, err
	}
	return claim, entry, nil
}

// saveOutcome persists claim's new status, provided the state machine allows
// the move from the status it was locked in.
func saveOutcome(ctx context.Context, uow portsrepo.UnitOfWork, claim *domain.Claim, from domain.ClaimStatus) error {
	if !domain.CanTransition(from, claim.Status) {
		return apperrors.NewAppError(apperrors.ErrConflict,
			fmt.Sprintf("claim %s cannot move from %s to %s", claim.ClaimID, from, claim.Status), nil)
	}
	return uow.Claims().UpdateClaimOutcome(ctx, *claim, from)
}

// checkLinkedEntry re-validates the linked entry and reports whether its
// owner no longer matches the claimant.
func checkLinkedEntry(failed *apperrors.ValidationErrors, claim *domain.Claim, entry *domain.LedgerEntry) bool {
	if claim.LinkedEntryID == nil {
		return false
	}
	if entry == nil {
		failed.Add("linkedEntryID", domain.ReasonLinkedEntryNotFound)
		return false
	}
	if entry.IsVoid {
		failed.Add("linkedEntryID", domain.ReasonLinkedEntryVoided)
	}
	if entry.ActorID != claim.ActorID {
		failed.Add("linkedEntryID", domain.ReasonNotEntryOwner)
		return true
	}
	return false
}

func integrityError(claim *domain.Claim, entry *domain.LedgerEntry, failed apperrors.ValidationErrors) *apperrors.IntegrityError {
	return &apperrors.IntegrityError{
		ClaimID:      claim.ClaimID,
		ClaimActorID: claim.ActorID,
		EntryID:      entry.EntryID,
		EntryActorID: entry.ActorID,
		Errors:       failed,
	}
}

// approvableAmount is min(base, remaining period cap, per-claim cap, override),
// where base is the requested amount or the linked entry's magnitude.
// A zero MaxPayoutPerPeriod means the policy has no period cap.
func (s *claimService) approvableAmount(ctx context.Context, uow portsrepo.UnitOfWork, failed *apperrors.ValidationErrors, scope domain.TenantScope, policy *domain.Policy, claim *domain.Claim, entry *domain.LedgerEntry, capOverride *decimal.Decimal) (decimal.Decimal, error) {
	amount := decimal.Zero
	switch {
	case claim.RequestedAmount != nil:
		amount = *claim.RequestedAmount
	case entry != nil:
		amount = entry.ReimbursableAmount()
	}

	if policy.MaxPayoutPerPeriod.IsPositive() {
		period := s.currentPeriod(policy.Period)
		spent, err := uow.Claims().SumApprovedBetween(ctx, scope, claim.EnrollmentID, period.Start, period.End, claim.ClaimID)
		if err != nil {
			return decimal.Zero, err
		}
		remaining := decimal.Max(policy.MaxPayoutPerPeriod.Sub(spent), decimal.Zero)
		if !remaining.IsPositive() {
			failed.Add("amount", domain.ReasonPeriodCapExhausted)
			return decimal.Zero, nil
		}
		amount = decimal.Min(amount, remaining)
	}
	if policy.MaxPayoutPerClaim != nil {
		amount = decimal.Min(amount, *policy.MaxPayoutPerClaim)
	}
	if capOverride != nil {
		amount = decimal.Min(amount, *capOverride)
	}

	if !amount.IsPositive() {
		failed.Add("amount", domain.ReasonAmountNotPositive)
	}
	return amount, nil
}

// settle writes the reimbursement entry and marks the claim paid.
func (s *claimService) settle(ctx context.Context, uow portsrepo.UnitOfWork, scope domain.TenantScope, claim *domain.Claim, deciderID string, now time.Time) error {
	payout := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		Scope:       scope,
		ActorID:     claim.ActorID,
		Amount:      *claim.ApprovedAmount,
		Kind:        domain.KindReimbursement,
		Description: fmt.Sprintf("Reimbursement for claim %s", claim.ClaimID),
		CreatedAt:   now,
		CreatedBy:   deciderID,
	}
	if err := uow.Ledger().InsertEntry(ctx, payout); err != nil {
		return err
	}
	claim.Status = domain.ClaimPaid
	claim.PaidAt = &now
	claim.PayoutEntryID = &payout.EntryID
	return nil
}

// reportDecisionFailure sends ownership mismatches to the security log and
// logs everything else at the level it deserves.
func (s *claimService) reportDecisionFailure(ctx context.Context, scope domain.TenantScope, claimID, deciderID string, err error) {
	var integrity *apperrors.IntegrityError
	switch {
	case errors.As(err, &integrity):
		s.LogWarn(ctx, "Claim decision blocked by ownership mismatch",
			slog.String("claim_id", integrity.ClaimID),
			slog.String("claim_actor_id", integrity.ClaimActorID),
			slog.String("entry_actor_id", integrity.EntryActorID),
			slog.String("decider_id", deciderID))
		s.metrics.SecurityEvent(audit.EventOwnershipMismatch)
		s.recordAudit(ctx, audit.Event{
			Name:         audit.EventOwnershipMismatch,
			Scope:        scope,
			ClaimID:      integrity.ClaimID,
			ClaimActorID: integrity.ClaimActorID,
			EntryID:      integrity.EntryID,
			EntryActorID: integrity.EntryActorID,
			DeciderID:    deciderID,
		})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrForbidden):
		s.LogInfo(ctx, "Claim decision refused",
			slog.String("claim_id", claimID),
			slog.String("error", err.Error()))
	default:
		s.LogError(ctx, err, "Claim decision failed", slog.String("claim_id", claimID))
	}
}
