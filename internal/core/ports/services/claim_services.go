package services

import (
	"context"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/SscSPs/claims_ledger/internal/dto"
)

// ClaimReaderSvc defines read operations for claims
type ClaimReaderSvc interface {
	GetClaim(ctx context.Context, scope domain.TenantScope, claimID string, requestingUserID string) (*domain.Claim, error)
	ListClaims(ctx context.Context, scope domain.TenantScope, requestingUserID string, params dto.ListClaimsParams) (*dto.ListClaimsResponse, error)
}

// ClaimSubmissionSvc files claims.
type ClaimSubmissionSvc interface {
	// SubmitClaim returns the pending claim, or an *apperrors.RejectedError
	// naming the first rule that failed.
	SubmitClaim(ctx context.Context, scope domain.TenantScope, actorID string, req dto.SubmitClaimRequest) (*domain.Claim, error)
}

// ClaimDecisionSvc drives the approval state machine.
type ClaimDecisionSvc interface {
	// DecideClaim approves or rejects a pending claim. Failed rules come back
	// together as apperrors.ValidationErrors; an ownership mismatch comes back
	// as *apperrors.IntegrityError.
	DecideClaim(ctx context.Context, scope domain.TenantScope, claimID string, deciderID string, req dto.DecideClaimRequest) (*domain.Claim, error)

	// PayClaim settles an approved claim of a deferred-payout policy.
	PayClaim(ctx context.Context, scope domain.TenantScope, claimID string, deciderID string) (*domain.Claim, error)
}

// ClaimSvcFacade combines all claim-related service interfaces
type ClaimSvcFacade interface {
	ClaimReaderSvc
	ClaimSubmissionSvc
	ClaimDecisionSvc
}
