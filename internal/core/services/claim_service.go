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
)

// claimService files, decides and pays claims. Every write runs in one
// transaction that takes row locks in the order enrollment, ledger entry, claim.
type claimService struct {
	BaseService
	claimRepo portsrepo.ClaimReader
}

// NewClaimService creates the claim submission pipeline and approval state machine.
func NewClaimService(repo portsrepo.ClaimReader, txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.ClaimSvcFacade {
	return &claimService{
		BaseService: newBaseService(txManager, options...),
		claimRepo:   repo,
	}
}

var _ portssvc.ClaimSvcFacade = (*claimService)(nil)

func (s *claimService) GetClaim(ctx context.Context, scope domain.TenantScope, claimID string, requestingUserID string) (*domain.Claim, error) {
	claim, err := s.claimRepo.FindClaimByID(ctx, scope, claimID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("claim")
		}
		s.LogError(ctx, err, "Failed to get claim", slog.String("claim_id", claimID))
		return nil, err
	}
	if err := s.requireSelfOrOwner(ctx, scope, requestingUserID, claim.ActorID, "read another actor's claims"); err != nil {
		return nil, err
	}
	return claim, nil
}

func (s *claimService) ListClaims(ctx context.Context, scope domain.TenantScope, requestingUserID string, params dto.ListClaimsParams) (*dto.ListClaimsResponse, error) {
	filter := domain.ClaimFilter{
		ActorID:      params.ActorID,
		EnrollmentID: params.EnrollmentID,
		Status:       params.Status,
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		var verrs apperrors.ValidationErrors
		verrs.Add("status", "unknown claim status")
		return nil, verrs
	}
	if !scope.IsOwner(requestingUserID) {
		if filter.ActorID != "" && filter.ActorID != requestingUserID {
			return nil, apperrors.NewForbiddenError("participants may only list their own claims")
		}
		filter.ActorID = requestingUserID
	}

	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	claims, next, err := s.claimRepo.ListClaims(ctx, scope, filter, params.Limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list claims")
		return nil, err
	}
	return &dto.ListClaimsResponse{
		Claims:    dto.ToClaimResponses(claims),
		NextToken: next,
	}, nil
}
