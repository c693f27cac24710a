package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/google/uuid"
)

type policyService struct {
	BaseService
	policyRepo portsrepo.PolicyRepositoryFacade
}

// NewPolicyService creates the policy catalog service.
func NewPolicyService(repo portsrepo.PolicyRepositoryFacade, options ...ServiceOption) portssvc.PolicySvcFacade {
	return &policyService{
		BaseService: newBaseService(nil, options...),
		policyRepo:  repo,
	}
}

var _ portssvc.PolicySvcFacade = (*policyService)(nil)

// validatePolicy checks every rule and reports all failures together.
func validatePolicy(p domain.Policy) error {
	var verrs apperrors.ValidationErrors
	if strings.TrimSpace(p.Name) == "" {
		verrs.Add("name", "name is required")
	}
	if !p.ClaimType.IsValid() {
		verrs.Add("claimType", "claim type must be linked_entry or free_form")
	}
	if !p.Period.IsValid() {
		verrs.Add("period", "period must be weekly, monthly, quarterly or yearly")
	}
	if p.Premium.IsNegative() {
		verrs.Add("premium", "premium must not be negative")
	}
	if p.WaitingPeriodDays < 0 {
		verrs.Add("waitingPeriodDays", "waiting period must not be negative")
	}
	if p.ClaimFilingDeadlineDays < 0 {
		verrs.Add("claimFilingDeadlineDays", "filing deadline must not be negative")
	}
	if p.MaxClaimsPerPeriod < 0 {
		verrs.Add("maxClaimsPerPeriod", "claim limit must not be negative")
	}
	if p.MaxPayoutPerPeriod.IsNegative() {
		verrs.Add("maxPayoutPerPeriod", "period cap must not be negative")
	}
	if p.MaxPayoutPerClaim != nil && !p.MaxPayoutPerClaim.IsPositive() {
		verrs.Add("maxPayoutPerClaim", "per-claim cap must be positive when set")
	}
	return verrs.OrNil()
}

func (s *policyService) GetPolicy(ctx context.Context, scope domain.TenantScope, policyID string) (*domain.Policy, error) {
	policy, err := s.policyRepo.FindPolicyByID(ctx, scope, policyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("policy")
		}
		s.LogError(ctx, err, "Failed to get policy", slog.String("policy_id", policyID))
		return nil, err
	}
	return policy, nil
}

func (s *policyService) ListPolicies(ctx context.Context, scope domain.TenantScope, params dto.ListPoliciesParams) ([]domain.Policy, error) {
	policies, err := s.policyRepo.ListPolicies(ctx, scope, params.IncludeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list policies")
		return nil, err
	}
	return policies, nil
}

func (s *policyService) CreatePolicy(ctx context.Context, scope domain.TenantScope, req dto.CreatePolicyRequest, requestingUserID string) (*domain.Policy, error) {
	if err := s.requireOwner(ctx, scope, requestingUserID, "create policies"); err != nil {
		return nil, err
	}

	period := req.Period
	if period == "" {
		period = domain.PeriodMonthly
	}
	now := s.now()
	policy := domain.Policy{
		PolicyID:                uuid.NewString(),
		Scope:                   scope,
		Name:                    strings.TrimSpace(req.Name),
		Description:             req.Description,
		ClaimType:               req.ClaimType,
		Premium:                 req.Premium,
		WaitingPeriodDays:       req.WaitingPeriodDays,
		ClaimFilingDeadlineDays: req.ClaimFilingDeadlineDays,
		MaxClaimsPerPeriod:      req.MaxClaimsPerPeriod,
		MaxPayoutPerPeriod:      req.MaxPayoutPerPeriod,
		MaxPayoutPerClaim:       req.MaxPayoutPerClaim,
		Period:                  period,
		DeferredPayout:          req.DeferredPayout,
		IsActive:                true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := validatePolicy(policy); err != nil {
		return nil, err
	}

	if err := s.policyRepo.SavePolicy(ctx, policy); err != nil {
		s.LogError(ctx, err, "Failed to save policy", slog.String("name", policy.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Policy created", slog.String("policy_id", policy.PolicyID))
	return &policy, nil
}

func (s *policyService) UpdatePolicy(ctx context.Context, scope domain.TenantScope, policyID string, req dto.UpdatePolicyRequest, requestingUserID string) (*domain.Policy, error) {
	if err := s.requireOwner(ctx, scope, requestingUserID, "update policies"); err != nil {
		return nil, err
	}
	policy, err := s.GetPolicy(ctx, scope, policyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		policy.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		policy.Description = *req.Description
	}
	if req.Premium != nil {
		policy.Premium = *req.Premium
	}
	if req.WaitingPeriodDays != nil {
		policy.WaitingPeriodDays = *req.WaitingPeriodDays
	}
	if req.ClaimFilingDeadlineDays != nil {
		policy.ClaimFilingDeadlineDays = *req.ClaimFilingDeadlineDays
	}
	if req.MaxClaimsPerPeriod != nil {
		policy.MaxClaimsPerPeriod = *req.MaxClaimsPerPeriod
	}
	if req.MaxPayoutPerPeriod != nil {
		policy.MaxPayoutPerPeriod = *req.MaxPayoutPerPeriod
	}
	if req.ClearMaxPayoutPerClaim {
		policy.MaxPayoutPerClaim = nil
	} else if req.MaxPayoutPerClaim != nil {
		policy.MaxPayoutPerClaim = req.MaxPayoutPerClaim
	}
	if req.Period != nil {
		policy.Period = *req.Period
	}
	if req.DeferredPayout != nil {
		policy.DeferredPayout = *req.DeferredPayout
	}
	if err := validatePolicy(*policy); err != nil {
		return nil, err
	}

	policy.LastUpdatedAt = s.now()
	policy.LastUpdatedBy = requestingUserID
	if err := s.policyRepo.UpdatePolicy(ctx, *policy); err != nil {
		s.LogError(ctx, err, "Failed to update policy", slog.String("policy_id", policyID))
		return nil, err
	}
	return policy, nil
}

func (s *policyService) DeactivatePolicy(ctx context.Context, scope domain.TenantScope, policyID string, requestingUserID string) error {
	if err := s.requireOwner(ctx, scope, requestingUserID, "deactivate policies"); err != nil {
		return err
	}
	policy, err := s.GetPolicy(ctx, scope, policyID)
	if err != nil {
		return err
	}
	if !policy.IsActive {
		return nil
	}

	policy.IsActive = false
	policy.LastUpdatedAt = s.now()
	policy.LastUpdatedBy = requestingUserID
	if err := s.policyRepo.UpdatePolicy(ctx, *policy); err != nil {
		s.LogError(ctx, err, "Failed to deactivate policy", slog.String("policy_id", policyID))
		return err
	}
	s.LogInfo(ctx, "Policy deactivated", slog.String("policy_id", policyID))
	return nil
}
