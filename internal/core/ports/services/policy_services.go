package services

import (
	"context"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/SscSPs/claims_ledger/internal/dto"
)

// PolicyReaderSvc defines read operations for policies
type PolicyReaderSvc interface {
	GetPolicy(ctx context.Context, scope domain.TenantScope, policyID string) (*domain.Policy, error)
	ListPolicies(ctx context.Context, scope domain.TenantScope, params dto.ListPoliciesParams) ([]domain.Policy, error)
}

// PolicyWriterSvc defines write operations for policies. All of them are owner-only.
type PolicyWriterSvc interface {
	CreatePolicy(ctx context.Context, scope domain.TenantScope, req dto.CreatePolicyRequest, requestingUserID string) (*domain.Policy, error)
	UpdatePolicy(ctx context.Context, scope domain.TenantScope, policyID string, req dto.UpdatePolicyRequest, requestingUserID string) (*domain.Policy, error)
	DeactivatePolicy(ctx context.Context, scope domain.TenantScope, policyID string, requestingUserID string) error
}

// PolicySvcFacade combines all policy-related service interfaces
type PolicySvcFacade interface {
	PolicyReaderSvc
	PolicyWriterSvc
}
