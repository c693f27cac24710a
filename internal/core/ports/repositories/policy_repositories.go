package repositories

import (
	"context"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
)

// PolicyReader defines read operations for policies
type PolicyReader interface {
	FindPolicyByID(ctx context.Context, scope domain.TenantScope, policyID string) (*domain.Policy, error)
	ListPolicies(ctx context.Context, scope domain.TenantScope, includeInactive bool) ([]domain.Policy, error)
}

// PolicyWriter defines write operations for policies
type PolicyWriter interface {
	SavePolicy(ctx context.Context, policy domain.Policy) error
	// UpdatePolicy overwrites the mutable fields of an existing policy.
	UpdatePolicy(ctx context.Context, policy domain.Policy) error
}

// PolicyRepositoryFacade combines all policy-related repository interfaces
type PolicyRepositoryFacade interface {
	PolicyReader
	PolicyWriter
}
