package services

import (
	"context"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/SscSPs/claims_ledger/internal/dto"
)

// ScopeResolverSvc maps a join code to its isolation boundary.
type ScopeResolverSvc interface {
	// ResolveScope returns apperrors.ErrNotFound for unknown or inactive codes.
	ResolveScope(ctx context.Context, joinCode string) (*domain.Scope, error)
}

// ScopeReaderSvc defines read operations for scopes
type ScopeReaderSvc interface {
	ListScopes(ctx context.Context, ownerID string) ([]domain.Scope, error)
}

// ScopeWriterSvc defines write operations for scopes
type ScopeWriterSvc interface {
	// CreateScope opens a new sub-group run by ownerID with a fresh join code.
	CreateScope(ctx context.Context, ownerID string, req dto.CreateScopeRequest) (*domain.Scope, error)

	// DeactivateScope closes a sub-group. Only its owner may do so.
	DeactivateScope(ctx context.Context, joinCode string, requestingUserID string) error
}

// ScopeSvcFacade combines all scope-related service interfaces
type ScopeSvcFacade interface {
	ScopeResolverSvc
	ScopeReaderSvc
	ScopeWriterSvc
}
