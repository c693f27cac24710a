package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
)

// ScopeReader defines read operations for registered scopes
type ScopeReader interface {
	// FindScopeByJoinCode returns the scope registered under joinCode, active or not.
	FindScopeByJoinCode(ctx context.Context, joinCode string) (*domain.Scope, error)

	// ListScopesByOwner returns every scope run by ownerID, newest first.
	ListScopesByOwner(ctx context.Context, ownerID string) ([]domain.Scope, error)
}

// ScopeWriter defines write operations for registered scopes
type ScopeWriter interface {
	// SaveScope inserts a new scope. A join code collision returns apperrors.ErrDuplicate.
	SaveScope(ctx context.Context, scope domain.Scope) error

	// DeactivateScope marks a scope inactive.
	DeactivateScope(ctx context.Context, joinCode string, updatedBy string, updatedAt time.Time) error
}

// ScopeRepositoryFacade combines all scope-related repository interfaces
type ScopeRepositoryFacade interface {
	ScopeReader
	ScopeWriter
}

// ScopeCache is an optional read-through cache in front of ScopeReader.
type ScopeCache interface {
	// Get returns found=false on a miss.
	Get(ctx context.Context, joinCode string) (scope *domain.Scope, found bool, err error)
	Set(ctx context.Context, scope *domain.Scope) error
	Delete(ctx context.Context, joinCode string) error
}
