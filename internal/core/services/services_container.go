package services

import (
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// scopeCache may be nil. options apply to every service and come after the
// config-derived ones, so callers can override them.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, scopeCache portsrepo.ScopeCache, options ...ServiceOption) *portssvc.ServiceContainer {
	shared := []ServiceOption{
		WithAccountingLocation(cfg.AccountingLocation),
		WithTxMaxRetries(cfg.TxMaxRetries),
	}
	shared = append(shared, options...)

	return &portssvc.ServiceContainer{
		Scope:      NewScopeService(repos.ScopeRepo, scopeCache, shared...),
		Ledger:     NewLedgerService(repos.LedgerRepo, repos.TxManager, shared...),
		Policy:     NewPolicyService(repos.PolicyRepo, shared...),
		Enrollment: NewEnrollmentService(repos.EnrollmentRepo, repos.TxManager, shared...),
		Claim:      NewClaimService(repos.ClaimRepo, repos.TxManager, shared...),
	}
}
