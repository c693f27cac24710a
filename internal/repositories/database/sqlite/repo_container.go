package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository port to one SQLite handle.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ScopeRepo:      &ScopeRepository{db: db},
		LedgerRepo:     &LedgerEntryRepository{db: db},
		PolicyRepo:     &PolicyRepository{db: db},
		EnrollmentRepo: &EnrollmentRepository{db: db},
		ClaimRepo:      &ClaimRepository{db: db},
		TxManager:      newTxManager(db),
	}
}
