package pgsql

import (
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ScopeRepo:      newPgxScopeRepository(dbPool),
		LedgerRepo:     newPgxLedgerEntryRepository(dbPool),
		PolicyRepo:     newPgxPolicyRepository(dbPool),
		EnrollmentRepo: newPgxEnrollmentRepository(dbPool),
		ClaimRepo:      newPgxClaimRepository(dbPool),
		TxManager:      newTxManager(dbPool),
	}
}
