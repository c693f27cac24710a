package pgsql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/claims_ledger/internal/core/services"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/SscSPs/claims_ledger/internal/platform/config"
	"github.com/SscSPs/claims_ledger/internal/platform/metrics"
	"github.com/SscSPs/claims_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/claims_ledger/internal/testutil"
	"github.com/SscSPs/claims_ledger/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Runs only when TEST_PGSQL_URL points at a disposable database.
func newPgRepos(t *testing.T) portsrepo.RepositoryProvider {
	t.Helper()
	url := os.Getenv("TEST_PGSQL_URL")
	if url == "" {
		t.Skip("TEST_PGSQL_URL not set")
	}
	require.NoError(t, database.RunMigrations(database.DriverPostgres, url, testutil.DiscardLogger()))

	pool, err := database.NewPgxPool(context.Background(), url, true)
	require.NoError(t, err)
	t.Cleanup(func() { database.ClosePgxPool(pool) })
	return pgsql.NewRepositoryProvider(pool)
}

func TestPgConcurrentClaimsOnOneEntry(t *testing.T) {
	repos := newPgRepos(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	scope := domain.TenantScope{OwnerID: "owner-" + uuid.NewString(), SubGroupKey: uuid.NewString()}
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: scope.OwnerID, LastUpdatedAt: now, LastUpdatedBy: scope.OwnerID}

	entry := domain.LedgerEntry{
		EntryID: uuid.NewString(), Scope: scope, ActorID: "alice",
		Amount: decimal.NewFromInt(-25), Kind: domain.KindPurchase, CreatedAt: now, CreatedBy: scope.OwnerID,
	}
	require.NoError(t, repos.LedgerRepo.InsertEntry(ctx, entry))

	policy := domain.Policy{
		PolicyID: uuid.NewString(), Scope: scope, Name: "Fuel", ClaimType: domain.ClaimTypeLinkedEntry,
		MaxClaimsPerPeriod: 10, MaxPayoutPerPeriod: decimal.NewFromInt(100), Period: domain.PeriodMonthly,
		IsActive: true, AuditFields: audit,
	}
	require.NoError(t, repos.PolicyRepo.SavePolicy(ctx, policy))

	enrollment := domain.Enrollment{
		EnrollmentID: uuid.NewString(), Scope: scope, ActorID: "alice", PolicyID: policy.PolicyID,
		EnrolledAt: now, CoverageStart: now, Status: domain.EnrollmentActive, PaymentCurrent: true, AuditFields: audit,
	}
	require.NoError(t, repos.EnrollmentRepo.SaveEnrollment(ctx, enrollment))

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repos.TxManager.WithTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
				if _, err := uow.Enrollments().FindEnrollmentByIDForUpdate(ctx, scope, enrollment.EnrollmentID); err != nil {
					return err
				}
				if _, err := uow.Ledger().FindEntryByIDForUpdate(ctx, scope, entry.EntryID); err != nil {
					return err
				}
				return uow.Claims().InsertClaim(ctx, domain.Claim{
					ClaimID: uuid.NewString(), Scope: scope, EnrollmentID: enrollment.EnrollmentID,
					PolicyID: policy.PolicyID, ActorID: "alice", LinkedEntryID: &entry.EntryID,
					IncidentDate: now, Status: domain.ClaimPending, FiledAt: now,
				})
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, apperrors.ErrDuplicate)
	}
	require.Equal(t, 1, succeeded)
}

func TestPgConcurrentDecisionsRespectPeriodCap(t *testing.T) {
	repos := newPgRepos(t)
	ctx := context.Background()
	cfg := &config.Config{AccountingLocation: time.UTC, TxMaxRetries: 5}
	svc := services.NewServiceContainer(cfg, repos, nil, services.WithMetrics(metrics.New()))

	owner := "owner-" + uuid.NewString()
	scope, err := svc.Scope.CreateScope(ctx, owner, dto.CreateScopeRequest{Name: "Fleet"})
	require.NoError(t, err)
	policy, err := svc.Policy.CreatePolicy(ctx, scope.TenantScope, dto.CreatePolicyRequest{
		Name:               "Fuel",
		ClaimType:          domain.ClaimTypeLinkedEntry,
		MaxClaimsPerPeriod: 10,
		MaxPayoutPerPeriod: decimal.NewFromInt(100),
		Period:             domain.PeriodMonthly,
	}, owner)
	require.NoError(t, err)
	_, err = svc.Enrollment.Enroll(ctx, scope.TenantScope, policy.PolicyID, dto.EnrollRequest{ActorID: "alice"}, owner)
	require.NoError(t, err)

	const claims = 4
	claimIDs := make([]string, claims)
	for i := range claimIDs {
		entry, err := svc.Ledger.RecordEntry(ctx, scope.TenantScope, dto.RecordEntryRequest{
			ActorID: "alice", Amount: decimal.NewFromInt(-40), Kind: domain.KindPurchase, Description: "fuel",
		}, owner)
		require.NoError(t, err)
		claim, err := svc.Claim.SubmitClaim(ctx, scope.TenantScope, "alice", dto.SubmitClaimRequest{
			PolicyID: policy.PolicyID, LinkedEntryID: &entry.EntryID, IncidentDate: time.Now().Add(-time.Hour),
		})
		require.NoError(t, err)
		claimIDs[i] = claim.ClaimID
	}

	var wg sync.WaitGroup
	errs := make([]error, claims)
	for i, id := range claimIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = svc.Claim.DecideClaim(ctx, scope.TenantScope, id, owner, dto.DecideClaimRequest{Decision: domain.DecisionApprove})
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, apperrors.ErrValidation)
		}
	}

	page, err := svc.Claim.ListClaims(ctx, scope.TenantScope, owner, dto.ListClaimsParams{Status: domain.ClaimPaid})
	require.NoError(t, err)
	total := decimal.Zero
	for _, c := range page.Claims {
		require.NotNil(t, c.ApprovedAmount)
		total = total.Add(*c.ApprovedAmount)
	}
	require.True(t, total.Equal(decimal.NewFromInt(100)), "paid %s against a cap of 100", total)
}
