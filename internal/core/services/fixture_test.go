package services_test

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/SscSPs/claims_ledger/internal/audit"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/core/services"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/SscSPs/claims_ledger/internal/platform/config"
	"github.com/SscSPs/claims_ledger/internal/platform/metrics"
	"github.com/SscSPs/claims_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/claims_ledger/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	ownerID   = "owner-1"
	studentA  = "student-a"
	studentB  = "student-b"
	outsider  = "student-z"
	startDate = "2025-03-10T12:00:00Z"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	t, _ := time.Parse(time.RFC3339, startDate)
	return &testClock{now: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingAuditor) Record(_ context.Context, event audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingAuditor) Events() []audit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Event(nil), r.events...)
}

// serviceSuite wires every service to a fresh migrated SQLite database and
// opens one scope run by ownerID.
type serviceSuite struct {
	suite.Suite
	ctx     context.Context
	db      *sql.DB
	repos   portsrepo.RepositoryProvider
	clock   *testClock
	auditor *recordingAuditor
	svc     *portssvc.ServiceContainer
	scope   domain.TenantScope
}

func (s *serviceSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewSQLiteDB(s.T())
	s.repos = sqlite.NewRepositoryProvider(s.db)
	s.clock = newTestClock()
	s.auditor = &recordingAuditor{}

	cfg := &config.Config{AccountingLocation: time.UTC, TxMaxRetries: 3}
	s.svc = services.NewServiceContainer(cfg, s.repos, nil,
		services.WithClock(s.clock.Now),
		services.WithAuditRecorder(s.auditor),
		services.WithMetrics(metrics.New()),
	)

	scope, err := s.svc.Scope.CreateScope(s.ctx, ownerID, dto.CreateScopeRequest{Name: "Period 3"})
	s.Require().NoError(err)
	s.scope = scope.TenantScope
}

func (s *serviceSuite) record(scope domain.TenantScope, actorID, amount string, kind domain.EntryKind) *domain.LedgerEntry {
	entry, err := s.svc.Ledger.RecordEntry(s.ctx, scope, dto.RecordEntryRequest{
		ActorID:     actorID,
		Amount:      decimal.RequireFromString(amount),
		Kind:        kind,
		Description: "test entry",
	}, scope.OwnerID)
	s.Require().NoError(err)
	return entry
}

func (s *serviceSuite) purchase(actorID, amount string) *domain.LedgerEntry {
	return s.record(s.scope, actorID, amount, domain.KindPurchase)
}

func (s *serviceSuite) balance(scope domain.TenantScope, actorID string) decimal.Decimal {
	b, err := s.svc.Ledger.Balance(s.ctx, scope, actorID, scope.OwnerID)
	s.Require().NoError(err)
	return b
}

func (s *serviceSuite) linkedEntryPolicyRequest() dto.CreatePolicyRequest {
	return dto.CreatePolicyRequest{
		Name:                    "Field trip costs",
		ClaimType:               domain.ClaimTypeLinkedEntry,
		ClaimFilingDeadlineDays: 30,
		MaxClaimsPerPeriod:      5,
		MaxPayoutPerPeriod:      decimal.NewFromInt(100),
		Period:                  domain.PeriodMonthly,
	}
}

func (s *serviceSuite) createPolicy(req dto.CreatePolicyRequest) *domain.Policy {
	policy, err := s.svc.Policy.CreatePolicy(s.ctx, s.scope, req, ownerID)
	s.Require().NoError(err)
	return policy
}

func (s *serviceSuite) enroll(actorID, policyID string) *domain.Enrollment {
	enrollment, err := s.svc.Enrollment.Enroll(s.ctx, s.scope, policyID, dto.EnrollRequest{ActorID: actorID}, ownerID)
	s.Require().NoError(err)
	return enrollment
}

func (s *serviceSuite) linkedClaimRequest(policyID, entryID string) dto.SubmitClaimRequest {
	return dto.SubmitClaimRequest{
		PolicyID:      policyID,
		LinkedEntryID: &entryID,
		IncidentDate:  s.clock.Now().Add(-24 * time.Hour),
		Description:   "bus tickets",
	}
}

func (s *serviceSuite) freeFormClaimRequest(policyID, amount string) dto.SubmitClaimRequest {
	requested := decimal.RequireFromString(amount)
	return dto.SubmitClaimRequest{
		PolicyID:        policyID,
		RequestedAmount: &requested,
		IncidentDate:    s.clock.Now().Add(-24 * time.Hour),
	}
}

func (s *serviceSuite) approve(claimID string) (*domain.Claim, error) {
	return s.svc.Claim.DecideClaim(s.ctx, s.scope, claimID, ownerID, dto.DecideClaimRequest{Decision: domain.DecisionApprove})
}

func (s *serviceSuite) entriesOf(actorID string) []dto.EntryResponse {
	page, err := s.svc.Ledger.ListEntries(s.ctx, s.scope, ownerID, dto.ListEntriesParams{ActorID: actorID, IncludeVoid: true, Limit: 100})
	s.Require().NoError(err)
	return page.Entries
}
