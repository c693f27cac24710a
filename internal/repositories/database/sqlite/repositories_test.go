package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/claims_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/claims_ledger/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SQLiteRepositoryTestSuite struct {
	suite.Suite
	db    *sql.DB
	repos portsrepo.RepositoryProvider
	ctx   context.Context
	scope domain.TenantScope
	now   time.Time
}

func TestSQLiteRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}

func (s *SQLiteRepositoryTestSuite) SetupTest() {
	s.db = testutil.NewSQLiteDB(s.T())
	s.repos = sqlite.NewRepositoryProvider(s.db)
	s.ctx = context.Background()
	s.scope = domain.TenantScope{OwnerID: "owner-1", SubGroupKey: "household-1"}
	s.now = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func (s *SQLiteRepositoryTestSuite) audit() domain.AuditFields {
	return domain.AuditFields{CreatedAt: s.now, CreatedBy: s.scope.OwnerID, LastUpdatedAt: s.now, LastUpdatedBy: s.scope.OwnerID}
}

func (s *SQLiteRepositoryTestSuite) insertEntry(actorID string, amount string, at time.Time) domain.LedgerEntry {
	entry := domain.LedgerEntry{
		EntryID:   uuid.NewString(),
		Scope:     s.scope,
		ActorID:   actorID,
		Amount:    decimal.RequireFromString(amount),
		Kind:      domain.KindPurchase,
		CreatedAt: at,
		CreatedBy: s.scope.OwnerID,
	}
	s.Require().NoError(s.repos.LedgerRepo.InsertEntry(s.ctx, entry))
	return entry
}

func (s *SQLiteRepositoryTestSuite) insertPolicyAndEnrollment(actorID string) (domain.Policy, domain.Enrollment) {
	policy := domain.Policy{
		PolicyID:           uuid.NewString(),
		Scope:              s.scope,
		Name:               "Groceries",
		ClaimType:          domain.ClaimTypeLinkedEntry,
		Premium:            decimal.Zero,
		MaxClaimsPerPeriod: 5,
		MaxPayoutPerPeriod: decimal.NewFromInt(200),
		Period:             domain.PeriodMonthly,
		IsActive:           true,
		AuditFields:        s.audit(),
	}
	s.Require().NoError(s.repos.PolicyRepo.SavePolicy(s.ctx, policy))

	enrollment := domain.Enrollment{
		EnrollmentID:   uuid.NewString(),
		Scope:          s.scope,
		ActorID:        actorID,
		PolicyID:       policy.PolicyID,
		EnrolledAt:     s.now.AddDate(0, -1, 0),
		CoverageStart:  s.now.AddDate(0, -1, 0),
		Status:         domain.EnrollmentActive,
		PaymentCurrent: true,
		AuditFields:    s.audit(),
	}
	s.Require().NoError(s.repos.EnrollmentRepo.SaveEnrollment(s.ctx, enrollment))
	return policy, enrollment
}

func (s *SQLiteRepositoryTestSuite) newClaim(enrollment domain.Enrollment, entryID *string) domain.Claim {
	return domain.Claim{
		ClaimID:       uuid.NewString(),
		Scope:         s.scope,
		EnrollmentID:  enrollment.EnrollmentID,
		PolicyID:      enrollment.PolicyID,
		ActorID:       enrollment.ActorID,
		LinkedEntryID: entryID,
		IncidentDate:  s.now.AddDate(0, 0, -1),
		Status:        domain.ClaimPending,
		FiledAt:       s.now,
	}
}

func (s *SQLiteRepositoryTestSuite) TestScopeRoundTrip() {
	scope := domain.Scope{JoinCode: "ABCD2345", Name: "Home", TenantScope: s.scope, IsActive: true, AuditFields: s.audit()}
	s.Require().NoError(s.repos.ScopeRepo.SaveScope(s.ctx, scope))

	err := s.repos.ScopeRepo.SaveScope(s.ctx, scope)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	found, err := s.repos.ScopeRepo.FindScopeByJoinCode(s.ctx, "ABCD2345")
	s.Require().NoError(err)
	s.Equal(s.scope, found.TenantScope)
	s.True(found.CreatedAt.Equal(s.now))

	s.Require().NoError(s.repos.ScopeRepo.DeactivateScope(s.ctx, "ABCD2345", s.scope.OwnerID, s.now))
	found, err = s.repos.ScopeRepo.FindScopeByJoinCode(s.ctx, "ABCD2345")
	s.Require().NoError(err)
	s.False(found.IsActive)

	list, err := s.repos.ScopeRepo.ListScopesByOwner(s.ctx, s.scope.OwnerID)
	s.Require().NoError(err)
	s.Len(list, 1)

	_, err = s.repos.ScopeRepo.FindScopeByJoinCode(s.ctx, "MISSING1")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SQLiteRepositoryTestSuite) TestLedgerEntriesAreScoped() {
	entry := s.insertEntry("alice", "-42.50", s.now)

	found, err := s.repos.LedgerRepo.FindEntryByID(s.ctx, s.scope, entry.EntryID)
	s.Require().NoError(err)
	s.True(found.Amount.Equal(decimal.RequireFromString("-42.50")))
	s.Equal("alice", found.ActorID)

	sameOwnerOtherGroup := domain.TenantScope{OwnerID: s.scope.OwnerID, SubGroupKey: "household-2"}
	_, err = s.repos.LedgerRepo.FindEntryByID(s.ctx, sameOwnerOtherGroup, entry.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	err = s.repos.LedgerRepo.MarkEntryVoid(s.ctx, sameOwnerOtherGroup, entry.EntryID, "owner-1", s.now)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SQLiteRepositoryTestSuite) TestMarkEntryVoidTwice() {
	entry := s.insertEntry("alice", "10", s.now)

	s.Require().NoError(s.repos.LedgerRepo.MarkEntryVoid(s.ctx, s.scope, entry.EntryID, "owner-1", s.now))
	err := s.repos.LedgerRepo.MarkEntryVoid(s.ctx, s.scope, entry.EntryID, "owner-1", s.now)
	s.ErrorIs(err, apperrors.ErrAlreadyVoid)

	found, err := s.repos.LedgerRepo.FindEntryByID(s.ctx, s.scope, entry.EntryID)
	s.Require().NoError(err)
	s.True(found.IsVoid)
	s.Require().NotNil(found.VoidedAt)
	s.Require().NotNil(found.VoidedBy)
	s.Equal("owner-1", *found.VoidedBy)
}

func (s *SQLiteRepositoryTestSuite) TestSumBalanceSkipsVoid() {
	s.insertEntry("alice", "100.10", s.now)
	s.insertEntry("alice", "-0.10", s.now)
	voided := s.insertEntry("alice", "-50", s.now)
	s.insertEntry("bob", "999", s.now)
	s.Require().NoError(s.repos.LedgerRepo.MarkEntryVoid(s.ctx, s.scope, voided.EntryID, "owner-1", s.now))

	balance, err := s.repos.LedgerRepo.SumBalance(s.ctx, s.scope, "alice")
	s.Require().NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(100)), balance.String())
}

func (s *SQLiteRepositoryTestSuite) TestListEntriesPaginates() {
	for i := 0; i < 5; i++ {
		s.insertEntry("alice", "1", s.now.Add(time.Duration(i)*time.Minute))
	}

	page1, next, err := s.repos.LedgerRepo.ListEntries(s.ctx, s.scope, "alice", false, 3, nil)
	s.Require().NoError(err)
	s.Len(page1, 3)
	s.Require().NotNil(next)
	s.True(page1[0].CreatedAt.After(page1[1].CreatedAt))

	page2, next, err := s.repos.LedgerRepo.ListEntries(s.ctx, s.scope, "alice", false, 3, next)
	s.Require().NoError(err)
	s.Len(page2, 2)
	s.Nil(next)

	bad := "not-a-token"
	_, _, err = s.repos.LedgerRepo.ListEntries(s.ctx, s.scope, "alice", false, 3, &bad)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *SQLiteRepositoryTestSuite) TestSecondClaimOnSameEntryIsDuplicate() {
	entry := s.insertEntry("alice", "-30", s.now)
	_, enrollment := s.insertPolicyAndEnrollment("alice")

	first := s.newClaim(enrollment, &entry.EntryID)
	s.Require().NoError(s.repos.TxManager.WithTx(s.ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		return uow.Claims().InsertClaim(ctx, first)
	}))

	second := s.newClaim(enrollment, &entry.EntryID)
	err := s.repos.TxManager.WithTx(s.ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		return uow.Claims().InsertClaim(ctx, second)
	})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	// Free-form claims carry no linked entry and never collide.
	s.Require().NoError(s.repos.TxManager.WithTx(s.ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if err := uow.Claims().InsertClaim(ctx, s.newClaim(enrollment, nil)); err != nil {
			return err
		}
		return uow.Claims().InsertClaim(ctx, s.newClaim(enrollment, nil))
	}))
}

func (s *SQLiteRepositoryTestSuite) TestWithTxRollsBackOnError() {
	entry := domain.LedgerEntry{
		EntryID: uuid.NewString(), Scope: s.scope, ActorID: "alice",
		Amount: decimal.NewFromInt(5), Kind: domain.KindDeposit, CreatedAt: s.now, CreatedBy: "owner-1",
	}
	boom := errors.New("boom")
	err := s.repos.TxManager.WithTx(s.ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if err := uow.Ledger().InsertEntry(ctx, entry); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.repos.LedgerRepo.FindEntryByID(s.ctx, s.scope, entry.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SQLiteRepositoryTestSuite) TestClaimOutcomeAndVoidCascade() {
	entry := s.insertEntry("alice", "-30", s.now)
	_, enrollment := s.insertPolicyAndEnrollment("alice")
	claim := s.newClaim(enrollment, &entry.EntryID)
	s.Require().NoError(s.repos.TxManager.WithTx(s.ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		return uow.Claims().InsertClaim(ctx, claim)
	}))

	var rejected []string
	s.Require().NoError(s.repos.TxManager.WithTx(s.ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		var err error
		rejected, err = uow.Claims().RejectUnpaidClaimsForEntry(ctx, s.scope, entry.EntryID, domain.ReasonLinkedEntryVoided, "owner-1", s.now)
		return err
	}))
	s.Equal([]string{claim.ClaimID}, rejected)

	stored, err := s.repos.ClaimRepo.FindClaimByID(s.ctx, s.scope, claim.ClaimID)
	s.Require().NoError(err)
	s.Equal(domain.ClaimRejected, stored.Status)
	s.Require().NotNil(stored.RejectionReason)
	s.Equal(domain.ReasonLinkedEntryVoided, *stored.RejectionReason)

	// The claim already left pending, so a stale decision must not overwrite it.
	amount := decimal.NewFromInt(30)
	stale := *stored
	stale.Status = domain.ClaimApproved
	stale.ApprovedAmount = &amount
	err = s.repos.TxManager.WithTx(s.ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		return uow.Claims().UpdateClaimOutcome(ctx, stale, domain.ClaimPending)
	})
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *SQLiteRepositoryTestSuite) TestVoidCascadeRejectsApprovedButSparesPaid() {
	_, enrollment := s.insertPolicyAndEnrollment("alice")
	amount := decimal.NewFromInt(30)
	decidedAt := s.now
	insert := func(status domain.ClaimStatus) (domain.LedgerEntry, domain.Claim) {
		entry := s.insertEntry("alice", "-30", s.now)
		claim := s.newClaim(enrollment, &entry.EntryID)
		claim.Status = status
		claim.ApprovedAmount = &amount
		claim.DecidedAt = &decidedAt
		s.Require().NoError(s.repos.TxManager.WithTx(s.ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
			return uow.Claims().InsertClaim(ctx, claim)
		}))
		return entry, claim
	}
	approvedEntry, approved := insert(domain.ClaimApproved)
	paidEntry, paid := insert(domain.ClaimPaid)

	cascade := func(entryID string) []string {
		var rejected []string
		s.Require().NoError(s.repos.TxManager.WithTx(s.ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
			var err error
			rejected, err = uow.Claims().RejectUnpaidClaimsForEntry(ctx, s.scope, entryID, domain.ReasonLinkedEntryVoided, "owner-1", s.now)
			return err
		}))
		return rejected
	}
	s.Equal([]string{approved.ClaimID}, cascade(approvedEntry.EntryID))
	s.Empty(cascade(paidEntry.EntryID))

	stored, err := s.repos.ClaimRepo.FindClaimByID(s.ctx, s.scope, approved.ClaimID)
	s.Require().NoError(err)
	s.Equal(domain.ClaimRejected, stored.Status)
	stored, err = s.repos.ClaimRepo.FindClaimByID(s.ctx, s.scope, paid.ClaimID)
	s.Require().NoError(err)
	s.Equal(domain.ClaimPaid, stored.Status)
}

func (s *SQLiteRepositoryTestSuite) TestPeriodAggregates() {
	_, enrollment := s.insertPolicyAndEnrollment("alice")
	period := domain.PeriodFor(domain.PeriodMonthly, s.now, time.UTC)

	decide := func(amount string, decidedAt time.Time, status domain.ClaimStatus) domain.Claim {
		c := s.newClaim(enrollment, nil)
		requested := decimal.RequireFromString(amount)
		c.RequestedAmount = &requested
		s.Require().NoError(s.repos.TxManager.WithTx(s.ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
			if err := uow.Claims().InsertClaim(ctx, c); err != nil {
				return err
			}
			decided := c
			decided.Status = status
			decided.DecidedAt = &decidedAt
			if status != domain.ClaimRejected {
				decided.ApprovedAmount = &requested
			}
			return uow.Claims().UpdateClaimOutcome(ctx, decided, domain.ClaimPending)
		}))
		return c
	}

	counted := decide("40.25", s.now, domain.ClaimPaid)
	decide("10", s.now.Add(time.Hour), domain.ClaimApproved)
	decide("99", s.now, domain.ClaimRejected)
	decide("70", period.Start.Add(-time.Second), domain.ClaimPaid)

	var sum, sumExcluding decimal.Decimal
	var count int
	s.Require().NoError(s.repos.TxManager.WithTx(s.ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		var err error
		if sum, err = uow.Claims().SumApprovedBetween(ctx, s.scope, enrollment.EnrollmentID, period.Start, period.End, ""); err != nil {
			return err
		}
		if sumExcluding, err = uow.Claims().SumApprovedBetween(ctx, s.scope, enrollment.EnrollmentID, period.Start, period.End, counted.ClaimID); err != nil {
			return err
		}
		count, err = uow.Claims().CountActiveClaimsFiledBetween(ctx, s.scope, enrollment.EnrollmentID, period.Start, period.End)
		return err
	}))

	s.True(sum.Equal(decimal.RequireFromString("50.25")), sum.String())
	s.True(sumExcluding.Equal(decimal.NewFromInt(10)), sumExcluding.String())
	// All four were filed at s.now; the rejected one does not count.
	s.Equal(3, count)
}

func (s *SQLiteRepositoryTestSuite) TestSingleActiveEnrollmentPerPolicy() {
	policy, enrollment := s.insertPolicyAndEnrollment("alice")

	again := enrollment
	again.EnrollmentID = uuid.NewString()
	err := s.repos.EnrollmentRepo.SaveEnrollment(s.ctx, again)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	cancelledAt := s.now
	s.Require().NoError(s.repos.EnrollmentRepo.UpdateEnrollmentStatus(s.ctx, s.scope, enrollment.EnrollmentID, domain.EnrollmentCancelled, &cancelledAt, "owner-1", s.now))
	s.Require().NoError(s.repos.EnrollmentRepo.SaveEnrollment(s.ctx, again))

	found, err := s.repos.EnrollmentRepo.FindEnrollmentForActor(s.ctx, s.scope, "alice", policy.PolicyID)
	s.Require().NoError(err)
	s.Equal(again.EnrollmentID, found.EnrollmentID)

	all, err := s.repos.EnrollmentRepo.ListEnrollments(s.ctx, s.scope, "alice")
	s.Require().NoError(err)
	s.Len(all, 2)
}
