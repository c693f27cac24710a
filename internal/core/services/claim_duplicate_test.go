package services_test

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/claims_ledger/internal/core/services"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/SscSPs/claims_ledger/internal/platform/config"
	"github.com/SscSPs/claims_ledger/internal/platform/metrics"
)

// staleLookupTxManager hands out units of work whose claim view never finds a
// claim by linked entry, as if a concurrent submission committed between the
// lookup and the insert.
type staleLookupTxManager struct {
	portsrepo.TransactionManager
}

func (m staleLookupTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, uow portsrepo.UnitOfWork) error) error {
	return m.TransactionManager.WithTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		return fn(ctx, staleLookupUnitOfWork{uow})
	})
}

type staleLookupUnitOfWork struct {
	portsrepo.UnitOfWork
}

func (u staleLookupUnitOfWork) Claims() portsrepo.ClaimTxRepository {
	return staleLookupClaims{u.UnitOfWork.Claims()}
}

type staleLookupClaims struct {
	portsrepo.ClaimTxRepository
}

func (staleLookupClaims) FindClaimByLinkedEntry(context.Context, domain.TenantScope, string) (*domain.Claim, error) {
	return nil, apperrors.ErrNotFound
}

func (s *ClaimServiceTestSuite) TestSubmitClaim_DuplicateCaughtAtInsert() {
	entry := s.purchase(studentA, "-20")
	first, err := s.submit(studentA, s.linkedClaimRequest(s.policy.PolicyID, entry.EntryID))
	s.Require().NoError(err)

	repos := s.repos
	repos.TxManager = staleLookupTxManager{s.repos.TxManager}
	cfg := &config.Config{AccountingLocation: time.UTC, TxMaxRetries: 3}
	stale := services.NewServiceContainer(cfg, repos, nil,
		services.WithClock(s.clock.Now),
		services.WithAuditRecorder(s.auditor),
		services.WithMetrics(metrics.New()),
	)

	_, err = stale.Claim.SubmitClaim(s.ctx, s.scope, studentA, s.linkedClaimRequest(s.policy.PolicyID, entry.EntryID))
	s.requireRejected(err, domain.ReasonDuplicate)
	s.True(errors.Is(err, apperrors.ErrDuplicate))

	page, err := s.svc.Claim.ListClaims(s.ctx, s.scope, ownerID, dto.ListClaimsParams{})
	s.Require().NoError(err)
	s.Require().Len(page.Claims, 1)
	s.Equal(first.ClaimID, page.Claims[0].ClaimID)
}
