package services_test

import (
	"errors"
	"sync"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

type outcome struct {
	claim *domain.Claim
	err   error
}

func (s *ClaimServiceTestSuite) concurrently(n int, fn func(i int) (*domain.Claim, error)) []outcome {
	results := make([]outcome, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			claim, err := fn(i)
			results[i] = outcome{claim: claim, err: err}
		}(i)
	}
	close(start)
	wg.Wait()
	return results
}

func (s *ClaimServiceTestSuite) TestSubmitClaim_ConcurrentDuplicatesAdmitOne() {
	entry := s.purchase(studentA, "-20")

	results := s.concurrently(8, func(int) (*domain.Claim, error) {
		return s.submit(studentA, s.linkedClaimRequest(s.policy.PolicyID, entry.EntryID))
	})

	succeeded := 0
	for _, r := range results {
		if r.err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(r.err, apperrors.ErrDuplicate)
		var rejected *apperrors.RejectedError
		s.True(errors.As(r.err, &rejected))
	}
	s.Equal(1, succeeded)

	page, err := s.svc.Claim.ListClaims(s.ctx, s.scope, ownerID, dto.ListClaimsParams{})
	s.Require().NoError(err)
	s.Len(page.Claims, 1)
}

func (s *ClaimServiceTestSuite) TestDecideClaim_ConcurrentApprovalsShareRemainingCap() {
	first, err := s.submit(studentA, s.linkedClaimRequest(s.policy.PolicyID, s.purchase(studentA, "-90").EntryID))
	s.Require().NoError(err)
	_, err = s.approve(first.ClaimID)
	s.Require().NoError(err)

	pending := make([]*domain.Claim, 2)
	for i := range pending {
		pending[i], err = s.submit(studentA, s.linkedClaimRequest(s.policy.PolicyID, s.purchase(studentA, "-20").EntryID))
		s.Require().NoError(err)
	}

	results := s.concurrently(len(pending), func(i int) (*domain.Claim, error) {
		return s.approve(pending[i].ClaimID)
	})

	var paid []*domain.Claim
	for _, r := range results {
		if r.err != nil {
			s.requireValidation(r.err, domain.ReasonPeriodCapExhausted)
			continue
		}
		paid = append(paid, r.claim)
	}
	s.Require().Len(paid, 1)
	s.True(decimal.NewFromInt(10).Equal(*paid[0].ApprovedAmount))
	s.True(decimal.NewFromInt(100).Equal(s.approvedTotal(first.EnrollmentID)))
}

// Whatever the order concurrent approvals run in, the enrollment's approved
// total within a period never exceeds the period cap.
func (s *ClaimServiceTestSuite) TestPeriodCapHoldsUnderRandomConcurrentApprovals() {
	for round := range 5 {
		periodCap := int64(gofakeit.Number(20, 200))
		req := s.linkedEntryPolicyRequest()
		req.Name = gofakeit.Company()
		req.MaxClaimsPerPeriod = 0
		req.MaxPayoutPerPeriod = decimal.NewFromInt(periodCap)
		policy := s.createPolicy(req)
		enrollment := s.enroll(studentB, policy.PolicyID)

		claims := make([]*domain.Claim, gofakeit.Number(3, 8))
		for i := range claims {
			amount := decimal.NewFromInt(int64(gofakeit.Number(1, 80))).Neg()
			entry := s.purchase(studentB, amount.String())
			claim, err := s.submit(studentB, s.linkedClaimRequest(policy.PolicyID, entry.EntryID))
			s.Require().NoError(err)
			claims[i] = claim
		}

		results := s.concurrently(len(claims), func(i int) (*domain.Claim, error) {
			return s.approve(claims[i].ClaimID)
		})

		approved := decimal.Zero
		for _, r := range results {
			if r.err != nil {
				s.requireValidation(r.err, domain.ReasonPeriodCapExhausted)
				continue
			}
			s.True(r.claim.ApprovedAmount.IsPositive())
			approved = approved.Add(*r.claim.ApprovedAmount)
		}
		s.Truef(approved.LessThanOrEqual(decimal.NewFromInt(periodCap)),
			"round %d: approved %s over cap %d", round, approved, periodCap)
		s.True(approved.Equal(s.approvedTotal(enrollment.EnrollmentID)))
	}
}

func (s *ClaimServiceTestSuite) approvedTotal(enrollmentID string) decimal.Decimal {
	page, err := s.svc.Claim.ListClaims(s.ctx, s.scope, ownerID, dto.ListClaimsParams{EnrollmentID: enrollmentID, Limit: 100})
	s.Require().NoError(err)
	total := decimal.Zero
	for _, c := range page.Claims {
		if c.ApprovedAmount != nil {
			total = total.Add(*c.ApprovedAmount)
		}
	}
	return total
}
