package handlers_test

import (
	"context"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ScopeService ---
type MockScopeService struct {
	mock.Mock
}

func (m *MockScopeService) ResolveScope(ctx context.Context, joinCode string) (*domain.Scope, error) {
	args := m.Called(ctx, joinCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scope), args.Error(1)
}
func (m *MockScopeService) ListScopes(ctx context.Context, ownerID string) ([]domain.Scope, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scope), args.Error(1)
}
func (m *MockScopeService) CreateScope(ctx context.Context, ownerID string, req dto.CreateScopeRequest) (*domain.Scope, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scope), args.Error(1)
}
func (m *MockScopeService) DeactivateScope(ctx context.Context, joinCode string, requestingUserID string) error {
	args := m.Called(ctx, joinCode, requestingUserID)
	return args.Error(0)
}

var _ portssvc.ScopeSvcFacade = (*MockScopeService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetEntry(ctx context.Context, scope domain.TenantScope, entryID string, requestingUserID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, scope, entryID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) ListEntries(ctx context.Context, scope domain.TenantScope, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, scope, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
func (m *MockLedgerService) Balance(ctx context.Context, scope domain.TenantScope, actorID string, requestingUserID string) (decimal.Decimal, error) {
	args := m.Called(ctx, scope, actorID, requestingUserID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) RecordEntry(ctx context.Context, scope domain.TenantScope, req dto.RecordEntryRequest, requestingUserID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, scope, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) VoidEntry(ctx context.Context, scope domain.TenantScope, entryID string, requestingUserID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, scope, entryID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) Transfer(ctx context.Context, scope domain.TenantScope, req dto.TransferRequest, requestingUserID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, scope, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock PolicyService ---
type MockPolicyService struct {
	mock.Mock
}

func (m *MockPolicyService) GetPolicy(ctx context.Context, scope domain.TenantScope, policyID string) (*domain.Policy, error) {
	args := m.Called(ctx, scope, policyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Policy), args.Error(1)
}
func (m *MockPolicyService) ListPolicies(ctx context.Context, scope domain.TenantScope, params dto.ListPoliciesParams) ([]domain.Policy, error) {
	args := m.Called(ctx, scope, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Policy), args.Error(1)
}
func (m *MockPolicyService) CreatePolicy(ctx context.Context, scope domain.TenantScope, req dto.CreatePolicyRequest, requestingUserID string) (*domain.Policy, error) {
	args := m.Called(ctx, scope, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Policy), args.Error(1)
}
func (m *MockPolicyService) UpdatePolicy(ctx context.Context, scope domain.TenantScope, policyID string, req dto.UpdatePolicyRequest, requestingUserID string) (*domain.Policy, error) {
	args := m.Called(ctx, scope, policyID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Policy), args.Error(1)
}
func (m *MockPolicyService) DeactivatePolicy(ctx context.Context, scope domain.TenantScope, policyID string, requestingUserID string) error {
	args := m.Called(ctx, scope, policyID, requestingUserID)
	return args.Error(0)
}

var _ portssvc.PolicySvcFacade = (*MockPolicyService)(nil)

// --- Mock EnrollmentService ---
type MockEnrollmentService struct {
	mock.Mock
}

func (m *MockEnrollmentService) GetEnrollment(ctx context.Context, scope domain.TenantScope, actorID, policyID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, scope, actorID, policyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}
func (m *MockEnrollmentService) ListEnrollments(ctx context.Context, scope domain.TenantScope, requestingUserID string, params dto.ListEnrollmentsParams) ([]domain.Enrollment, error) {
	args := m.Called(ctx, scope, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Enrollment), args.Error(1)
}
func (m *MockEnrollmentService) IsCoverageActive(enrollment domain.Enrollment) bool {
	args := m.Called(enrollment)
	return args.Bool(0)
}
func (m *MockEnrollmentService) Enroll(ctx context.Context, scope domain.TenantScope, policyID string, req dto.EnrollRequest, requestingUserID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, scope, policyID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}
func (m *MockEnrollmentService) CancelEnrollment(ctx context.Context, scope domain.TenantScope, enrollmentID string, requestingUserID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, scope, enrollmentID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}
func (m *MockEnrollmentService) SetPaymentStatus(ctx context.Context, scope domain.TenantScope, enrollmentID string, req dto.SetPaymentStatusRequest, requestingUserID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, scope, enrollmentID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

var _ portssvc.EnrollmentSvcFacade = (*MockEnrollmentService)(nil)

// --- Mock ClaimService ---
type MockClaimService struct {
	mock.Mock
}

func (m *MockClaimService) GetClaim(ctx context.Context, scope domain.TenantScope, claimID string, requestingUserID string) (*domain.Claim, error) {
	args := m.Called(ctx, scope, claimID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) ListClaims(ctx context.Context, scope domain.TenantScope, requestingUserID string, params dto.ListClaimsParams) (*dto.ListClaimsResponse, error) {
	args := m.Called(ctx, scope, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListClaimsResponse), args.Error(1)
}
func (m *MockClaimService) SubmitClaim(ctx context.Context, scope domain.TenantScope, actorID string, req dto.SubmitClaimRequest) (*domain.Claim, error) {
	args := m.Called(ctx, scope, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) DecideClaim(ctx context.Context, scope domain.TenantScope, claimID string, deciderID string, req dto.DecideClaimRequest) (*domain.Claim, error) {
	args := m.Called(ctx, scope, claimID, deciderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) PayClaim(ctx context.Context, scope domain.TenantScope, claimID string, deciderID string) (*domain.Claim, error) {
	args := m.Called(ctx, scope, claimID, deciderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

var _ portssvc.ClaimSvcFacade = (*MockClaimService)(nil)
