package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClaimReader defines read operations for claims
type ClaimReader interface {
	FindClaimByID(ctx context.Context, scope domain.TenantScope, claimID string) (*domain.Claim, error)

	// ListClaims returns a page of claims, newest filed first.
	ListClaims(ctx context.Context, scope domain.TenantScope, filter domain.ClaimFilter, limit int, nextToken *string) ([]domain.Claim, *string, error)
}

// ClaimWriter defines write operations for claims
type ClaimWriter interface {
	// InsertClaim inserts a pending claim. A second claim referencing the same
	// linked entry violates the unique index and returns apperrors.ErrDuplicate.
	InsertClaim(ctx context.Context, claim domain.Claim) error

	// UpdateClaimOutcome persists status, amounts, reason, decision and payout
	// fields, but only while the stored status is still from. Otherwise it
	// returns apperrors.ErrConflict.
	UpdateClaimOutcome(ctx context.Context, claim domain.Claim, from domain.ClaimStatus) error

	// RejectUnpaidClaimsForEntry rejects every pending or approved (not yet
	// paid) claim linked to entryID and returns the ids it rejected. Rejected
	// claims stop counting toward the period cap.
	RejectUnpaidClaimsForEntry(ctx context.Context, scope domain.TenantScope, entryID string, reason string, decidedBy string, decidedAt time.Time) ([]string, error)
}

// ClaimTxRepository is the claim view available inside a UnitOfWork.
type ClaimTxRepository interface {
	ClaimReader
	ClaimWriter

	FindClaimByIDForUpdate(ctx context.Context, scope domain.TenantScope, claimID string) (*domain.Claim, error)

	// FindClaimByLinkedEntry returns the claim referencing entryID, any status.
	FindClaimByLinkedEntry(ctx context.Context, scope domain.TenantScope, entryID string) (*domain.Claim, error)

	// CountActiveClaimsFiledBetween counts non-rejected claims of the enrollment filed in [from, to).
	CountActiveClaimsFiledBetween(ctx context.Context, scope domain.TenantScope, enrollmentID string, from, to time.Time) (int, error)

	// SumApprovedBetween sums approved_amount of approved or paid claims of the
	// enrollment decided in [from, to), skipping excludeClaimID.
	SumApprovedBetween(ctx context.Context, scope domain.TenantScope, enrollmentID string, from, to time.Time, excludeClaimID string) (decimal.Decimal, error)
}
