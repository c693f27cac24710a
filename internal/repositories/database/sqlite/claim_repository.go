package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/claims_ledger/internal/models"
	"github.com/SscSPs/claims_ledger/internal/utils/mapping"
	"github.com/SscSPs/claims_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// ClaimRepository stores claims.
type ClaimRepository struct {
	db querier
}

var _ portsrepo.ClaimTxRepository = (*ClaimRepository)(nil)

const claimColumns = `claim_id, owner_id, sub_group_key, enrollment_id, policy_id, actor_id,
	linked_entry_id, requested_amount, incident_date, description, status, approved_amount,
	rejection_reason, filed_at, decided_at, decided_by, paid_at, payout_entry_id`

func scanClaim(row rowScanner) (domain.Claim, error) {
	var m models.Claim
	err := row.Scan(
		&m.ClaimID,
		&m.OwnerID,
		&m.SubGroupKey,
		&m.EnrollmentID,
		&m.PolicyID,
		&m.ActorID,
		&m.LinkedEntryID,
		&m.RequestedAmount,
		timeValue{&m.IncidentDate},
		&m.Description,
		&m.Status,
		&m.ApprovedAmount,
		&m.RejectionReason,
		timeValue{&m.FiledAt},
		nullTimeValue{&m.DecidedAt},
		&m.DecidedBy,
		nullTimeValue{&m.PaidAt},
		&m.PayoutEntryID,
	)
	if err != nil {
		return domain.Claim{}, err
	}
	return mapping.ToDomainClaim(m), nil
}

func (r *ClaimRepository) InsertClaim(ctx context.Context, claim domain.Claim) error {
	m := mapping.ToModelClaim(claim)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO claims (`+claimColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ClaimID, m.OwnerID, m.SubGroupKey, m.EnrollmentID, m.PolicyID, m.ActorID,
		m.LinkedEntryID, m.RequestedAmount, formatTime(m.IncidentDate), m.Description, m.Status, m.ApprovedAmount,
		m.RejectionReason, formatTime(m.FiledAt), formatNullTime(m.DecidedAt), m.DecidedBy, formatNullTime(m.PaidAt), m.PayoutEntryID,
	)
	return translateError(err, fmt.Sprintf("insert claim %s", m.ClaimID))
}

func (r *ClaimRepository) FindClaimByID(ctx context.Context, scope domain.TenantScope, claimID string) (*domain.Claim, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+claimColumns+` FROM claims
		WHERE claim_id = ? AND owner_id = ? AND sub_group_key = ?`,
		claimID, scope.OwnerID, scope.SubGroupKey)
	claim, err := scanClaim(row)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("claim %s", claimID))
	}
	return &claim, nil
}

func (r *ClaimRepository) FindClaimByIDForUpdate(ctx context.Context, scope domain.TenantScope, claimID string) (*domain.Claim, error) {
	return r.FindClaimByID(ctx, scope, claimID)
}

func (r *ClaimRepository) FindClaimByLinkedEntry(ctx context.Context, scope domain.TenantScope, entryID string) (*domain.Claim, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+claimColumns+` FROM claims
		WHERE linked_entry_id = ? AND owner_id = ? AND sub_group_key = ?`,
		entryID, scope.OwnerID, scope.SubGroupKey)
	claim, err := scanClaim(row)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("claim for entry %s", entryID))
	}
	return &claim, nil
}

func (r *ClaimRepository) ListClaims(ctx context.Context, scope domain.TenantScope, filter domain.ClaimFilter, limit int, nextToken *string) ([]domain.Claim, *string, error) {
	limit = pagination.NormalizeLimit(limit)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + claimColumns + ` FROM claims WHERE owner_id = ? AND sub_group_key = ?`)
	args := []any{scope.OwnerID, scope.SubGroupKey}

	if filter.ActorID != "" {
		sb.WriteString(` AND actor_id = ?`)
		args = append(args, filter.ActorID)
	}
	if filter.EnrollmentID != "" {
		sb.WriteString(` AND enrollment_id = ?`)
		args = append(args, filter.EnrollmentID)
	}
	if filter.Status != "" {
		sb.WriteString(` AND status = ?`)
		args = append(args, string(filter.Status))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		at := formatTime(cursor.At)
		sb.WriteString(` AND (filed_at < ? OR (filed_at = ? AND claim_id < ?))`)
		args = append(args, at, at, cursor.ID)
	}
	sb.WriteString(` ORDER BY filed_at DESC, claim_id DESC LIMIT ?`)
	args = append(args, limit+1)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, translateError(err, "list claims")
	}
	defer rows.Close()

	claims := []domain.Claim{}
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, nil, translateError(err, "scan claim")
		}
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, translateError(err, "list claims")
	}

	var next *string
	if len(claims) > limit {
		claims = claims[:limit]
		last := claims[len(claims)-1]
		token := pagination.EncodeCursor(last.FiledAt, last.ClaimID)
		next = &token
	}
	return claims, next, nil
}

func (r *ClaimRepository) UpdateClaimOutcome(ctx context.Context, claim domain.Claim, from domain.ClaimStatus) error {
	m := mapping.ToModelClaim(claim)
	res, err := r.db.ExecContext(ctx, `
		UPDATE claims SET
			status = ?, approved_amount = ?, rejection_reason = ?,
			decided_at = ?, decided_by = ?, paid_at = ?, payout_entry_id = ?
		WHERE claim_id = ? AND owner_id = ? AND sub_group_key = ? AND status = ?`,
		m.Status, m.ApprovedAmount, m.RejectionReason,
		formatNullTime(m.DecidedAt), m.DecidedBy, formatNullTime(m.PaidAt), m.PayoutEntryID,
		m.ClaimID, m.OwnerID, m.SubGroupKey, string(from),
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("update claim %s", m.ClaimID))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update claim %s: %w", m.ClaimID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: claim %s is no longer %s", apperrors.ErrConflict, m.ClaimID, from)
	}
	return nil
}

func (r *ClaimRepository) RejectUnpaidClaimsForEntry(ctx context.Context, scope domain.TenantScope, entryID string, reason string, decidedBy string, decidedAt time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		UPDATE claims SET status = ?, rejection_reason = ?, decided_at = ?, decided_by = ?
		WHERE linked_entry_id = ? AND owner_id = ? AND sub_group_key = ? AND status IN (?, ?)
		RETURNING claim_id`,
		string(domain.ClaimRejected), reason, formatTime(decidedAt), decidedBy,
		entryID, scope.OwnerID, scope.SubGroupKey, string(domain.ClaimPending), string(domain.ClaimApproved))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("reject claims for entry %s", entryID))
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, translateError(err, "scan claim id")
		}
		ids = append(ids, id)
	}
	return ids, translateError(rows.Err(), fmt.Sprintf("reject claims for entry %s", entryID))
}

func (r *ClaimRepository) CountActiveClaimsFiledBetween(ctx context.Context, scope domain.TenantScope, enrollmentID string, from, to time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM claims
		WHERE enrollment_id = ? AND owner_id = ? AND sub_group_key = ?
		  AND status <> ? AND filed_at >= ? AND filed_at < ?`,
		enrollmentID, scope.OwnerID, scope.SubGroupKey,
		string(domain.ClaimRejected), formatTime(from), formatTime(to),
	).Scan(&n)
	if err != nil {
		return 0, translateError(err, "count claims")
	}
	return n, nil
}

func (r *ClaimRepository) SumApprovedBetween(ctx context.Context, scope domain.TenantScope, enrollmentID string, from, to time.Time, excludeClaimID string) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT approved_amount FROM claims
		WHERE enrollment_id = ? AND owner_id = ? AND sub_group_key = ?
		  AND status IN (?, ?) AND approved_amount IS NOT NULL
		  AND decided_at >= ? AND decided_at < ? AND claim_id <> ?`,
		enrollmentID, scope.OwnerID, scope.SubGroupKey,
		string(domain.ClaimApproved), string(domain.ClaimPaid),
		formatTime(from), formatTime(to), excludeClaimID)
	if err != nil {
		return decimal.Zero, translateError(err, "sum approved amounts")
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, translateError(err, "scan approved amount")
		}
		sum = sum.Add(amount)
	}
	return sum, translateError(rows.Err(), "sum approved amounts")
}
