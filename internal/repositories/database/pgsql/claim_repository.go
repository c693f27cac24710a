package pgsql

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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxClaimRepository struct {
	db querier
}

func newPgxClaimRepository(pool *pgxpool.Pool) *PgxClaimRepository {
	return &PgxClaimRepository{db: pool}
}

var _ portsrepo.ClaimTxRepository = (*PgxClaimRepository)(nil)

const claimColumns = `claim_id, owner_id, sub_group_key, enrollment_id, policy_id, actor_id,
	linked_entry_id, requested_amount, incident_date, description, status, approved_amount,
	rejection_reason, filed_at, decided_at, decided_by, paid_at, payout_entry_id`

func scanClaim(row rowScanner) (domain.Claim, error) {
	var m models.Claim
	if err := row.Scan(
		&m.ClaimID, &m.OwnerID, &m.SubGroupKey, &m.EnrollmentID, &m.PolicyID, &m.ActorID,
		&m.LinkedEntryID, &m.RequestedAmount, &m.IncidentDate, &m.Description, &m.Status, &m.ApprovedAmount,
		&m.RejectionReason, &m.FiledAt, &m.DecidedAt, &m.DecidedBy, &m.PaidAt, &m.PayoutEntryID,
	); err != nil {
		return domain.Claim{}, err
	}
	return mapping.ToDomainClaim(m), nil
}

func (r *PgxClaimRepository) InsertClaim(ctx context.Context, claim domain.Claim) error {
	m := mapping.ToModelClaim(claim)
	_, err := r.db.Exec(ctx, `
		INSERT INTO claims (`+claimColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		m.ClaimID, m.OwnerID, m.SubGroupKey, m.EnrollmentID, m.PolicyID, m.ActorID,
		m.LinkedEntryID, m.RequestedAmount, m.IncidentDate, m.Description, m.Status, m.ApprovedAmount,
		m.RejectionReason, m.FiledAt, m.DecidedAt, m.DecidedBy, m.PaidAt, m.PayoutEntryID,
	)
	return translateError(err, fmt.Sprintf("insert claim %s", m.ClaimID))
}

func (r *PgxClaimRepository) findClaim(ctx context.Context, scope domain.TenantScope, claimID string, lock bool) (*domain.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims
		WHERE claim_id = $1 AND owner_id = $2 AND sub_group_key = $3`
	if lock {
		query += ` FOR UPDATE`
	}
	claim, err := scanClaim(r.db.QueryRow(ctx, query, claimID, scope.OwnerID, scope.SubGroupKey))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("claim %s", claimID))
	}
	return &claim, nil
}

func (r *PgxClaimRepository) FindClaimByID(ctx context.Context, scope domain.TenantScope, claimID string) (*domain.Claim, error) {
	return r.findClaim(ctx, scope, claimID, false)
}

func (r *PgxClaimRepository) FindClaimByIDForUpdate(ctx context.Context, scope domain.TenantScope, claimID string) (*domain.Claim, error) {
	return r.findClaim(ctx, scope, claimID, true)
}

func (r *PgxClaimRepository) FindClaimByLinkedEntry(ctx context.Context, scope domain.TenantScope, entryID string) (*domain.Claim, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+claimColumns+` FROM claims
		WHERE linked_entry_id = $1 AND owner_id = $2 AND sub_group_key = $3`,
		entryID, scope.OwnerID, scope.SubGroupKey)
	claim, err := scanClaim(row)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("claim for entry %s", entryID))
	}
	return &claim, nil
}

func (r *PgxClaimRepository) ListClaims(ctx context.Context, scope domain.TenantScope, filter domain.ClaimFilter, limit int, nextToken *string) ([]domain.Claim, *string, error) {
	limit = pagination.NormalizeLimit(limit)

	args := &argList{}
	var sb strings.Builder
	sb.WriteString(`SELECT ` + claimColumns + ` FROM claims WHERE owner_id = ` + args.add(scope.OwnerID) +
		` AND sub_group_key = ` + args.add(scope.SubGroupKey))
	if filter.ActorID != "" {
		sb.WriteString(` AND actor_id = ` + args.add(filter.ActorID))
	}
	if filter.EnrollmentID != "" {
		sb.WriteString(` AND enrollment_id = ` + args.add(filter.EnrollmentID))
	}
	if filter.Status != "" {
		sb.WriteString(` AND status = ` + args.add(string(filter.Status)))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		sb.WriteString(` AND (filed_at, claim_id) < (` + args.add(cursor.At) + `, ` + args.add(cursor.ID) + `)`)
	}
	sb.WriteString(` ORDER BY filed_at DESC, claim_id DESC LIMIT ` + args.add(limit+1))

	rows, err := r.db.Query(ctx, sb.String(), args.values...)
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

func (r *PgxClaimRepository) UpdateClaimOutcome(ctx context.Context, claim domain.Claim, from domain.ClaimStatus) error {
	m := mapping.ToModelClaim(claim)
	tag, err := r.db.Exec(ctx, `
		UPDATE claims SET
			status = $1, approved_amount = $2, rejection_reason = $3,
			decided_at = $4, decided_by = $5, paid_at = $6, payout_entry_id = $7
		WHERE claim_id = $8 AND owner_id = $9 AND sub_group_key = $10 AND status = $11`,
		m.Status, m.ApprovedAmount, m.RejectionReason,
		m.DecidedAt, m.DecidedBy, m.PaidAt, m.PayoutEntryID,
		m.ClaimID, m.OwnerID, m.SubGroupKey, string(from),
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("update claim %s", m.ClaimID))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: claim %s is no longer %s", apperrors.ErrConflict, m.ClaimID, from)
	}
	return nil
}

func (r *PgxClaimRepository) RejectUnpaidClaimsForEntry(ctx context.Context, scope domain.TenantScope, entryID string, reason string, decidedBy string, decidedAt time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE claims SET status = $1, rejection_reason = $2, decided_at = $3, decided_by = $4
		WHERE linked_entry_id = $5 AND owner_id = $6 AND sub_group_key = $7 AND status IN ($8, $9)
		RETURNING claim_id`,
		string(domain.ClaimRejected), reason, decidedAt, decidedBy,
		entryID, scope.OwnerID, scope.SubGroupKey, string(domain.ClaimPending), string(domain.ClaimApproved))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("reject claims for entry %s", entryID))
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("reject claims for entry %s", entryID))
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *PgxClaimRepository) CountActiveClaimsFiledBetween(ctx context.Context, scope domain.TenantScope, enrollmentID string, from, to time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM claims
		WHERE enrollment_id = $1 AND owner_id = $2 AND sub_group_key = $3
		  AND status <> $4 AND filed_at >= $5 AND filed_at < $6`,
		enrollmentID, scope.OwnerID, scope.SubGroupKey, string(domain.ClaimRejected), from, to,
	).Scan(&n)
	if err != nil {
		return 0, translateError(err, "count claims")
	}
	return n, nil
}

func (r *PgxClaimRepository) SumApprovedBetween(ctx context.Context, scope domain.TenantScope, enrollmentID string, from, to time.Time, excludeClaimID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(approved_amount), 0) FROM claims
		WHERE enrollment_id = $1 AND owner_id = $2 AND sub_group_key = $3
		  AND status IN ($4, $5) AND decided_at >= $6 AND decided_at < $7 AND claim_id <> $8`,
		enrollmentID, scope.OwnerID, scope.SubGroupKey,
		string(domain.ClaimApproved), string(domain.ClaimPaid), from, to, excludeClaimID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, translateError(err, "sum approved amounts")
	}
	return sum, nil
}
