package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/claims_ledger/internal/models"
	"github.com/SscSPs/claims_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPolicyRepository struct {
	db querier
}

func newPgxPolicyRepository(pool *pgxpool.Pool) *PgxPolicyRepository {
	return &PgxPolicyRepository{db: pool}
}

var _ portsrepo.PolicyRepositoryFacade = (*PgxPolicyRepository)(nil)

const policyColumns = `policy_id, owner_id, sub_group_key, name, description, claim_type, premium,
	waiting_period_days, claim_filing_deadline_days, max_claims_per_period, max_payout_per_period,
	max_payout_per_claim, period_unit, deferred_payout, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPolicy(row rowScanner) (domain.Policy, error) {
	var m models.Policy
	if err := row.Scan(
		&m.PolicyID, &m.OwnerID, &m.SubGroupKey, &m.Name, &m.Description, &m.ClaimType, &m.Premium,
		&m.WaitingPeriodDays, &m.ClaimFilingDeadlineDays, &m.MaxClaimsPerPeriod, &m.MaxPayoutPerPeriod,
		&m.MaxPayoutPerClaim, &m.PeriodUnit, &m.DeferredPayout, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	); err != nil {
		return domain.Policy{}, err
	}
	return mapping.ToDomainPolicy(m), nil
}

func (r *PgxPolicyRepository) SavePolicy(ctx context.Context, policy domain.Policy) error {
	m := mapping.ToModelPolicy(policy)
	_, err := r.db.Exec(ctx, `
		INSERT INTO policies (`+policyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		m.PolicyID, m.OwnerID, m.SubGroupKey, m.Name, m.Description, m.ClaimType, m.Premium,
		m.WaitingPeriodDays, m.ClaimFilingDeadlineDays, m.MaxClaimsPerPeriod, m.MaxPayoutPerPeriod,
		m.MaxPayoutPerClaim, m.PeriodUnit, m.DeferredPayout, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, fmt.Sprintf("save policy %s", m.PolicyID))
}

func (r *PgxPolicyRepository) UpdatePolicy(ctx context.Context, policy domain.Policy) error {
	m := mapping.ToModelPolicy(policy)
	tag, err := r.db.Exec(ctx, `
		UPDATE policies SET
			name = $1, description = $2, premium = $3, waiting_period_days = $4,
			claim_filing_deadline_days = $5, max_claims_per_period = $6, max_payout_per_period = $7,
			max_payout_per_claim = $8, period_unit = $9, deferred_payout = $10, is_active = $11,
			last_updated_at = $12, last_updated_by = $13
		WHERE policy_id = $14 AND owner_id = $15 AND sub_group_key = $16`,
		m.Name, m.Description, m.Premium, m.WaitingPeriodDays,
		m.ClaimFilingDeadlineDays, m.MaxClaimsPerPeriod, m.MaxPayoutPerPeriod,
		m.MaxPayoutPerClaim, m.PeriodUnit, m.DeferredPayout, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.PolicyID, m.OwnerID, m.SubGroupKey,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("update policy %s", m.PolicyID))
	}
	return requireOneRow(tag, fmt.Sprintf("policy %s", m.PolicyID))
}

func (r *PgxPolicyRepository) FindPolicyByID(ctx context.Context, scope domain.TenantScope, policyID string) (*domain.Policy, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+policyColumns+` FROM policies
		WHERE policy_id = $1 AND owner_id = $2 AND sub_group_key = $3`,
		policyID, scope.OwnerID, scope.SubGroupKey)
	policy, err := scanPolicy(row)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("policy %s", policyID))
	}
	return &policy, nil
}

func (r *PgxPolicyRepository) ListPolicies(ctx context.Context, scope domain.TenantScope, includeInactive bool) ([]domain.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE owner_id = $1 AND sub_group_key = $2`
	if !includeInactive {
		query += ` AND is_active`
	}
	query += ` ORDER BY name, policy_id`

	rows, err := r.db.Query(ctx, query, scope.OwnerID, scope.SubGroupKey)
	if err != nil {
		return nil, translateError(err, "list policies")
	}
	defer rows.Close()

	policies := []domain.Policy{}
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, translateError(err, "scan policy")
		}
		policies = append(policies, policy)
	}
	return policies, translateError(rows.Err(), "list policies")
}
