package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/claims_ledger/internal/models"
	"github.com/SscSPs/claims_ledger/internal/utils/mapping"
)

// PolicyRepository stores reimbursement policies.
type PolicyRepository struct {
	db querier
}

var _ portsrepo.PolicyRepositoryFacade = (*PolicyRepository)(nil)

const policyColumns = `policy_id, owner_id, sub_group_key, name, description, claim_type, premium,
	waiting_period_days, claim_filing_deadline_days, max_claims_per_period, max_payout_per_period,
	max_payout_per_claim, period_unit, deferred_payout, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPolicy(row rowScanner) (domain.Policy, error) {
	var m models.Policy
	err := row.Scan(
		&m.PolicyID,
		&m.OwnerID,
		&m.SubGroupKey,
		&m.Name,
		&m.Description,
		&m.ClaimType,
		&m.Premium,
		&m.WaitingPeriodDays,
		&m.ClaimFilingDeadlineDays,
		&m.MaxClaimsPerPeriod,
		&m.MaxPayoutPerPeriod,
		&m.MaxPayoutPerClaim,
		&m.PeriodUnit,
		&m.DeferredPayout,
		&m.IsActive,
		timeValue{&m.CreatedAt},
		&m.CreatedBy,
		timeValue{&m.LastUpdatedAt},
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Policy{}, err
	}
	return mapping.ToDomainPolicy(m), nil
}

func (r *PolicyRepository) SavePolicy(ctx context.Context, policy domain.Policy) error {
	m := mapping.ToModelPolicy(policy)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO policies (`+policyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.PolicyID, m.OwnerID, m.SubGroupKey, m.Name, m.Description, m.ClaimType, m.Premium,
		m.WaitingPeriodDays, m.ClaimFilingDeadlineDays, m.MaxClaimsPerPeriod, m.MaxPayoutPerPeriod,
		m.MaxPayoutPerClaim, m.PeriodUnit, m.DeferredPayout, m.IsActive,
		formatTime(m.CreatedAt), m.CreatedBy, formatTime(m.LastUpdatedAt), m.LastUpdatedBy,
	)
	return translateError(err, fmt.Sprintf("save policy %s", m.PolicyID))
}

func (r *PolicyRepository) UpdatePolicy(ctx context.Context, policy domain.Policy) error {
	m := mapping.ToModelPolicy(policy)
	res, err := r.db.ExecContext(ctx, `
		UPDATE policies SET
			name = ?, description = ?, premium = ?, waiting_period_days = ?,
			claim_filing_deadline_days = ?, max_claims_per_period = ?, max_payout_per_period = ?,
			max_payout_per_claim = ?, period_unit = ?, deferred_payout = ?, is_active = ?,
			last_updated_at = ?, last_updated_by = ?
		WHERE policy_id = ? AND owner_id = ? AND sub_group_key = ?`,
		m.Name, m.Description, m.Premium, m.WaitingPeriodDays,
		m.ClaimFilingDeadlineDays, m.MaxClaimsPerPeriod, m.MaxPayoutPerPeriod,
		m.MaxPayoutPerClaim, m.PeriodUnit, m.DeferredPayout, m.IsActive,
		formatTime(m.LastUpdatedAt), m.LastUpdatedBy,
		m.PolicyID, m.OwnerID, m.SubGroupKey,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("update policy %s", m.PolicyID))
	}
	return requireOneRow(res, fmt.Sprintf("policy %s", m.PolicyID))
}

func (r *PolicyRepository) FindPolicyByID(ctx context.Context, scope domain.TenantScope, policyID string) (*domain.Policy, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+policyColumns+` FROM policies
		WHERE policy_id = ? AND owner_id = ? AND sub_group_key = ?`,
		policyID, scope.OwnerID, scope.SubGroupKey)
	policy, err := scanPolicy(row)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("policy %s", policyID))
	}
	return &policy, nil
}

func (r *PolicyRepository) ListPolicies(ctx context.Context, scope domain.TenantScope, includeInactive bool) ([]domain.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE owner_id = ? AND sub_group_key = ?`
	if !includeInactive {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY name, policy_id`

	rows, err := r.db.QueryContext(ctx, query, scope.OwnerID, scope.SubGroupKey)
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
