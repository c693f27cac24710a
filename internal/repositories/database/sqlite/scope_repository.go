package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/claims_ledger/internal/models"
	"github.com/SscSPs/claims_ledger/internal/utils/mapping"
)

// ScopeRepository stores tenant scopes.
type ScopeRepository struct {
	db querier
}

var _ portsrepo.ScopeRepositoryFacade = (*ScopeRepository)(nil)

const scopeColumns = `join_code, owner_id, sub_group_key, name, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanScope(row rowScanner) (domain.Scope, error) {
	var m models.TenantScope
	err := row.Scan(
		&m.JoinCode,
		&m.OwnerID,
		&m.SubGroupKey,
		&m.Name,
		&m.IsActive,
		timeValue{&m.CreatedAt},
		&m.CreatedBy,
		timeValue{&m.LastUpdatedAt},
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Scope{}, err
	}
	return mapping.ToDomainScope(m), nil
}

func (r *ScopeRepository) SaveScope(ctx context.Context, scope domain.Scope) error {
	m := mapping.ToModelScope(scope)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tenant_scopes (`+scopeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.JoinCode, m.OwnerID, m.SubGroupKey, m.Name, m.IsActive,
		formatTime(m.CreatedAt), m.CreatedBy, formatTime(m.LastUpdatedAt), m.LastUpdatedBy,
	)
	return translateError(err, fmt.Sprintf("save scope %s", m.JoinCode))
}

func (r *ScopeRepository) FindScopeByJoinCode(ctx context.Context, joinCode string) (*domain.Scope, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+scopeColumns+` FROM tenant_scopes WHERE join_code = ?`, joinCode)
	scope, err := scanScope(row)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("scope %s", joinCode))
	}
	return &scope, nil
}

func (r *ScopeRepository) ListScopesByOwner(ctx context.Context, ownerID string) ([]domain.Scope, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+scopeColumns+` FROM tenant_scopes
		WHERE owner_id = ?
		ORDER BY created_at DESC, join_code`, ownerID)
	if err != nil {
		return nil, translateError(err, "list scopes")
	}
	defer rows.Close()

	scopes := []domain.Scope{}
	for rows.Next() {
		scope, err := scanScope(rows)
		if err != nil {
			return nil, translateError(err, "scan scope")
		}
		scopes = append(scopes, scope)
	}
	return scopes, translateError(rows.Err(), "list scopes")
}

func (r *ScopeRepository) DeactivateScope(ctx context.Context, joinCode string, updatedBy string, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tenant_scopes SET is_active = 0, last_updated_at = ?, last_updated_by = ?
		WHERE join_code = ?`,
		formatTime(updatedAt), updatedBy, joinCode)
	if err != nil {
		return translateError(err, fmt.Sprintf("deactivate scope %s", joinCode))
	}
	return requireOneRow(res, fmt.Sprintf("scope %s", joinCode))
}
