package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/claims_ledger/internal/models"
	"github.com/SscSPs/claims_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxScopeRepository struct {
	db querier
}

func newPgxScopeRepository(pool *pgxpool.Pool) *PgxScopeRepository {
	return &PgxScopeRepository{db: pool}
}

var _ portsrepo.ScopeRepositoryFacade = (*PgxScopeRepository)(nil)

const scopeColumns = `join_code, owner_id, sub_group_key, name, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanScope(row rowScanner) (domain.Scope, error) {
	var m models.TenantScope
	if err := row.Scan(
		&m.JoinCode, &m.OwnerID, &m.SubGroupKey, &m.Name, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	); err != nil {
		return domain.Scope{}, err
	}
	return mapping.ToDomainScope(m), nil
}

func (r *PgxScopeRepository) SaveScope(ctx context.Context, scope domain.Scope) error {
	m := mapping.ToModelScope(scope)
	_, err := r.db.Exec(ctx, `
		INSERT INTO tenant_scopes (`+scopeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.JoinCode, m.OwnerID, m.SubGroupKey, m.Name, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, fmt.Sprintf("save scope %s", m.JoinCode))
}

func (r *PgxScopeRepository) FindScopeByJoinCode(ctx context.Context, joinCode string) (*domain.Scope, error) {
	row := r.db.QueryRow(ctx, `SELECT `+scopeColumns+` FROM tenant_scopes WHERE join_code = $1`, joinCode)
	scope, err := scanScope(row)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("scope %s", joinCode))
	}
	return &scope, nil
}

func (r *PgxScopeRepository) ListScopesByOwner(ctx context.Context, ownerID string) ([]domain.Scope, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+scopeColumns+` FROM tenant_scopes
		WHERE owner_id = $1
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

func (r *PgxScopeRepository) DeactivateScope(ctx context.Context, joinCode string, updatedBy string, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE tenant_scopes SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE join_code = $3`, updatedAt, updatedBy, joinCode)
	if err != nil {
		return translateError(err, fmt.Sprintf("deactivate scope %s", joinCode))
	}
	return requireOneRow(tag, fmt.Sprintf("scope %s", joinCode))
}
