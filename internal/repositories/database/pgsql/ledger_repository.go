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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerEntryRepository struct {
	db querier
}

func newPgxLedgerEntryRepository(pool *pgxpool.Pool) *PgxLedgerEntryRepository {
	return &PgxLedgerEntryRepository{db: pool}
}

var _ portsrepo.LedgerEntryTxRepository = (*PgxLedgerEntryRepository)(nil)

const ledgerColumns = `entry_id, owner_id, sub_group_key, actor_id, amount, kind, description, created_at, created_by, is_void, voided_at, voided_by`

func scanLedgerEntry(row rowScanner) (domain.LedgerEntry, error) {
	var m models.LedgerEntry
	if err := row.Scan(
		&m.EntryID, &m.OwnerID, &m.SubGroupKey, &m.ActorID, &m.Amount, &m.Kind, &m.Description,
		&m.CreatedAt, &m.CreatedBy, &m.IsVoid, &m.VoidedAt, &m.VoidedBy,
	); err != nil {
		return domain.LedgerEntry{}, err
	}
	return mapping.ToDomainLedgerEntry(m), nil
}

func (r *PgxLedgerEntryRepository) InsertEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	_, err := r.db.Exec(ctx, `
		INSERT INTO ledger_entries (`+ledgerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.EntryID, m.OwnerID, m.SubGroupKey, m.ActorID, m.Amount, m.Kind, m.Description,
		m.CreatedAt, m.CreatedBy, m.IsVoid, m.VoidedAt, m.VoidedBy,
	)
	return translateError(err, fmt.Sprintf("insert ledger entry %s", m.EntryID))
}

func (r *PgxLedgerEntryRepository) findEntry(ctx context.Context, scope domain.TenantScope, entryID string, lock bool) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE entry_id = $1 AND owner_id = $2 AND sub_group_key = $3`
	if lock {
		query += ` FOR UPDATE`
	}
	entry, err := scanLedgerEntry(r.db.QueryRow(ctx, query, entryID, scope.OwnerID, scope.SubGroupKey))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("ledger entry %s", entryID))
	}
	return &entry, nil
}

func (r *PgxLedgerEntryRepository) FindEntryByID(ctx context.Context, scope domain.TenantScope, entryID string) (*domain.LedgerEntry, error) {
	return r.findEntry(ctx, scope, entryID, false)
}

func (r *PgxLedgerEntryRepository) FindEntryByIDForUpdate(ctx context.Context, scope domain.TenantScope, entryID string) (*domain.LedgerEntry, error) {
	return r.findEntry(ctx, scope, entryID, true)
}

func (r *PgxLedgerEntryRepository) ListEntries(ctx context.Context, scope domain.TenantScope, actorID string, includeVoid bool, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	limit = pagination.NormalizeLimit(limit)

	args := &argList{}
	var sb strings.Builder
	sb.WriteString(`SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE owner_id = ` + args.add(scope.OwnerID) +
		` AND sub_group_key = ` + args.add(scope.SubGroupKey))
	if actorID != "" {
		sb.WriteString(` AND actor_id = ` + args.add(actorID))
	}
	if !includeVoid {
		sb.WriteString(` AND NOT is_void`)
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		sb.WriteString(` AND (created_at, entry_id) < (` + args.add(cursor.At) + `, ` + args.add(cursor.ID) + `)`)
	}
	sb.WriteString(` ORDER BY created_at DESC, entry_id DESC LIMIT ` + args.add(limit+1))

	rows, err := r.db.Query(ctx, sb.String(), args.values...)
	if err != nil {
		return nil, nil, translateError(err, "list ledger entries")
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, nil, translateError(err, "scan ledger entry")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, translateError(err, "list ledger entries")
	}

	var next *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.EntryID)
		next = &token
	}
	return entries, next, nil
}

func (r *PgxLedgerEntryRepository) SumBalance(ctx context.Context, scope domain.TenantScope, actorID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM ledger_entries
		WHERE owner_id = $1 AND sub_group_key = $2 AND actor_id = $3 AND NOT is_void`,
		scope.OwnerID, scope.SubGroupKey, actorID).Scan(&sum)
	if err != nil {
		return decimal.Zero, translateError(err, "sum balance")
	}
	return sum, nil
}

func (r *PgxLedgerEntryRepository) MarkEntryVoid(ctx context.Context, scope domain.TenantScope, entryID string, voidedBy string, voidedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE ledger_entries SET is_void = TRUE, voided_at = $1, voided_by = $2
		WHERE entry_id = $3 AND owner_id = $4 AND sub_group_key = $5 AND NOT is_void`,
		voidedAt, voidedBy, entryID, scope.OwnerID, scope.SubGroupKey)
	if err != nil {
		return translateError(err, fmt.Sprintf("void ledger entry %s", entryID))
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	entry, err := r.FindEntryByID(ctx, scope, entryID)
	if err != nil {
		return err
	}
	if entry.IsVoid {
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyVoid, entryID)
	}
	return fmt.Errorf("%w: void ledger entry %s", apperrors.ErrConflict, entryID)
}
