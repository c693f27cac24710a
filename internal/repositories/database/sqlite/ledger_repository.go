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

// LedgerEntryRepository stores ledger entries.
type LedgerEntryRepository struct {
	db querier
}

var _ portsrepo.LedgerEntryTxRepository = (*LedgerEntryRepository)(nil)

const ledgerColumns = `entry_id, owner_id, sub_group_key, actor_id, amount, kind, description, created_at, created_by, is_void, voided_at, voided_by`

func scanLedgerEntry(row rowScanner) (domain.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.OwnerID,
		&m.SubGroupKey,
		&m.ActorID,
		&m.Amount,
		&m.Kind,
		&m.Description,
		timeValue{&m.CreatedAt},
		&m.CreatedBy,
		&m.IsVoid,
		nullTimeValue{&m.VoidedAt},
		&m.VoidedBy,
	)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	return mapping.ToDomainLedgerEntry(m), nil
}

func (r *LedgerEntryRepository) InsertEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ledger_entries (`+ledgerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.EntryID, m.OwnerID, m.SubGroupKey, m.ActorID, m.Amount, m.Kind, m.Description,
		formatTime(m.CreatedAt), m.CreatedBy, m.IsVoid, formatNullTime(m.VoidedAt), m.VoidedBy,
	)
	return translateError(err, fmt.Sprintf("insert ledger entry %s", m.EntryID))
}

func (r *LedgerEntryRepository) FindEntryByID(ctx context.Context, scope domain.TenantScope, entryID string) (*domain.LedgerEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+ledgerColumns+` FROM ledger_entries
		WHERE entry_id = ? AND owner_id = ? AND sub_group_key = ?`,
		entryID, scope.OwnerID, scope.SubGroupKey)
	entry, err := scanLedgerEntry(row)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("ledger entry %s", entryID))
	}
	return &entry, nil
}

// FindEntryByIDForUpdate relies on the transaction already holding the
// database write lock (BEGIN IMMEDIATE).
func (r *LedgerEntryRepository) FindEntryByIDForUpdate(ctx context.Context, scope domain.TenantScope, entryID string) (*domain.LedgerEntry, error) {
	return r.FindEntryByID(ctx, scope, entryID)
}

func (r *LedgerEntryRepository) ListEntries(ctx context.Context, scope domain.TenantScope, actorID string, includeVoid bool, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	limit = pagination.NormalizeLimit(limit)

	var sb strings.Builder
	sb.WriteString(`SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE owner_id = ? AND sub_group_key = ?`)
	args := []any{scope.OwnerID, scope.SubGroupKey}

	if actorID != "" {
		sb.WriteString(` AND actor_id = ?`)
		args = append(args, actorID)
	}
	if !includeVoid {
		sb.WriteString(` AND is_void = 0`)
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		at := formatTime(cursor.At)
		sb.WriteString(` AND (created_at < ? OR (created_at = ? AND entry_id < ?))`)
		args = append(args, at, at, cursor.ID)
	}
	sb.WriteString(` ORDER BY created_at DESC, entry_id DESC LIMIT ?`)
	args = append(args, limit+1)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
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

// SumBalance adds the amounts in Go; SQLite would sum the TEXT column as REAL.
func (r *LedgerEntryRepository) SumBalance(ctx context.Context, scope domain.TenantScope, actorID string) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT amount FROM ledger_entries
		WHERE owner_id = ? AND sub_group_key = ? AND actor_id = ? AND is_void = 0`,
		scope.OwnerID, scope.SubGroupKey, actorID)
	if err != nil {
		return decimal.Zero, translateError(err, "sum balance")
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, translateError(err, "scan amount")
		}
		sum = sum.Add(amount)
	}
	return sum, translateError(rows.Err(), "sum balance")
}

func (r *LedgerEntryRepository) MarkEntryVoid(ctx context.Context, scope domain.TenantScope, entryID string, voidedBy string, voidedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE ledger_entries SET is_void = 1, voided_at = ?, voided_by = ?
		WHERE entry_id = ? AND owner_id = ? AND sub_group_key = ? AND is_void = 0`,
		formatTime(voidedAt), voidedBy, entryID, scope.OwnerID, scope.SubGroupKey)
	if err != nil {
		return translateError(err, fmt.Sprintf("void ledger entry %s", entryID))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("void ledger entry %s: %w", entryID, err)
	}
	if n == 1 {
		return nil
	}

	// Nothing updated: either the entry is not in scope or it is already void.
	entry, err := r.FindEntryByID(ctx, scope, entryID)
	if err != nil {
		return err
	}
	if entry.IsVoid {
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyVoid, entryID)
	}
	return fmt.Errorf("%w: void ledger entry %s", apperrors.ErrConflict, entryID)
}
