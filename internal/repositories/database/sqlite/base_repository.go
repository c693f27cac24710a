package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/mattn/go-sqlite3"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Timestamps are stored as fixed-width UTC text so that range predicates
// and ORDER BY compare them chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}

// timeValue scans a stored timestamp into a time.Time.
type timeValue struct{ dst *time.Time }

func (v timeValue) Scan(src any) error {
	switch s := src.(type) {
	case string:
		t, err := parseTime(s)
		*v.dst = t
		return err
	case []byte:
		t, err := parseTime(string(s))
		*v.dst = t
		return err
	case time.Time:
		*v.dst = s.UTC()
		return nil
	case nil:
		return errors.New("unexpected NULL timestamp")
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

// nullTimeValue scans a nullable stored timestamp into a *time.Time.
type nullTimeValue struct{ dst **time.Time }

func (v nullTimeValue) Scan(src any) error {
	if src == nil {
		*v.dst = nil
		return nil
	}
	var t time.Time
	if err := (timeValue{dst: &t}).Scan(src); err != nil {
		return err
	}
	*v.dst = &t
	return nil
}

// translateError maps driver errors onto the apperrors kinds.
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch {
		case sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique,
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %s: %v", apperrors.ErrDuplicate, what, err)
		case sqliteErr.Code == sqlite3.ErrBusy, sqliteErr.Code == sqlite3.ErrLocked:
			return fmt.Errorf("%w: %s: %v", apperrors.ErrRetryable, what, err)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}

func requireOneRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return nil
}
