// Package testutil holds helpers shared by database-backed tests.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/SscSPs/claims_ledger/pkg/database"
	"github.com/stretchr/testify/require"
)

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewSQLiteDB creates a migrated SQLite database file under t.TempDir and
// returns an application handle to it. The handle is closed on cleanup.
func NewSQLiteDB(t testing.TB) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "claims_ledger_test.db")
	require.NoError(t, database.RunMigrations(database.DriverSQLite, path, DiscardLogger()))

	db, err := database.NewSQLiteDB(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
