package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/claims_ledger/migrations"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// RunMigrations applies every pending up migration. It opens its own
// connection because golang-migrate closes the database it is handed.
func RunMigrations(driverName, dsn string, logger *slog.Logger) error {
	m, err := newMigrator(driverName, dsn)
	if err != nil {
		return err
	}

	err = m.Up()
	upErr := err
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		closeMigrator(m, logger)
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if err := closeMigrator(m, logger); err != nil {
		return err
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// RollbackMigrations reverts the last steps migrations.
func RollbackMigrations(driverName, dsn string, steps int, logger *slog.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	m, err := newMigrator(driverName, dsn)
	if err != nil {
		return err
	}
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		closeMigrator(m, logger)
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	logger.Info("Database migrations rolled back", slog.Int("steps", steps))
	return closeMigrator(m, logger)
}

func newMigrator(driverName, dsn string) (*migrate.Migrate, error) {
	switch driverName {
	case DriverPostgres:
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection for migrations: %w", err)
		}
		driver, err := postgres.WithInstance(db, &postgres.Config{})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
		}
		source, err := iofs.New(migrations.Postgres, "postgres")
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("could not load embedded migrations: %w", err)
		}
		return migrate.NewWithInstance("iofs", source, "postgres", driver)

	case DriverSQLite:
		db, err := sql.Open("sqlite3", SQLiteDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection for migrations: %w", err)
		}
		driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("could not create sqlite driver instance for migrations: %w", err)
		}
		source, err := iofs.New(migrations.SQLite, "sqlite")
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("could not load embedded migrations: %w", err)
		}
		return migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	}
	return nil, fmt.Errorf("unsupported database driver %q", driverName)
}

func closeMigrator(m *migrate.Migrate, logger *slog.Logger) error {
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return fmt.Errorf("migration database error: %w", dbErr)
	}
	return nil
}
