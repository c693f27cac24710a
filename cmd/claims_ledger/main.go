package main

import (
	"log/slog"
	"os"

	"github.com/SscSPs/claims_ledger/internal/platform/config"
	"github.com/spf13/cobra"
)

// @title Claims Ledger API
// @version 1.0
// @description Tenant-scoped ledger with reimbursement policies, enrollments and claims.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCommand(logger).Execute(); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the config is loaded.
type app struct {
	logger *slog.Logger
	cfg    *config.Config
}

func newRootCommand(logger *slog.Logger) *cobra.Command {
	a := &app{logger: logger}

	cmd := &cobra.Command{
		Use:           "claims_ledger",
		Short:         "Tenant-scoped ledger and claim-integrity engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	cmd.AddCommand(serveCommand(a))
	cmd.AddCommand(migrateCommand(a))
	cmd.AddCommand(tokenCommand(a))
	return cmd
}

// migrationDSN is what golang-migrate connects to for the configured driver.
func (a *app) migrationDSN() string {
	if a.cfg.DBDriver == config.DriverSQLite {
		return a.cfg.SQLitePath
	}
	return a.cfg.DatabaseURL
}
