package main

import (
	"github.com/SscSPs/claims_ledger/pkg/database"
	"github.com/spf13/cobra"
)

func migrateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply or roll back database migrations",
	}
	cmd.AddCommand(migrateUpCommand(a))
	cmd.AddCommand(migrateDownCommand(a))
	return cmd
}

func migrateUpCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return database.RunMigrations(a.cfg.DBDriver, a.migrationDSN(), a.logger)
		},
	}
}

func migrateDownCommand(a *app) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "roll back the most recent migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return database.RollbackMigrations(a.cfg.DBDriver, a.migrationDSN(), steps, a.logger)
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	return cmd
}
