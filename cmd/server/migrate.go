package main

import (
	"context"
	"time"

	"gigmatch/internal/database/migration"
	dbpostgres "gigmatch/internal/database/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const migrateTimeout = 5 * time.Minute

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		r := migration.Runner{Dir: cfg.App.MigrationsDir, Logger: logger.Named("migration")}
		if err := r.Run(ctx, db.SQLDB()); err != nil {
			logger.Error("migration failed", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
