package main

import (
	"context"

	dbpostgres "gigmatch/internal/database/postgres"
	"gigmatch/internal/database/seeder"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the skill catalog and a demo candidate with a few demo jobs",
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

		if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
			logger.Error("seeding failed", zap.Error(err))
			return err
		}
		logger.Info("seed data loaded", zap.String("demo_candidate_id", seeder.DemoCandidateID.String()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
