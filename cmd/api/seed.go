package main

import (
	"log/slog"

	"github.com/employee-directory-api/internal/config"
	"github.com/employee-directory-api/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample employee hierarchy into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			if cfg.Database.Driver == config.DriverMemory {
				log.Warn("seeding the in-memory store has no effect outside serve; use SEED_DATA=true")
				return nil
			}

			store, closeStore, err := openStore(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer closeStore()

			created, err := seed.Load(cmd.Context(), store)
			if err != nil {
				log.Error("failed to seed data", slog.Any("error", err))
				return err
			}

			log.Info("seed data loaded", slog.Int("created", created))
			return nil
		},
	}
}
