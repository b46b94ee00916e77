package main

import (
	"log/slog"

	"github.com/employee-directory-api/internal/config"
	"github.com/spf13/cobra"
)

func newMigrateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			if cfg.Database.Driver == config.DriverMemory {
				log.Info("in-memory store has no migrations")
				return nil
			}

			_, closeStore, err := openStore(cmd.Context(), cfg.Database, log)
			if err != nil {
				log.Error("failed to run migrations", slog.Any("error", err))
				return err
			}
			closeStore()

			log.Info("migrations applied", slog.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}
