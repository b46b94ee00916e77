package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/employee-directory-api/internal/config"
	"github.com/employee-directory-api/internal/database"
	"github.com/employee-directory-api/internal/logger"
	"github.com/employee-directory-api/internal/repository"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "employee-directory",
		Short:         "Employee directory HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to optional .env file")

	serve := newServeCmd(&envFile)
	cmd.RunE = serve.RunE

	cmd.AddCommand(serve)
	cmd.AddCommand(newMigrateCmd(&envFile))
	cmd.AddCommand(newSeedCmd(&envFile))
	return cmd
}

// bootstrap загружает конфигурацию и создаёт логгер
func bootstrap(envFile string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(cfg.Log, os.Stdout)
	slog.SetDefault(log)

	return cfg, log, nil
}

// openStore открывает хранилище и применяет миграции.
// Возвращаемая функция закрывает подключение.
func openStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (repository.Store, func(), error) {
	if cfg.Driver == config.DriverMemory {
		log.Info("using in-memory store")
		return repository.NewMemoryStore(), func() {}, nil
	}

	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	closeFn := func() {
		if err := sqlDB.Close(); err != nil {
			log.Error("failed to close database", slog.Any("error", err))
		}
	}

	if err := database.Migrate(db, cfg.Driver); err != nil {
		closeFn()
		return nil, nil, err
	}

	return repository.NewStore(db), closeFn, nil
}
