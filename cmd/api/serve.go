package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/employee-directory-api/internal/handler"
	"github.com/employee-directory-api/internal/seed"
	"github.com/employee-directory-api/internal/service"
	"github.com/spf13/cobra"
)

func newServeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*envFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, closeStore, err := openStore(ctx, cfg.Database, log)
			if err != nil {
				log.Error("failed to open store", slog.Any("error", err))
				return err
			}
			defer closeStore()

			if cfg.SeedData {
				created, err := seed.Load(ctx, store)
				if err != nil {
					log.Error("failed to seed data", slog.Any("error", err))
					return err
				}
				log.Info("seed data loaded", slog.Int("created", created))
			}

			empService := service.NewEmployeeService(store, nil)
			empHandler := handler.NewEmployeeHandler(empService, log)
			router := handler.NewRouter(empHandler, log, cfg.Server.AllowedOrigins)

			server := &http.Server{
				Addr:         ":" + cfg.Server.Port,
				Handler:      router.Setup(),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				IdleTimeout:  cfg.Server.IdleTimeout,
			}

			done := make(chan struct{})
			go func() {
				defer close(done)
				<-ctx.Done()
				log.Info("server is shutting down...")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					log.Error("could not gracefully shutdown the server", slog.Any("error", err))
				}
			}()

			log.Info("server is starting", slog.String("port", cfg.Server.Port), slog.String("driver", cfg.Database.Driver))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
				return err
			}

			<-done
			log.Info("server stopped")
			return nil
		},
	}
}
