package database

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/employee-directory-api/internal/config"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// retryDelay - пауза между попытками подключения к PostgreSQL
var retryDelay = time.Second

// Open открывает подключение GORM для драйвера из конфигурации
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: newGormLogger(logger),
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		return connectPostgres(ctx, cfg, gormCfg, logger)
	case config.DriverSQLite:
		return connectSQLite(cfg.SQLitePath, gormCfg)
	default:
		return nil, fmt.Errorf("database: driver %q has no SQL backend", cfg.Driver)
	}
}

// newGormLogger пишет предупреждения GORM через slog процесса.
// Отсутствие записи - обычный ответ 404, а не ошибка.
func newGormLogger(logger *slog.Logger) gormlogger.Interface {
	return gormlogger.New(
		slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func connectPostgres(ctx context.Context, cfg config.DatabaseConfig, gormCfg *gorm.Config, logger *slog.Logger) (*gorm.DB, error) {
	var err error

	for attempt := 1; attempt <= cfg.ConnectAttempts; attempt++ {
		var db *gorm.DB
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if err = sqlDB.PingContext(ctx); err == nil {
					return db, nil
				}
				sqlDB.Close()
			} else {
				err = dbErr
			}
		}

		logger.Warn("database is not ready",
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", cfg.ConnectAttempts, err)
}

func connectSQLite(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	// SQLite допускает одного писателя; in-memory база живёт, пока открыто соединение
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	return db, nil
}

// Migrate применяет встроенные миграции goose
func Migrate(db *gorm.DB, driver string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return "postgres", nil
	case config.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("database: no migrations for driver %q", driver)
	}
}
