package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type gormStore struct {
	db            *gorm.DB
	employees     EmployeeRepository
	compensations CompensationRepository
}

// NewStore создаёт хранилище поверх подключения GORM (PostgreSQL или SQLite)
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:            db,
		employees:     NewEmployeeRepository(db),
		compensations: NewCompensationRepository(db),
	}
}

func (s *gormStore) Employees() EmployeeRepository {
	return s.employees
}

func (s *gormStore) Compensations() CompensationRepository {
	return s.compensations
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
