package repository

import (
	"context"
	"fmt"

	"github.com/employee-directory-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type compensationRepository struct {
	db *gorm.DB
}

// NewCompensationRepository создаёт новый экземпляр репозитория
func NewCompensationRepository(db *gorm.DB) CompensationRepository {
	return &compensationRepository{db: db}
}

func (r *compensationRepository) Create(ctx context.Context, comp *domain.Compensation) error {
	if comp.ID == "" {
		id, err := newCompensationID()
		if err != nil {
			return err
		}
		comp.ID = id
	}

	if err := r.db.WithContext(ctx).Create(comp).Error; err != nil {
		return fmt.Errorf("create compensation: %w", err)
	}
	return nil
}

func (r *compensationRepository) ListByEmployeeID(ctx context.Context, employeeID string) ([]domain.Compensation, error) {
	var comps []domain.Compensation
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("id ASC").
		Find(&comps).Error
	if err != nil {
		return nil, fmt.Errorf("list compensations: %w", err)
	}
	return comps, nil
}

// newCompensationID выдаёт UUIDv7: порядок ID совпадает с порядком добавления
func newCompensationID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate compensation id: %w", err)
	}
	return id.String(), nil
}
