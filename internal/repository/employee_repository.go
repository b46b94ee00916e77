package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/employee-directory-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// directReport - строка связи руководитель -> подчинённый
type directReport struct {
	ManagerID string `gorm:"primaryKey;type:varchar(36)"`
	SortOrder int    `gorm:"primaryKey"`
	ReportID  string `gorm:"type:varchar(36);not null"`
}

func (directReport) TableName() string {
	return "employee_direct_reports"
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(emp).Error; err != nil {
			return fmt.Errorf("create employee: %w", err)
		}

		if len(emp.DirectReports) == 0 {
			return nil
		}

		rows := make([]directReport, len(emp.DirectReports))
		for i, reportID := range emp.DirectReports {
			rows[i] = directReport{ManagerID: emp.ID, SortOrder: i, ReportID: reportID}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("create direct reports: %w", err)
		}
		return nil
	})
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}

	reports, err := r.DirectReports(ctx, id)
	if err != nil {
		return nil, err
	}
	emp.DirectReports = reports

	return &emp, nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("manager_id = ?", id).Delete(&directReport{}).Error; err != nil {
			return fmt.Errorf("delete direct reports: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&domain.Employee{})
		if result.Error != nil {
			return fmt.Errorf("delete employee: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrEmployeeNotFound
		}
		return nil
	})
}

func (r *employeeRepository) DirectReports(ctx context.Context, id string) ([]string, error) {
	var rows []directReport
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", id).
		Order("sort_order ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get direct reports: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	reports := make([]string, len(rows))
	for i, row := range rows {
		reports[i] = row.ReportID
	}
	return reports, nil
}
