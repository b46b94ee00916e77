package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/employee-directory-api/internal/domain"
	"github.com/employee-directory-api/internal/dto"
	"github.com/employee-directory-api/internal/repository"
)

//go:embed employees.json
var employeesJSON []byte

// Employees разбирает встроенный набор сотрудников
func Employees() ([]*domain.Employee, error) {
	var records []dto.EmployeeRequest
	if err := json.Unmarshal(employeesJSON, &records); err != nil {
		return nil, fmt.Errorf("seed: parse employees: %w", err)
	}

	employees := make([]*domain.Employee, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.EmployeeID) == "" {
			return nil, fmt.Errorf("seed: employee %s %s has no id", rec.FirstName, rec.LastName)
		}

		emp := &domain.Employee{
			ID:         rec.EmployeeID,
			FirstName:  rec.FirstName,
			LastName:   rec.LastName,
			Department: rec.Department,
			Position:   rec.Position,
		}
		for _, ref := range rec.DirectReports {
			emp.DirectReports = append(emp.DirectReports, ref.EmployeeID)
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

// Load сохраняет встроенный набор; уже существующие ID пропускаются.
// Возвращает число добавленных сотрудников.
func Load(ctx context.Context, store repository.Store) (int, error) {
	employees, err := Employees()
	if err != nil {
		return 0, err
	}

	created := 0
	err = store.Transaction(ctx, func(tx repository.Store) error {
		for _, emp := range employees {
			_, err := tx.Employees().GetByID(ctx, emp.ID)
			if err == nil {
				continue
			}
			if !errors.Is(err, domain.ErrEmployeeNotFound) {
				return err
			}

			if err := tx.Employees().Create(ctx, emp); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}

	return created, nil
}
