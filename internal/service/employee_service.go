package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/employee-directory-api/internal/domain"
	"github.com/employee-directory-api/internal/dto"
	"github.com/employee-directory-api/internal/repository"
)

// Clock предоставляет текущее время
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, req *dto.EmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	Replace(ctx context.Context, id string, req *dto.EmployeeRequest) (*domain.Employee, error)
	GetReportingStructure(ctx context.Context, id string) (*domain.ReportingStructure, error)
	AddCompensation(ctx context.Context, employeeID string, req *dto.CreateCompensationRequest) (*domain.Compensation, error)
	GetCompensation(ctx context.Context, employeeID string) (*domain.Compensation, error)
	GetCompensationAsOf(ctx context.Context, employeeID string, asOf time.Time) (*domain.Compensation, error)
}

type employeeService struct {
	store repository.Store
	clock Clock
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(store repository.Store, clock Clock) EmployeeService {
	if clock == nil {
		clock = realClock{}
	}
	return &employeeService{
		store: store,
		clock: clock,
	}
}

func (s *employeeService) Create(ctx context.Context, req *dto.EmployeeRequest) (*domain.Employee, error) {
	emp := newEmployee(req)

	if err := s.store.Employees().Create(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return getEmployee(ctx, s.store.Employees(), id)
}

// Replace удаляет существующую запись и вставляет новую с тем же ID.
// Оба шага выполняются в одной транзакции хранилища; одновременные замены
// одного сотрудника не согласуются между собой - побеждает последняя.
func (s *employeeService) Replace(ctx context.Context, id string, req *dto.EmployeeRequest) (*domain.Employee, error) {
	var replaced *domain.Employee

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		existing, err := getEmployee(ctx, tx.Employees(), id)
		if err != nil {
			return err
		}

		if err := tx.Employees().Delete(ctx, existing.ID); err != nil {
			return err
		}

		next := newEmployee(req)
		next.ID = existing.ID
		next.CreatedAt = existing.CreatedAt
		if err := tx.Employees().Create(ctx, next); err != nil {
			return err
		}

		replaced = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return replaced, nil
}

func (s *employeeService) GetReportingStructure(ctx context.Context, id string) (*domain.ReportingStructure, error) {
	root, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	structure, err := ResolveReportingStructure(ctx, s.store.Employees(), root)
	if err != nil {
		return nil, err
	}

	reportingStructureSize.Observe(float64(structure.NumberOfReports))
	return structure, nil
}

func (s *employeeService) AddCompensation(ctx context.Context, employeeID string, req *dto.CreateCompensationRequest) (*domain.Compensation, error) {
	emp, err := s.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return nil, domain.ErrCompensationEmployeeNotFound
		}
		return nil, err
	}

	if req.Salary == nil {
		return nil, fmt.Errorf("%w: salary is required", domain.ErrInvalidSalary)
	}
	if err := domain.ValidateSalary(*req.Salary); err != nil {
		return nil, err
	}

	effectiveDate, err := domain.ParseDate(req.EffectiveDate)
	if err != nil {
		return nil, err
	}

	comp := &domain.Compensation{
		EmployeeID:    emp.ID,
		Salary:        *req.Salary,
		EffectiveDate: effectiveDate,
	}

	if err := s.store.Compensations().Create(ctx, comp); err != nil {
		return nil, err
	}

	comp.Employee = emp
	return comp, nil
}

func (s *employeeService) GetCompensation(ctx context.Context, employeeID string) (*domain.Compensation, error) {
	return s.GetCompensationAsOf(ctx, employeeID, s.clock.Now())
}

func (s *employeeService) GetCompensationAsOf(ctx context.Context, employeeID string, asOf time.Time) (*domain.Compensation, error) {
	emp, err := s.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	records, err := s.store.Compensations().ListByEmployeeID(ctx, emp.ID)
	if err != nil {
		return nil, err
	}

	comp := ResolveCompensation(records, emp.ID, asOf)
	recordCompensationLookup(comp != nil)
	if comp == nil {
		return nil, domain.ErrCompensationNotFound
	}

	comp.Employee = emp
	return comp, nil
}

// getEmployee не обращается к хранилищу, если ID пустой
func getEmployee(ctx context.Context, repo repository.EmployeeRepository, id string) (*domain.Employee, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrEmployeeNotFound
	}
	return repo.GetByID(ctx, id)
}

func newEmployee(req *dto.EmployeeRequest) *domain.Employee {
	emp := &domain.Employee{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Department: strings.TrimSpace(req.Department),
		Position:   strings.TrimSpace(req.Position),
	}

	for _, ref := range req.DirectReports {
		emp.DirectReports = append(emp.DirectReports, strings.TrimSpace(ref.EmployeeID))
	}

	return emp
}
