package repository

import (
	"context"

	"github.com/employee-directory-api/internal/domain"
)

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	// Create сохраняет сотрудника; пустой ID заменяется новым UUID
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
	// DirectReports возвращает ID прямых подчинённых; для неизвестного ID - nil
	DirectReports(ctx context.Context, id string) ([]string, error)
}

// CompensationRepository определяет интерфейс для работы с компенсациями
type CompensationRepository interface {
	Create(ctx context.Context, comp *domain.Compensation) error
	// ListByEmployeeID возвращает записи сотрудника в порядке добавления
	ListByEmployeeID(ctx context.Context, employeeID string) ([]domain.Compensation, error)
}

// Store объединяет репозитории общего хранилища.
// Создаётся один раз при старте процесса и передаётся в сервисы.
type Store interface {
	Employees() EmployeeRepository
	Compensations() CompensationRepository
	// Transaction выполняет fn атомарно; при ошибке изменения откатываются
	Transaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}
