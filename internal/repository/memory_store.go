package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/employee-directory-api/internal/domain"
	"github.com/google/uuid"
)

// memoryState - общие данные хранилища в памяти
type memoryState struct {
	// txMu держит выполняющаяся транзакция; операции вне транзакции
	// берут его на чтение и ждут её завершения
	txMu          sync.RWMutex
	mu            sync.RWMutex
	employees     map[string]domain.Employee
	compensations []domain.Compensation
}

type memorySnapshot struct {
	employees     map[string]domain.Employee
	compensations []domain.Compensation
}

func (st *memoryState) snapshot() memorySnapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()

	employees := make(map[string]domain.Employee, len(st.employees))
	for id, emp := range st.employees {
		employees[id] = emp
	}
	return memorySnapshot{employees: employees, compensations: slices.Clone(st.compensations)}
}

func (st *memoryState) restore(snap memorySnapshot) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.employees = snap.employees
	st.compensations = snap.compensations
}

// memoryStore - хранилище в памяти процесса (DB_DRIVER=memory и тесты).
// Транзакция выполняется монопольно и откатывается по снимку данных.
type memoryStore struct {
	state *memoryState
	inTx  bool
}

// NewMemoryStore создаёт пустое хранилище в памяти
func NewMemoryStore() Store {
	return &memoryStore{
		state: &memoryState{employees: make(map[string]domain.Employee)},
	}
}

func (s *memoryStore) Employees() EmployeeRepository {
	return memoryEmployees{s}
}

func (s *memoryStore) Compensations() CompensationRepository {
	return memoryCompensations{s}
}

func (s *memoryStore) Transaction(ctx context.Context, fn func(tx Store) error) (err error) {
	if !s.inTx {
		s.state.txMu.Lock()
		defer s.state.txMu.Unlock()
	}

	snap := s.state.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.state.restore(snap)
			panic(p)
		}
		if err != nil {
			s.state.restore(snap)
		}
	}()

	return fn(&memoryStore{state: s.state, inTx: true})
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// enter ждёт завершения чужой транзакции; внутри транзакции ничего не делает
func (s *memoryStore) enter() func() {
	if s.inTx {
		return func() {}
	}
	s.state.txMu.RLock()
	return s.state.txMu.RUnlock
}

type memoryEmployees struct {
	s *memoryStore
}

func (r memoryEmployees) Create(ctx context.Context, emp *domain.Employee) error {
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	now := time.Now()
	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = now
	}
	emp.UpdatedAt = now

	stored := *emp
	stored.DirectReports = slices.Clone(emp.DirectReports)

	defer r.s.enter()()
	r.s.state.mu.Lock()
	defer r.s.state.mu.Unlock()
	if _, exists := r.s.state.employees[emp.ID]; exists {
		return fmt.Errorf("create employee: id %s already exists", emp.ID)
	}
	r.s.state.employees[emp.ID] = stored
	return nil
}

func (r memoryEmployees) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	defer r.s.enter()()
	r.s.state.mu.RLock()
	defer r.s.state.mu.RUnlock()

	emp, ok := r.s.state.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	emp.DirectReports = slices.Clone(emp.DirectReports)
	return &emp, nil
}

func (r memoryEmployees) Delete(ctx context.Context, id string) error {
	defer r.s.enter()()
	r.s.state.mu.Lock()
	defer r.s.state.mu.Unlock()

	if _, ok := r.s.state.employees[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.s.state.employees, id)
	return nil
}

func (r memoryEmployees) DirectReports(ctx context.Context, id string) ([]string, error) {
	defer r.s.enter()()
	r.s.state.mu.RLock()
	defer r.s.state.mu.RUnlock()

	emp, ok := r.s.state.employees[id]
	if !ok || len(emp.DirectReports) == 0 {
		return nil, nil
	}
	return slices.Clone(emp.DirectReports), nil
}

type memoryCompensations struct {
	s *memoryStore
}

func (r memoryCompensations) Create(ctx context.Context, comp *domain.Compensation) error {
	if comp.ID == "" {
		id, err := newCompensationID()
		if err != nil {
			return err
		}
		comp.ID = id
	}
	if comp.CreatedAt.IsZero() {
		comp.CreatedAt = time.Now()
	}

	stored := *comp
	stored.Employee = nil

	defer r.s.enter()()
	r.s.state.mu.Lock()
	defer r.s.state.mu.Unlock()
	r.s.state.compensations = append(r.s.state.compensations, stored)
	return nil
}

func (r memoryCompensations) ListByEmployeeID(ctx context.Context, employeeID string) ([]domain.Compensation, error) {
	defer r.s.enter()()
	r.s.state.mu.RLock()
	defer r.s.state.mu.RUnlock()

	var result []domain.Compensation
	for _, comp := range r.s.state.compensations {
		if comp.EmployeeID == employeeID {
			result = append(result, comp)
		}
	}
	return result, nil
}
