package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/employee-directory-api/internal/config"
	"github.com/employee-directory-api/internal/database"
	"github.com/employee-directory-api/internal/domain"
	"github.com/employee-directory-api/internal/dto"
	"github.com/employee-directory-api/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// countingStore считает обращения к репозиторию сотрудников
type countingStore struct {
	repository.Store
	lookups int
}

func (s *countingStore) Employees() repository.EmployeeRepository {
	s.lookups++
	return s.Store.Employees()
}

func newSQLiteStore(t *testing.T) repository.Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name),
	}

	db, err := database.Open(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db, cfg.Driver))
	return repository.NewStore(db)
}

// forEachStore прогоняет сценарий сервиса на SQLite и на хранилище в памяти
func forEachStore(t *testing.T, now time.Time, fn func(t *testing.T, svc EmployeeService, store repository.Store)) {
	t.Run("sqlite", func(t *testing.T) {
		store := newSQLiteStore(t)
		fn(t, NewEmployeeService(store, fixedClock{now: now}), store)
	})
	t.Run("memory", func(t *testing.T) {
		store := repository.NewMemoryStore()
		fn(t, NewEmployeeService(store, fixedClock{now: now}), store)
	})
}

func salary(raw string) *decimal.Decimal {
	d := decimal.RequireFromString(raw)
	return &d
}

func TestEmployeeService_CreateAssignsID(t *testing.T) {
	forEachStore(t, time.Now(), func(t *testing.T, svc EmployeeService, store repository.Store) {
		ctx := context.Background()

		emp, err := svc.Create(ctx, &dto.EmployeeRequest{
			EmployeeID: "client-chosen",
			FirstName:  " Debbie ",
			LastName:   "Downer",
			Department: "Complaints",
			Position:   "Receiver",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, emp.ID)
		assert.NotEqual(t, "client-chosen", emp.ID)
		assert.Equal(t, "Debbie", emp.FirstName)

		stored, err := store.Employees().GetByID(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, "Downer", stored.LastName)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	forEachStore(t, time.Now(), func(t *testing.T, svc EmployeeService, _ repository.Store) {
		ctx := context.Background()

		created, err := svc.Create(ctx, &dto.EmployeeRequest{FirstName: "John", LastName: "Lennon"})
		require.NoError(t, err)

		first, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		second, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		_, err = svc.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetByIDBlankSkipsStore(t *testing.T) {
	store := &countingStore{Store: repository.NewMemoryStore()}
	svc := NewEmployeeService(store, nil)

	for _, id := range []string{"", "   "} {
		_, err := svc.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	}
	assert.Zero(t, store.lookups)
}

func TestEmployeeService_ReplacePreservesID(t *testing.T) {
	forEachStore(t, time.Now(), func(t *testing.T, svc EmployeeService, store repository.Store) {
		ctx := context.Background()

		original, err := svc.Create(ctx, &dto.EmployeeRequest{
			FirstName:     "Pete",
			LastName:      "Best",
			Position:      "Developer II",
			DirectReports: []dto.EmployeeRef{{EmployeeID: "r1"}},
		})
		require.NoError(t, err)

		replaced, err := svc.Replace(ctx, original.ID, &dto.EmployeeRequest{
			EmployeeID: "some-other-id",
			FirstName:  "Pete",
			LastName:   "Best",
			Position:   "Developer VI",
			Department: "Engineering",
		})
		require.NoError(t, err)
		assert.Equal(t, original.ID, replaced.ID)
		assert.Equal(t, "Developer VI", replaced.Position)

		stored, err := store.Employees().GetByID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, "Developer VI", stored.Position)
		assert.Equal(t, "Engineering", stored.Department)
		assert.Empty(t, stored.DirectReports)

		_, err = store.Employees().GetByID(ctx, "some-other-id")
		assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_ReplaceUnknown(t *testing.T) {
	forEachStore(t, time.Now(), func(t *testing.T, svc EmployeeService, _ repository.Store) {
		_, err := svc.Replace(context.Background(), "missing", &dto.EmployeeRequest{FirstName: "X"})
		assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_ReplaceUnknownKeepsOtherWrites(t *testing.T) {
	forEachStore(t, time.Now(), func(t *testing.T, svc EmployeeService, _ repository.Store) {
		ctx := context.Background()

		emp, err := svc.Create(ctx, &dto.EmployeeRequest{FirstName: "Paul"})
		require.NoError(t, err)

		_, err = svc.Replace(ctx, "missing", &dto.EmployeeRequest{FirstName: "X"})
		require.ErrorIs(t, err, domain.ErrEmployeeNotFound)

		got, err := svc.GetByID(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, "Paul", got.FirstName)
	})
}

func TestEmployeeService_GetReportingStructure(t *testing.T) {
	forEachStore(t, time.Now(), func(t *testing.T, svc EmployeeService, store repository.Store) {
		seedHierarchy(t, store, abcdeHierarchy())
		ctx := context.Background()

		structure, err := svc.GetReportingStructure(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, "A", structure.Root.Employee.ID)
		assert.Equal(t, 4, structure.NumberOfReports)

		count, err := CountReports(ctx, store.Employees(), "A")
		require.NoError(t, err)
		assert.Equal(t, count, structure.NumberOfReports)

		leaf, err := svc.GetReportingStructure(ctx, "B")
		require.NoError(t, err)
		assert.Zero(t, leaf.NumberOfReports)
	})
}

func TestEmployeeService_GetReportingStructureUnknown(t *testing.T) {
	forEachStore(t, time.Now(), func(t *testing.T, svc EmployeeService, _ repository.Store) {
		structure, err := svc.GetReportingStructure(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
		assert.Nil(t, structure)
	})
}

func TestEmployeeService_AddCompensation(t *testing.T) {
	forEachStore(t, time.Now(), func(t *testing.T, svc EmployeeService, store repository.Store) {
		ctx := context.Background()

		emp, err := svc.Create(ctx, &dto.EmployeeRequest{FirstName: "John"})
		require.NoError(t, err)

		comp, err := svc.AddCompensation(ctx, emp.ID, &dto.CreateCompensationRequest{
			Salary:        salary("1200000"),
			EffectiveDate: "2024-05-01",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, comp.ID)
		assert.Equal(t, emp.ID, comp.EmployeeID)
		require.NotNil(t, comp.Employee)
		assert.Equal(t, "John", comp.Employee.FirstName)
		assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), comp.EffectiveDate)

		records, err := store.Compensations().ListByEmployeeID(ctx, emp.ID)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

func TestEmployeeService_AddCompensationUnknownEmployee(t *testing.T) {
	forEachStore(t, time.Now(), func(t *testing.T, svc EmployeeService, store repository.Store) {
		ctx := context.Background()

		_, err := svc.AddCompensation(ctx, "missing", &dto.CreateCompensationRequest{
			Salary:        salary("1"),
			EffectiveDate: "2024-05-01",
		})
		assert.ErrorIs(t, err, domain.ErrCompensationEmployeeNotFound)
		assert.False(t, errors.Is(err, domain.ErrEmployeeNotFound))

		records, err := store.Compensations().ListByEmployeeID(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestEmployeeService_AddCompensationValidation(t *testing.T) {
	svc := NewEmployeeService(repository.NewMemoryStore(), nil)
	ctx := context.Background()

	emp, err := svc.Create(ctx, &dto.EmployeeRequest{FirstName: "John"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     dto.CreateCompensationRequest
		wantErr error
	}{
		{
			name:    "negative salary",
			req:     dto.CreateCompensationRequest{Salary: salary("-1"), EffectiveDate: "2024-05-01"},
			wantErr: domain.ErrInvalidSalary,
		},
		{
			name:    "missing salary",
			req:     dto.CreateCompensationRequest{EffectiveDate: "2024-05-01"},
			wantErr: domain.ErrInvalidSalary,
		},
		{
			name:    "three decimal places",
			req:     dto.CreateCompensationRequest{Salary: salary("100.125"), EffectiveDate: "2024-05-01"},
			wantErr: domain.ErrInvalidSalary,
		},
		{
			name:    "exceeds column precision",
			req:     dto.CreateCompensationRequest{Salary: salary("10000000000000"), EffectiveDate: "2024-05-01"},
			wantErr: domain.ErrInvalidSalary,
		},
		{
			name:    "malformed date",
			req:     dto.CreateCompensationRequest{Salary: salary("0"), EffectiveDate: "yesterday"},
			wantErr: domain.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddCompensation(ctx, emp.ID, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEmployeeService_AddCompensationAcceptsTrailingZeros(t *testing.T) {
	svc := NewEmployeeService(repository.NewMemoryStore(), nil)
	ctx := context.Background()

	emp, err := svc.Create(ctx, &dto.EmployeeRequest{FirstName: "John"})
	require.NoError(t, err)

	comp, err := svc.AddCompensation(ctx, emp.ID, &dto.CreateCompensationRequest{
		Salary:        salary("100.500"),
		EffectiveDate: "2024-05-01",
	})
	require.NoError(t, err)
	assert.True(t, comp.Salary.Equal(decimal.RequireFromString("100.5")))
}

func TestEmployeeService_GetCompensation(t *testing.T) {
	now := time.Date(2024, time.June, 10, 15, 30, 0, 0, time.UTC)

	forEachStore(t, now, func(t *testing.T, svc EmployeeService, _ repository.Store) {
		ctx := context.Background()

		emp, err := svc.Create(ctx, &dto.EmployeeRequest{FirstName: "John"})
		require.NoError(t, err)

		for _, rec := range []struct {
			salary string
			date   string
		}{
			{"1450000.55", "2024-06-10"},
			{"1350000", "2024-06-09"},
			{"1550000", "2024-06-11"},
		} {
			_, err := svc.AddCompensation(ctx, emp.ID, &dto.CreateCompensationRequest{
				Salary:        salary(rec.salary),
				EffectiveDate: rec.date,
			})
			require.NoError(t, err)
		}

		comp, err := svc.GetCompensation(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, "1450000.55", comp.Salary.String())
		assert.Equal(t, "2024-06-10", comp.EffectiveDate.Format(domain.DateLayout))
		require.NotNil(t, comp.Employee)
		assert.Equal(t, emp.ID, comp.Employee.ID)

		past, err := svc.GetCompensationAsOf(ctx, emp.ID, time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, past.Salary.Equal(decimal.NewFromInt(1350000)))
		assert.Equal(t, "2024-06-09", past.EffectiveDate.Format(domain.DateLayout))
	})
}

func TestEmployeeService_GetCompensationSameDayLatestWins(t *testing.T) {
	now := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	forEachStore(t, now, func(t *testing.T, svc EmployeeService, _ repository.Store) {
		ctx := context.Background()

		emp, err := svc.Create(ctx, &dto.EmployeeRequest{FirstName: "John"})
		require.NoError(t, err)

		for _, amount := range []string{"100", "200", "300"} {
			_, err := svc.AddCompensation(ctx, emp.ID, &dto.CreateCompensationRequest{
				Salary:        salary(amount),
				EffectiveDate: "2024-06-01",
			})
			require.NoError(t, err)
		}

		comp, err := svc.GetCompensation(ctx, emp.ID)
		require.NoError(t, err)
		assert.True(t, comp.Salary.Equal(decimal.NewFromInt(300)))
	})
}

func TestEmployeeService_GetCompensationOnlyFuture(t *testing.T) {
	now := time.Date(2024, time.June, 10, 15, 30, 0, 0, time.UTC)

	forEachStore(t, now, func(t *testing.T, svc EmployeeService, _ repository.Store) {
		ctx := context.Background()

		emp, err := svc.Create(ctx, &dto.EmployeeRequest{FirstName: "John"})
		require.NoError(t, err)

		_, err = svc.AddCompensation(ctx, emp.ID, &dto.CreateCompensationRequest{
			Salary:        salary("1"),
			EffectiveDate: "2024-06-11",
		})
		require.NoError(t, err)

		_, err = svc.GetCompensation(ctx, emp.ID)
		assert.ErrorIs(t, err, domain.ErrCompensationNotFound)
	})
}

func TestEmployeeService_GetCompensationUnknownEmployee(t *testing.T) {
	forEachStore(t, time.Now(), func(t *testing.T, svc EmployeeService, _ repository.Store) {
		_, err := svc.GetCompensation(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_CompensationSurvivesReplace(t *testing.T) {
	now := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	forEachStore(t, now, func(t *testing.T, svc EmployeeService, _ repository.Store) {
		ctx := context.Background()

		emp, err := svc.Create(ctx, &dto.EmployeeRequest{FirstName: "John", Position: "Manager"})
		require.NoError(t, err)
		_, err = svc.AddCompensation(ctx, emp.ID, &dto.CreateCompensationRequest{
			Salary:        salary("10"),
			EffectiveDate: "2024-01-01",
		})
		require.NoError(t, err)

		_, err = svc.Replace(ctx, emp.ID, &dto.EmployeeRequest{FirstName: "John", Position: "Director"})
		require.NoError(t, err)

		comp, err := svc.GetCompensation(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, "Director", comp.Employee.Position)
	})
}
