package service

import (
	"context"
	"errors"

	"github.com/employee-directory-api/internal/domain"
)

// EmployeeLookup - чтение сотрудника по ID
type EmployeeLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
}

// DirectReportsLookup - чтение ID прямых подчинённых
type DirectReportsLookup interface {
	DirectReports(ctx context.Context, id string) ([]string, error)
}

// CountReports возвращает число прямых и косвенных подчинённых сотрудника.
// Обход идёт в ширину по явной очереди; каждый сотрудник учитывается один раз,
// поэтому цикл в иерархии не приводит к зацикливанию. Неизвестный ID даёт 0.
func CountReports(ctx context.Context, lookup DirectReportsLookup, employeeID string) (int, error) {
	return walkReports(ctx, employeeID, lookup.DirectReports, nil)
}

// ResolveReportingStructure строит дерево подчинения root обходом CountReports.
// Подчинённый, которого нет в хранилище, попадает в дерево только с ID
// и считается сотрудником без подчинённых.
func ResolveReportingStructure(ctx context.Context, lookup EmployeeLookup, root *domain.Employee) (*domain.ReportingStructure, error) {
	rootNode := &domain.ReportTree{Employee: root}
	nodes := map[string]*domain.ReportTree{root.ID: rootNode}

	reportsOf := func(_ context.Context, id string) ([]string, error) {
		return nodes[id].Employee.DirectReports, nil
	}

	visit := func(managerID, reportID string) error {
		report, err := lookup.GetByID(ctx, reportID)
		if err != nil {
			if !errors.Is(err, domain.ErrEmployeeNotFound) {
				return err
			}
			report = &domain.Employee{ID: reportID}
		}

		child := &domain.ReportTree{Employee: report}
		parent := nodes[managerID]
		parent.DirectReports = append(parent.DirectReports, child)
		nodes[reportID] = child
		return nil
	}

	count, err := walkReports(ctx, root.ID, reportsOf, visit)
	if err != nil {
		return nil, err
	}

	return &domain.ReportingStructure{Root: rootNode, NumberOfReports: count}, nil
}

// walkReports обходит подчинённых employeeID в ширину и возвращает их число.
// visit вызывается для каждого подчинённого при первой встрече, до того как
// запрашиваются его собственные подчинённые.
func walkReports(
	ctx context.Context,
	employeeID string,
	reportsOf func(ctx context.Context, id string) ([]string, error),
	visit func(managerID, reportID string) error,
) (int, error) {
	visited := map[string]struct{}{employeeID: {}}
	queue := []string{employeeID}
	count := 0

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		managerID := queue[0]
		queue = queue[1:]

		reports, err := reportsOf(ctx, managerID)
		if err != nil {
			return 0, err
		}

		for _, reportID := range reports {
			if _, seen := visited[reportID]; seen {
				continue
			}
			visited[reportID] = struct{}{}
			count++

			if visit != nil {
				if err := visit(managerID, reportID); err != nil {
					return 0, err
				}
			}
			queue = append(queue, reportID)
		}
	}

	return count, nil
}
