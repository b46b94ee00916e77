package service

import (
	"time"

	"github.com/employee-directory-api/internal/domain"
)

// ResolveCompensation выбирает запись сотрудника с самой поздней датой вступления
// в силу, не превышающей asOf. records должны идти в порядке добавления: при
// равных датах побеждает запись, добавленная последней. Возвращает nil, если
// подходящих записей нет.
func ResolveCompensation(records []domain.Compensation, employeeID string, asOf time.Time) *domain.Compensation {
	var best *domain.Compensation

	for i := range records {
		rec := &records[i]
		if rec.EmployeeID != employeeID || rec.EffectiveDate.After(asOf) {
			continue
		}
		if best == nil || !rec.EffectiveDate.Before(best.EffectiveDate) {
			best = rec
		}
	}

	if best == nil {
		return nil
	}
	result := *best
	return &result
}
