package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout - формат календарной даты в API
const DateLayout = "2006-01-02"

// Employee представляет сотрудника
type Employee struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	FirstName  string    `gorm:"type:varchar(200);not null;default:''"`
	LastName   string    `gorm:"type:varchar(200);not null;default:''"`
	Department string    `gorm:"type:varchar(200);not null;default:''"`
	Position   string    `gorm:"type:varchar(200);not null;default:''"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	// DirectReports - идентификаторы прямых подчинённых в заданном порядке
	DirectReports []string `gorm:"-"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// Compensation - запись о зарплате сотрудника, действующая с EffectiveDate.
// Записи только добавляются и никогда не изменяются.
type Compensation struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)"`
	EmployeeID    string          `gorm:"type:varchar(36);not null;index"`
	Salary        decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	EffectiveDate time.Time       `gorm:"type:date;not null"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`

	// Employee подставляется при чтении по EmployeeID
	Employee *Employee `gorm:"-"`
}

// TableName задаёт имя таблицы для GORM
func (Compensation) TableName() string {
	return "compensations"
}

// SalaryScale и salaryLimit соответствуют колонке numeric(15,2)
const SalaryScale = 2

var salaryLimit = decimal.New(1, 15-SalaryScale)

// ValidateSalary проверяет, что сумма неотрицательна и хранится без округления
func ValidateSalary(salary decimal.Decimal) error {
	switch {
	case salary.IsNegative():
		return fmt.Errorf("%w: must not be negative", ErrInvalidSalary)
	case !salary.Equal(salary.Round(SalaryScale)):
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidSalary, SalaryScale)
	case salary.GreaterThanOrEqual(salaryLimit):
		return fmt.Errorf("%w: must be less than %s", ErrInvalidSalary, salaryLimit)
	}
	return nil
}

// ReportTree - сотрудник вместе с деревом его подчинённых
type ReportTree struct {
	Employee      *Employee
	DirectReports []*ReportTree
}

// ReportingStructure - вычисляемая структура подчинения, не хранится
type ReportingStructure struct {
	Root            *ReportTree
	NumberOfReports int
}

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate разбирает дату и приводит её к полуночи UTC того же календарного дня
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return StartOfDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// StartOfDay возвращает полночь UTC календарного дня t
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
