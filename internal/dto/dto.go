package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// EmployeeRef - ссылка на сотрудника по идентификатору
type EmployeeRef struct {
	EmployeeID string `json:"employeeId" validate:"required,max=36"`
}

// EmployeeRequest - запрос на создание или полную замену сотрудника.
// EmployeeID из тела запроса игнорируется: ID назначает хранилище
// или берётся из пути при замене.
type EmployeeRequest struct {
	EmployeeID    string        `json:"employeeId"`
	FirstName     string        `json:"firstName" validate:"max=200"`
	LastName      string        `json:"lastName" validate:"max=200"`
	Department    string        `json:"department" validate:"max=200"`
	Position      string        `json:"position" validate:"max=200"`
	DirectReports []EmployeeRef `json:"directReports" validate:"omitempty,dive"`
}

// CreateCompensationRequest - запрос на добавление компенсации.
// Сотрудник определяется только путём запроса.
type CreateCompensationRequest struct {
	Salary        *decimal.Decimal `json:"salary" validate:"required"`
	EffectiveDate string           `json:"effectiveDate" validate:"required"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	EmployeeID    string        `json:"employeeId"`
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	Department    string        `json:"department"`
	Position      string        `json:"position"`
	DirectReports []EmployeeRef `json:"directReports"`
}

// EmployeeTreeResponse - сотрудник с развёрнутыми подчинёнными
type EmployeeTreeResponse struct {
	EmployeeID    string                 `json:"employeeId"`
	FirstName     string                 `json:"firstName"`
	LastName      string                 `json:"lastName"`
	Department    string                 `json:"department"`
	Position      string                 `json:"position"`
	DirectReports []EmployeeTreeResponse `json:"directReports"`
}

// ReportingStructureResponse - ответ со структурой подчинения
type ReportingStructureResponse struct {
	Employee        EmployeeTreeResponse `json:"employee"`
	NumberOfReports int                  `json:"numberOfReports"`
}

// CompensationResponse - ответ с данными компенсации
type CompensationResponse struct {
	CompensationID string           `json:"compensationId"`
	Employee       EmployeeResponse `json:"employee"`
	Salary         json.Number      `json:"salary"`
	EffectiveDate  string           `json:"effectiveDate"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
