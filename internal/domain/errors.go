package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrEmployeeNotFound             = errors.New("employee not found")
	ErrCompensationNotFound         = errors.New("compensation not found")
	ErrCompensationEmployeeNotFound = errors.New("compensation references an unknown employee")
	ErrInvalidSalary                = errors.New("invalid salary")
	ErrInvalidDate                  = errors.New("invalid date")
)
