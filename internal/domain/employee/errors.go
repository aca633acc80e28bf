package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee has been deactivated")
	ErrNameExists       = errors.New("an employee with this name already exists")
)
