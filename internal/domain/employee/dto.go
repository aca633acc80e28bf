package employee

import (
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if r.Role != "" && !validator.IsInSlice(r.Role, RoleValues) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be GUARD or ADMIN"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID     string `json:"-"`
	Name   string `json:"name"`
	Active *bool  `json:"active"`
	Role   string `json:"role"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if r.Role != "" && !validator.IsInSlice(r.Role, RoleValues) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be GUARD or ADMIN"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Role   string `json:"role"`
}

func ToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:     emp.ID,
		Name:   emp.Name,
		Active: emp.Active,
		Role:   string(emp.Role),
	}
}
