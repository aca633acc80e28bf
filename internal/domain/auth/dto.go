package auth

import (
	"github.com/guardsystem/guardpost-backend-go/internal/domain/employee"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/validator"
)

// GuardLoginRequest logs a guard in by registered display name.
type GuardLoginRequest struct {
	Name string `json:"name"`
}

func (r GuardLoginRequest) Validate() error {
	if validator.IsEmpty(r.Name) {
		return validator.ValidationErrors{{Field: "name", Message: "name is required"}}
	}
	return nil
}

// AdminLoginRequest logs the administrator in by password.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

func (r AdminLoginRequest) Validate() error {
	if validator.IsEmpty(r.Password) {
		return validator.ValidationErrors{{Field: "password", Message: "password is required"}}
	}
	return nil
}

type LoginResponse struct {
	AccessToken string                     `json:"access_token"`
	ExpiresAt   int64                      `json:"expires_at"`
	Employee    *employee.EmployeeResponse `json:"employee,omitempty"`
}
