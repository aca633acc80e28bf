package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/auth"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/employee"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwtService        jwt.Service
	adminPasswordHash string
}

func NewAuthService(employees employee.EmployeeRepository, jwtService jwt.Service, adminPasswordHash string) *AuthServiceImpl {
	return &AuthServiceImpl{
		EmployeeRepository: employees,
		jwtService:         jwtService,
		adminPasswordHash:  adminPasswordHash,
	}
}

// LoginGuard implements auth.AuthService. Guards identify themselves by
// their registered display name; deactivated employees cannot log in.
func (s *AuthServiceImpl) LoginGuard(ctx context.Context, req auth.GuardLoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}
	if !emp.Active {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Name, emp.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	resp := employee.ToResponse(emp)
	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Employee:    &resp,
	}, nil
}

// LoginAdmin implements auth.AuthService.
func (s *AuthServiceImpl) LoginAdmin(ctx context.Context, req auth.AdminLoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken("", "Administrador", employee.RoleAdmin)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
