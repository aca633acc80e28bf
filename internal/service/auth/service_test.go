package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/auth"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/employee"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/jwt"
	"github.com/guardsystem/guardpost-backend-go/internal/repository/memory"
)

const testSecret = "test-secret-key-for-jwt"

func newAuthEnv(t *testing.T) *AuthServiceImpl {
	t.Helper()
	store := memory.NewStoreFromState(memory.State{
		Employees: []employee.Employee{
			{ID: "emp-1", Name: "Carlos Silva", Active: true, Role: employee.RoleGuard},
			{ID: "emp-2", Name: "Desligado", Active: false, Role: employee.RoleGuard},
		},
	}, time.UTC)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha-admin"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(testSecret, "1h")
	return NewAuthService(memory.NewEmployeeRepository(store), jwtService, string(hash))
}

func TestLoginGuard(t *testing.T) {
	svc := newAuthEnv(t)

	resp, err := svc.LoginGuard(context.Background(), auth.GuardLoginRequest{Name: "Carlos Silva"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())
	require.NotNil(t, resp.Employee)
	assert.Equal(t, "emp-1", resp.Employee.ID)
}

func TestLoginGuardUnknownName(t *testing.T) {
	svc := newAuthEnv(t)

	_, err := svc.LoginGuard(context.Background(), auth.GuardLoginRequest{Name: "Ninguém"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginGuardInactive(t *testing.T) {
	svc := newAuthEnv(t)

	_, err := svc.LoginGuard(context.Background(), auth.GuardLoginRequest{Name: "Desligado"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginGuardEmptyName(t *testing.T) {
	svc := newAuthEnv(t)

	_, err := svc.LoginGuard(context.Background(), auth.GuardLoginRequest{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginAdmin(t *testing.T) {
	svc := newAuthEnv(t)

	resp, err := svc.LoginAdmin(context.Background(), auth.AdminLoginRequest{Password: "s3nha-admin"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Nil(t, resp.Employee)
}

func TestLoginAdminWrongPassword(t *testing.T) {
	svc := newAuthEnv(t)

	_, err := svc.LoginAdmin(context.Background(), auth.AdminLoginRequest{Password: "errada"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
