package auth

import "context"

// AuthService issues access tokens for the two identity kinds the system
// has: guards identified by registered name, and the administrator
// identified by password.
type AuthService interface {
	LoginGuard(ctx context.Context, req GuardLoginRequest) (LoginResponse, error)

	LoginAdmin(ctx context.Context, req AdminLoginRequest) (LoginResponse, error)
}
