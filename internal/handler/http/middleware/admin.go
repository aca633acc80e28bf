package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/auth"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/employee"
	"github.com/guardsystem/guardpost-backend-go/internal/handler/http/response"
)

// AdminOnly restricts a route group to the administrator session.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(employee.RoleAdmin) {
			response.Forbidden(w, "Administrator access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
