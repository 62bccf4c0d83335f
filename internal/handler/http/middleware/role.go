package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-tracker-go/internal/pkg/jwt"
)

// RequirePermission lets the request through only when the caller's role holds permission.
// Routes where employees act on their own data check ownership in the service instead.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := jwt.ClaimsFromContext(r.Context())
			switch {
			case err != nil:
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
			case !claims.Can(permission):
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, claims.Role))
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
