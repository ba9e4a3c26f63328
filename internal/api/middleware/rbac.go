package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
)

// RBAC enforces role-based access control over the role injected by Auth.
// The check is claims-based only: a role revoked after token issuance is
// still honoured until the token expires.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[string(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(RoleKey).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
