package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

// RBAC admits only the listed roles. It must run after Auth; a request without a role claim
// is unauthenticated, any other role is forbidden. Both errors go to the central error handler.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == "" {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[role]; !ok {
				return fmt.Errorf("role %s on %s: %w", role, c.Path(), domain.ErrForbidden)
			}
			return next(c)
		}
	}
}
