package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storo/booking-api/internal/core/domain"
)

// RBAC gates a route to the given account roles. The role claim is injected
// by Auth; a request without one fails closed.
func RBAC(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claim, _ := c.Get("role").(string)
			for _, role := range roles {
				if domain.Role(claim) == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
		}
	}
}
