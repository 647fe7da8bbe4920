package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gilberthappi/isange-pro-be/internal/auth"
	"github.com/labstack/echo/v4"
)

// RoleLookup resolves the caller's current role from the identity store.
type RoleLookup interface {
	RoleOf(ctx context.Context, idHex string) (auth.Role, error)
}

// RequireRole is the single parameterized authorization gate. It reads the
// role from the store rather than trusting the token, so demotions apply
// immediately. 403 on mismatch, 500 when the lookup itself fails.
func RequireRole(lookup RoleLookup, allowed ...auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("userId").(string)
			if userID == "" {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to perform this action"})
			}

			role, err := lookup.RoleOf(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, auth.ErrUserNotFound) {
					return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to perform this action"})
				}
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			}

			for _, r := range allowed {
				if role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to perform this action"})
		}
	}
}
