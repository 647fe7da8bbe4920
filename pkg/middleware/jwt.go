package middleware

import (
	"net/http"
	"strings"

	"github.com/gilberthappi/isange-pro-be/internal/auth"
	"github.com/labstack/echo/v4"
)

// JWTMiddleware verifies the bearer token and stashes the caller identity on
// the request context for the role gate and the handlers.
func JWTMiddleware(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing Token"})
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			tokenString = strings.TrimSpace(tokenString)

			claims, err := tokens.Parse(tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid Token"})
			}

			c.Set("user", claims)
			c.Set("userId", claims.UserID)
			return next(c)
		}
	}
}
