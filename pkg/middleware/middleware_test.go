package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gilberthappi/isange-pro-be/internal/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRoles struct {
	roles map[string]auth.Role
	err   error
}

func (s staticRoles) RoleOf(_ context.Context, idHex string) (auth.Role, error) {
	if s.err != nil {
		return "", s.err
	}
	role, ok := s.roles[idHex]
	if !ok {
		return "", auth.ErrUserNotFound
	}
	return role, nil
}

func invoke(mw echo.MiddlewareFunc, setup func(echo.Context)) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	_ = handler(c)
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	lookup := staticRoles{roles: map[string]auth.Role{"abc": auth.RoleAdmin}}
	rec := invoke(RequireRole(lookup, auth.RoleAdmin), func(c echo.Context) {
		c.Set("userId", "abc")
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleUsesStoredRoleNotToken(t *testing.T) {
	// the store says agent even if the token once said admin
	lookup := staticRoles{roles: map[string]auth.Role{"abc": auth.RoleAgent}}
	rec := invoke(RequireRole(lookup, auth.RoleAdmin), func(c echo.Context) {
		c.Set("userId", "abc")
		c.Set("user", &auth.JWTClaims{UserID: "abc", Role: auth.RoleAdmin})
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleMultipleAllowed(t *testing.T) {
	lookup := staticRoles{roles: map[string]auth.Role{"abc": auth.RoleDoctor}}
	rec := invoke(RequireRole(lookup, auth.RoleAdmin, auth.RoleDoctor), func(c echo.Context) {
		c.Set("userId", "abc")
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleMissingIdentity(t *testing.T) {
	lookup := staticRoles{roles: map[string]auth.Role{}}
	rec := invoke(RequireRole(lookup, auth.RoleAdmin), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleDeletedUser(t *testing.T) {
	lookup := staticRoles{roles: map[string]auth.Role{}}
	rec := invoke(RequireRole(lookup, auth.RoleAdmin), func(c echo.Context) {
		c.Set("userId", "gone")
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleLookupFailure(t *testing.T) {
	lookup := staticRoles{err: errors.New("mongo down")}
	rec := invoke(RequireRole(lookup, auth.RoleAdmin), func(c echo.Context) {
		c.Set("userId", "abc")
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestJWTMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager([]byte("test-key"), time.Hour)
	token, err := tokens.Generate(&auth.JWTClaims{UserID: "abc123", Role: auth.RoleUser})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenID string
	handler := JWTMiddleware(tokens)(func(c echo.Context) error {
		seenID, _ = c.Get("userId").(string)
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc123", seenID)
}

func TestJWTMiddlewareMissingHeader(t *testing.T) {
	tokens := auth.NewTokenManager([]byte("test-key"), time.Hour)
	rec := invoke(JWTMiddleware(tokens), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Missing Token"}`, rec.Body.String())
}

func TestJWTMiddlewareGarbageToken(t *testing.T) {
	tokens := auth.NewTokenManager([]byte("test-key"), time.Hour)
	rec := invoke(JWTMiddleware(tokens), func(c echo.Context) {
		c.Request().Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid Token"}`, rec.Body.String())
}
