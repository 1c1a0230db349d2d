package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"reliefnet/pkg/errors"
	"reliefnet/pkg/response"
)

type SessionVerifier interface {
	VerifySession(ctx context.Context, cookie string) (string, error)
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

type AuthMiddleware struct {
	verifier   SessionVerifier
	cookieName string
}

func NewAuthMiddleware(verifier SessionVerifier, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:   verifier,
		cookieName: cookieName,
	}
}

// Authenticate accepts the session cookie, or a bearer ID token for API
// clients, and stores the caller's uid under "uid".
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, err := m.identify(c)
		if err != nil {
			return response.Error(c, err)
		}

		c.Set("uid", uid)
		return next(c)
	}
}

// Identify sets "uid" when the caller can be identified and lets every
// request through. Used where a stale session must not block the handler.
func (m *AuthMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if uid, err := m.identify(c); err == nil {
			c.Set("uid", uid)
		}
		return next(c)
	}
}

func (m *AuthMiddleware) identify(c echo.Context) (string, error) {
	ctx := c.Request().Context()

	var cookieErr error
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		uid, err := m.verifier.VerifySession(ctx, cookie.Value)
		if err == nil {
			return uid, nil
		}
		cookieErr = err
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if cookieErr != nil {
			return "", cookieErr
		}
		return "", errors.Unauthorized("Authentication required", nil)
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}

	return m.verifier.VerifyIDToken(ctx, parts[1])
}
