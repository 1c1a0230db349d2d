package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"reliefnet/internal/usecase"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/response"
)

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Name   string
	Secure bool
}

type SessionHandler struct {
	sessionUseCase *usecase.SessionUseCase
	cookie         CookieConfig
}

func NewSessionHandler(sessionUseCase *usecase.SessionUseCase, cookie CookieConfig) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		cookie:         cookie,
	}
}

type createSessionRequest struct {
	IDToken string `json:"idToken"`
}

func (h *SessionHandler) CreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	value, err := h.sessionUseCase.CreateSession(c.Request().Context(), req.IDToken)
	if err != nil {
		return response.Error(c, err)
	}

	setSessionCookie(c, h.cookie, value, h.sessionUseCase.Expiry())

	return response.Success(c, map[string]string{
		"message": "Session created",
	})
}

func (h *SessionHandler) GetSession(c echo.Context) error {
	uid := c.Get("uid").(string)

	info, err := h.sessionUseCase.Current(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, info)
}

// DeleteSession always expires the cookie. Sessions are revoked only when the
// caller could be identified.
func (h *SessionHandler) DeleteSession(c echo.Context) error {
	clearSessionCookie(c, h.cookie)

	if uid, ok := c.Get("uid").(string); ok && uid != "" {
		if err := h.sessionUseCase.SignOut(c.Request().Context(), uid); err != nil {
			return response.Error(c, err)
		}
	}

	return response.Success(c, map[string]string{
		"message": "Signed out",
	})
}

func setSessionCookie(c echo.Context, cfg CookieConfig, value string, expiry time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(expiry.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context, cfg CookieConfig) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
