package handler

import (
	"github.com/labstack/echo/v4"

	"reliefnet/internal/usecase"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/response"
)

type DevTokenHandler struct {
	sessionUseCase *usecase.SessionUseCase
}

func NewDevTokenHandler(sessionUseCase *usecase.SessionUseCase) *DevTokenHandler {
	return &DevTokenHandler{
		sessionUseCase: sessionUseCase,
	}
}

type devTokenRequest struct {
	UID string `json:"uid" validate:"required"`
}

// GenerateToken returns a custom token the client exchanges for an ID
// token with signInWithCustomToken. Development only.
func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req devTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	token, err := h.sessionUseCase.DevToken(c.Request().Context(), req.UID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"uid":          req.UID,
		"custom_token": token,
	})
}
