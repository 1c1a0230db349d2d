package handler

import (
	"github.com/labstack/echo/v4"

	"reliefnet/internal/usecase"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/response"
)

type PhoneLoginHandler struct {
	phoneLoginUseCase *usecase.PhoneLoginUseCase
	sessionUseCase    *usecase.SessionUseCase
	cookie            CookieConfig
}

func NewPhoneLoginHandler(phoneLoginUseCase *usecase.PhoneLoginUseCase, sessionUseCase *usecase.SessionUseCase, cookie CookieConfig) *PhoneLoginHandler {
	return &PhoneLoginHandler{
		phoneLoginUseCase: phoneLoginUseCase,
		sessionUseCase:    sessionUseCase,
		cookie:            cookie,
	}
}

type beginLoginRequest struct {
	AcceptTerms bool `json:"accept_terms"`
}

type submitPhoneRequest struct {
	Phone          string `json:"phone" validate:"required,localphone"`
	RecaptchaToken string `json:"recaptcha_token"`
}

type submitCodeRequest struct {
	Code string `json:"code" validate:"required,smscode"`
}

type profileRequest struct {
	DisplayName string `json:"display_name"`
}

func (h *PhoneLoginHandler) Begin(c echo.Context) error {
	var req beginLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	login, err := h.phoneLoginUseCase.Begin(c.Request().Context(), req.AcceptTerms)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, login)
}

func (h *PhoneLoginHandler) SubmitPhone(c echo.Context) error {
	var req submitPhoneRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	login, err := h.phoneLoginUseCase.SubmitPhone(c.Request().Context(), c.Param("id"), req.Phone, req.RecaptchaToken)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, login)
}

// Verify checks the SMS code and signs the user in with a session cookie.
func (h *PhoneLoginHandler) Verify(c echo.Context) error {
	var req submitCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.phoneLoginUseCase.SubmitCode(c.Request().Context(), c.Param("id"), req.Code)
	if err != nil {
		return response.Error(c, err)
	}

	setSessionCookie(c, h.cookie, result.SessionCookie, h.sessionUseCase.Expiry())

	return response.Success(c, result)
}

func (h *PhoneLoginHandler) CompleteProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	profile, err := h.phoneLoginUseCase.CompleteProfile(c.Request().Context(), c.Param("id"), uid, req.DisplayName)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}
