package handler

import (
	"github.com/labstack/echo/v4"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/usecase"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/response"
	"reliefnet/pkg/utils"
)

type HelpOfferHandler struct {
	helpOfferUseCase *usecase.HelpOfferUseCase
}

func NewHelpOfferHandler(helpOfferUseCase *usecase.HelpOfferUseCase) *HelpOfferHandler {
	return &HelpOfferHandler{
		helpOfferUseCase: helpOfferUseCase,
	}
}

type createHelpOfferRequest struct {
	Type         string `json:"type" validate:"required"`
	Description  string `json:"description" validate:"required,max=2000"`
	Availability string `json:"availability" validate:"required,max=300"`
	Contact      string `json:"contact" validate:"required,max=100"`
}

type updateHelpOfferRequest struct {
	Type         *string `json:"type"`
	Description  *string `json:"description" validate:"omitempty,max=2000"`
	Availability *string `json:"availability" validate:"omitempty,max=300"`
	Contact      *string `json:"contact" validate:"omitempty,max=100"`
	Status       *string `json:"status" validate:"omitempty,oneof=active completed cancelled"`
}

func (h *HelpOfferHandler) Create(c echo.Context) error {
	var req createHelpOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	offer, err := h.helpOfferUseCase.Create(c.Request().Context(), uid, usecase.CreateHelpOfferInput{
		Type:         req.Type,
		Description:  req.Description,
		Availability: req.Availability,
		Contact:      req.Contact,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, offer)
}

func (h *HelpOfferHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	offers, total, err := h.helpOfferUseCase.List(c.Request().Context(), usecase.ListFilter{
		Type:     c.QueryParam("type"),
		Query:    c.QueryParam("q"),
		Status:   entity.Status(c.QueryParam("status")),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, offers, total, pagination.Page, pagination.PageSize)
}

func (h *HelpOfferHandler) Get(c echo.Context) error {
	offer, err := h.helpOfferUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offer)
}

func (h *HelpOfferHandler) Update(c echo.Context) error {
	var req updateHelpOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	input := usecase.UpdateHelpOfferInput{
		Type:         req.Type,
		Description:  req.Description,
		Availability: req.Availability,
		Contact:      req.Contact,
	}
	if req.Status != nil {
		status := entity.Status(*req.Status)
		input.Status = &status
	}

	offer, err := h.helpOfferUseCase.Update(c.Request().Context(), uid, c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offer)
}

func (h *HelpOfferHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.helpOfferUseCase.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Help offer deleted",
	})
}
