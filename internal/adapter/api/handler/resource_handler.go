package handler

import (
	"github.com/labstack/echo/v4"

	"reliefnet/internal/usecase"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/response"
	"reliefnet/pkg/utils"
)

type ResourceHandler struct {
	resourceUseCase *usecase.ResourceUseCase
}

func NewResourceHandler(resourceUseCase *usecase.ResourceUseCase) *ResourceHandler {
	return &ResourceHandler{
		resourceUseCase: resourceUseCase,
	}
}

type createResourceRequest struct {
	Item     string `json:"item" validate:"required,max=200"`
	Details  string `json:"details" validate:"max=2000"`
	Quantity int    `json:"quantity" validate:"min=0"`
	Contact  string `json:"contact" validate:"max=100"`
}

type updateResourceRequest struct {
	Item     *string `json:"item" validate:"omitempty,max=200"`
	Details  *string `json:"details" validate:"omitempty,max=2000"`
	Quantity *int    `json:"quantity" validate:"omitempty,min=0"`
	Contact  *string `json:"contact" validate:"omitempty,max=100"`
}

func (h *ResourceHandler) Create(c echo.Context) error {
	var req createResourceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	resource, err := h.resourceUseCase.Create(c.Request().Context(), uid, usecase.CreateResourceInput{
		Item:     req.Item,
		Details:  req.Details,
		Quantity: req.Quantity,
		Contact:  req.Contact,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, resource)
}

func (h *ResourceHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	resources, total, err := h.resourceUseCase.List(c.Request().Context(), c.QueryParam("q"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, resources, total, pagination.Page, pagination.PageSize)
}

func (h *ResourceHandler) Get(c echo.Context) error {
	resource, err := h.resourceUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, resource)
}

func (h *ResourceHandler) Update(c echo.Context) error {
	var req updateResourceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	resource, err := h.resourceUseCase.Update(c.Request().Context(), uid, c.Param("id"), usecase.UpdateResourceInput{
		Item:     req.Item,
		Details:  req.Details,
		Quantity: req.Quantity,
		Contact:  req.Contact,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, resource)
}

func (h *ResourceHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.resourceUseCase.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Resource deleted",
	})
}
