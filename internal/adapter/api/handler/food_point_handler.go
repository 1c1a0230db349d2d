package handler

import (
	"github.com/labstack/echo/v4"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/usecase"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/response"
)

type FoodPointHandler struct {
	foodPointUseCase *usecase.FoodPointUseCase
}

func NewFoodPointHandler(foodPointUseCase *usecase.FoodPointUseCase) *FoodPointHandler {
	return &FoodPointHandler{
		foodPointUseCase: foodPointUseCase,
	}
}

type saveFoodPointRequest struct {
	ID       string            `json:"id"`
	Name     string            `json:"name" validate:"required,max=200"`
	Address  string            `json:"address" validate:"required,max=300"`
	Schedule map[string]string `json:"schedule"`
	Capacity int               `json:"capacity" validate:"min=0"`
	Notes    string            `json:"notes" validate:"max=1000"`
	Services []string          `json:"services"`
}

func (h *FoodPointHandler) List(c echo.Context) error {
	listing, err := h.foodPointUseCase.List(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *FoodPointHandler) Save(c echo.Context) error {
	var req saveFoodPointRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	point := &entity.FoodPoint{
		ID:       req.ID,
		Name:     req.Name,
		Address:  req.Address,
		Schedule: req.Schedule,
		Capacity: req.Capacity,
		Notes:    req.Notes,
		Services: req.Services,
	}
	if err := h.foodPointUseCase.Save(c.Request().Context(), point); err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, point)
}
