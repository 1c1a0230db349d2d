package handler

import (
	"io"

	"github.com/labstack/echo/v4"

	"reliefnet/internal/domain/entity"
	"reliefnet/internal/usecase"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/response"
	"reliefnet/pkg/utils"
)

type HelpRequestHandler struct {
	helpRequestUseCase *usecase.HelpRequestUseCase
}

func NewHelpRequestHandler(helpRequestUseCase *usecase.HelpRequestUseCase) *HelpRequestHandler {
	return &HelpRequestHandler{
		helpRequestUseCase: helpRequestUseCase,
	}
}

type createHelpRequestRequest struct {
	Type        string `json:"type" validate:"required"`
	Description string `json:"description" validate:"required,max=2000"`
	Address     string `json:"address" validate:"required,max=300"`
	Contact     string `json:"contact" validate:"required,max=100"`
	Urgency     string `json:"urgency" validate:"required,oneof=alta media baja"`
}

type updateHelpRequestRequest struct {
	Type        *string `json:"type"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Address     *string `json:"address" validate:"omitempty,max=300"`
	Contact     *string `json:"contact" validate:"omitempty,max=100"`
	Urgency     *string `json:"urgency" validate:"omitempty,oneof=alta media baja"`
	Status      *string `json:"status" validate:"omitempty,oneof=active completed cancelled"`
}

func (h *HelpRequestHandler) Create(c echo.Context) error {
	var req createHelpRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	request, err := h.helpRequestUseCase.Create(c.Request().Context(), uid, usecase.CreateHelpRequestInput{
		Type:        req.Type,
		Description: req.Description,
		Address:     req.Address,
		Contact:     req.Contact,
		Urgency:     entity.Urgency(req.Urgency),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, request)
}

func (h *HelpRequestHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	requests, total, err := h.helpRequestUseCase.List(c.Request().Context(), usecase.ListFilter{
		Type:     c.QueryParam("type"),
		Query:    c.QueryParam("q"),
		Status:   entity.Status(c.QueryParam("status")),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, total, pagination.Page, pagination.PageSize)
}

func (h *HelpRequestHandler) Get(c echo.Context) error {
	request, err := h.helpRequestUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *HelpRequestHandler) Update(c echo.Context) error {
	var req updateHelpRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	input := usecase.UpdateHelpRequestInput{
		Type:        req.Type,
		Description: req.Description,
		Address:     req.Address,
		Contact:     req.Contact,
	}
	if req.Urgency != nil {
		urgency := entity.Urgency(*req.Urgency)
		input.Urgency = &urgency
	}
	if req.Status != nil {
		status := entity.Status(*req.Status)
		input.Status = &status
	}

	request, err := h.helpRequestUseCase.Update(c.Request().Context(), uid, c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *HelpRequestHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.helpRequestUseCase.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Help request deleted",
	})
}

// UploadPhoto expects a multipart form with the image under "photo".
func (h *HelpRequestHandler) UploadPhoto(c echo.Context) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return response.Error(c, errors.BadRequest("Photo file is required", err))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read photo", err))
	}
	defer src.Close()

	// One byte past the limit is enough to reject oversized uploads
	data, err := io.ReadAll(io.LimitReader(src, usecase.MaxPhotoSize+1))
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read photo", err))
	}

	uid := c.Get("uid").(string)

	url, err := h.helpRequestUseCase.AttachPhoto(c.Request().Context(), uid, c.Param("id"), data)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{
		"url": url,
	})
}

func (h *HelpRequestHandler) ListPhotos(c echo.Context) error {
	photos, err := h.helpRequestUseCase.ListPhotos(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, photos)
}
