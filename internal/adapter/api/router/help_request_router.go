package router

import (
	"github.com/labstack/echo/v4"

	"reliefnet/internal/adapter/api/handler"
	"reliefnet/internal/adapter/api/middleware"
)

func SetupHelpRequestRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	helpRequestHandler := handler.GetHelpRequestHandler()

	requests := e.Group("/v1/help-requests")
	requests.Use(authMiddleware.Authenticate)

	requests.POST("", helpRequestHandler.Create)
	requests.GET("", helpRequestHandler.List)
	requests.GET("/:id", helpRequestHandler.Get)
	requests.PATCH("/:id", helpRequestHandler.Update)
	requests.DELETE("/:id", helpRequestHandler.Delete)
	requests.GET("/:id/photos", helpRequestHandler.ListPhotos)
	requests.POST("/:id/photos", helpRequestHandler.UploadPhoto)
}
