package router

import (
	"github.com/labstack/echo/v4"

	"reliefnet/internal/adapter/api/handler"
	"reliefnet/internal/adapter/api/middleware"
)

func SetupResourceRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	resourceHandler := handler.GetResourceHandler()

	// Public routes
	e.GET("/v1/resources", resourceHandler.List)
	e.GET("/v1/resources/:id", resourceHandler.Get)

	// Protected routes
	resources := e.Group("/v1/resources")
	resources.Use(authMiddleware.Authenticate)

	resources.POST("", resourceHandler.Create)
	resources.PATCH("/:id", resourceHandler.Update)
	resources.DELETE("/:id", resourceHandler.Delete)
}
