package router

import (
	"github.com/labstack/echo/v4"

	"reliefnet/internal/adapter/api/handler"
	"reliefnet/internal/adapter/api/middleware"
)

// SetupFeedRouter exposes the live feed. Browsers send the session cookie
// with the upgrade request, so the usual auth middleware applies.
func SetupFeedRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	feedHandler := handler.GetFeedHandler()

	e.GET("/v1/feed", feedHandler.Subscribe, authMiddleware.Authenticate)
}
