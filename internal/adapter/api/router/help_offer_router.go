package router

import (
	"github.com/labstack/echo/v4"

	"reliefnet/internal/adapter/api/handler"
	"reliefnet/internal/adapter/api/middleware"
)

func SetupHelpOfferRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	helpOfferHandler := handler.GetHelpOfferHandler()

	offers := e.Group("/v1/help-offers")
	offers.Use(authMiddleware.Authenticate)

	offers.POST("", helpOfferHandler.Create)
	offers.GET("", helpOfferHandler.List)
	offers.GET("/:id", helpOfferHandler.Get)
	offers.PATCH("/:id", helpOfferHandler.Update)
	offers.DELETE("/:id", helpOfferHandler.Delete)
}
