package router

import (
	"github.com/labstack/echo/v4"

	"reliefnet/internal/adapter/api/handler"
	"reliefnet/internal/adapter/api/middleware"
)

func SetupFoodPointRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, coordinatorMiddleware *middleware.CoordinatorMiddleware) {
	foodPointHandler := handler.GetFoodPointHandler()

	e.GET("/v1/food-points", foodPointHandler.List)
	e.POST("/v1/food-points", foodPointHandler.Save, authMiddleware.Authenticate, coordinatorMiddleware.CoordinatorOnly)
}
