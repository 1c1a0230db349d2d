package router

import (
	"github.com/labstack/echo/v4"

	"reliefnet/internal/adapter/api/handler"
)

func SetupDevRouter(e *echo.Echo, environment string) {
	if environment != "development" {
		return
	}
	devTokenHandler := handler.GetDevTokenHandler()

	e.POST("/v1/dev/token", devTokenHandler.GenerateToken)
}
