package router

import (
	"github.com/labstack/echo/v4"

	"reliefnet/internal/adapter/api/middleware"
	"reliefnet/internal/infrastructure/ratelimit"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	coordinatorMiddleware *middleware.CoordinatorMiddleware,
	limiter *ratelimit.RateLimiter,
	environment string,
) {
	SetupAuthRouter(e, authMiddleware, limiter)
	SetupUserRouter(e, authMiddleware)
	SetupHelpRequestRouter(e, authMiddleware)
	SetupHelpOfferRouter(e, authMiddleware)
	SetupResourceRouter(e, authMiddleware)
	SetupFoodPointRouter(e, authMiddleware, coordinatorMiddleware)
	SetupFeedRouter(e, authMiddleware)
	SetupHealthRouter(e)
	SetupDevRouter(e, environment)
}
