package router

import (
	"github.com/labstack/echo/v4"

	"reliefnet/internal/adapter/api/handler"
	"reliefnet/internal/adapter/api/middleware"
	"reliefnet/internal/infrastructure/ratelimit"
)

// SetupAuthRouter registers the session endpoints used by the web app and
// the phone sign-in flow.
func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	sessionHandler := handler.GetSessionHandler()
	phoneLoginHandler := handler.GetPhoneLoginHandler()

	session := e.Group("/api/auth/session")
	session.Use(middleware.RateLimit(limiter, ratelimit.ActionAuth))

	session.POST("", sessionHandler.CreateSession)
	session.GET("", sessionHandler.GetSession, authMiddleware.Authenticate)
	session.DELETE("", sessionHandler.DeleteSession, authMiddleware.Identify)

	login := e.Group("/v1/auth/phone-login")
	login.Use(middleware.RateLimit(limiter, ratelimit.ActionAuth))

	login.POST("", phoneLoginHandler.Begin, middleware.RateLimit(limiter, ratelimit.ActionStartLogin))
	login.POST("/:id/phone", phoneLoginHandler.SubmitPhone)
	login.POST("/:id/verify", phoneLoginHandler.Verify)
	login.POST("/:id/profile", phoneLoginHandler.CompleteProfile, authMiddleware.Authenticate)
}
