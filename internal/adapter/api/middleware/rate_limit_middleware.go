package middleware

import (
	"fmt"
	"math"

	"github.com/labstack/echo/v4"

	"reliefnet/internal/infrastructure/ratelimit"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/logger"
	"reliefnet/pkg/response"
)

// RateLimit throttles requests per client IP using the bucket configured for action.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, retryIn := limiter.Allow(ip, action)
			if !allowed {
				seconds := int(math.Ceil(retryIn.Seconds()))
				logger.Warn("rate limit hit: ip=%s action=%s retry_in=%ds", ip, action, seconds)

				c.Response().Header().Set("Retry-After", fmt.Sprint(seconds))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded"))
			}

			return next(c)
		}
	}
}
