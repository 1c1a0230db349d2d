package middleware

import (
	"github.com/labstack/echo/v4"

	"reliefnet/internal/domain/repository"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/response"
)

type CoordinatorMiddleware struct {
	userRepo repository.UserRepository
}

func NewCoordinatorMiddleware(userRepo repository.UserRepository) *CoordinatorMiddleware {
	return &CoordinatorMiddleware{
		userRepo: userRepo,
	}
}

// CoordinatorOnly must run after Authenticate.
func (m *CoordinatorMiddleware) CoordinatorOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil && !errors.Is(err, "NOT_FOUND") {
			return response.Error(c, err)
		}

		if !user.IsCoordinator() {
			return response.Error(c, errors.Forbidden("Coordinator privileges required", nil))
		}

		return next(c)
	}
}
