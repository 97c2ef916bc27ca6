package middleware

import (
	"github.com/labstack/echo/v4"

	"siso/internal/domain/repository"
	"siso/pkg/errors"
	"siso/pkg/response"
)

type AdminMiddleware struct {
	musicianRepo repository.MusicianRepository
}

func NewAdminMiddleware(musicianRepo repository.MusicianRepository) *AdminMiddleware {
	return &AdminMiddleware{
		musicianRepo: musicianRepo,
	}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok || uid == "" {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		musician, err := m.musicianRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			if errors.Is(err, errors.CodeNotFound) {
				return response.Error(c, errors.Forbidden("Admin privileges required", nil))
			}
			return response.Error(c, errors.Internal("Failed to verify admin privileges", err))
		}

		if !musician.IsAdmin() {
			return response.Error(c, errors.Forbidden("Admin privileges required", nil))
		}

		return next(c)
	}
}
