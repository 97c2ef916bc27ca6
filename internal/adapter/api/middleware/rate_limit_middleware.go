package middleware

import (
	"math"

	"github.com/labstack/echo/v4"

	"siso/internal/infrastructure/ratelimit"
	"siso/pkg/errors"
	"siso/pkg/logger"
	"siso/pkg/response"
)

// RateLimit throttles action per caller: the authenticated uid when there is
// one, the client IP otherwise.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, _ := c.Get("uid").(string)
			if key == "" {
				key = "ip:" + c.RealIP()
			}

			if ok, wait := limiter.Allow(key, action); !ok {
				logger.Warn("Rate limit hit for %s on %s", key, action)
				return response.Error(c, errors.TooManyRequests(
					"Rate limit exceeded",
					int(math.Ceil(wait.Seconds())),
				))
			}

			return next(c)
		}
	}
}
