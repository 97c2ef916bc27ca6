package router

import (
	"github.com/labstack/echo/v4"

	"siso/internal/adapter/api/handler"
	"siso/internal/adapter/api/middleware"
	"siso/internal/infrastructure/ratelimit"
)

// SetupWebSocketRouter mounts the live feed. The handler authenticates from
// the token query parameter itself.
func SetupWebSocketRouter(e *echo.Echo, limiter *ratelimit.RateLimiter) {
	wsHandler := handler.GetWebSocketHandler()
	e.GET("/v1/ws/feed", wsHandler.HandleFeed, middleware.RateLimit(limiter, ratelimit.ActionPublicRead))
}
