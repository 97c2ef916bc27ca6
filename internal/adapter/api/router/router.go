package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"siso/internal/adapter/api/middleware"
	"siso/internal/infrastructure/ratelimit"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	limiter *ratelimit.RateLimiter,
	registry *prometheus.Registry,
) {
	SetupHealthRouter(e, registry)
	SetupUploadRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware, limiter)
	SetupAIRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupWebSocketRouter(e, limiter)
}
