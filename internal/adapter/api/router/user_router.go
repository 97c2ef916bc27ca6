package router

import (
	"github.com/labstack/echo/v4"

	"siso/internal/adapter/api/handler"
	"siso/internal/adapter/api/middleware"
	"siso/internal/infrastructure/ratelimit"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	userHandler := handler.GetUserHandler()

	me := e.Group("/v1/users/me")
	me.Use(authMiddleware.Authenticate)
	me.GET("", userHandler.GetMe)
	me.PATCH("", userHandler.UpdateMe)
	me.PUT("/username", userHandler.UpdateUsername)

	// Public profiles
	e.GET("/v1/users/:userId", userHandler.GetPublicProfile, middleware.RateLimit(limiter, ratelimit.ActionPublicRead))
}
