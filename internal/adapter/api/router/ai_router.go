package router

import (
	"github.com/labstack/echo/v4"

	"siso/internal/adapter/api/handler"
	"siso/internal/adapter/api/middleware"
)

func SetupAIRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	aiHandler := handler.GetAIHandler()

	ai := e.Group("/v1/ai")
	ai.Use(authMiddleware.Authenticate)
	ai.POST("/matches", aiHandler.FindMatches)
}
