package router

import (
	"github.com/labstack/echo/v4"

	"siso/internal/adapter/api/handler"
	"siso/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.POST("/uploads/reconcile/:ownerId", adminHandler.ReconcileOwner)
}
