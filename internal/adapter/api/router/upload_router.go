package router

import (
	"github.com/labstack/echo/v4"

	"siso/internal/adapter/api/handler"
	"siso/internal/adapter/api/middleware"
)

func SetupUploadRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	uploadHandler := handler.GetUploadHandler()

	uploads := e.Group("/v1/uploads")
	uploads.Use(authMiddleware.Authenticate)

	uploads.POST("/credentials", uploadHandler.IssueCredential)
	uploads.POST("", uploadHandler.RecordUpload)
	uploads.GET("", uploadHandler.ListMyUploads)
	uploads.GET("/:id", uploadHandler.GetUpload)
}
