package handler

import (
	"github.com/labstack/echo/v4"

	"siso/internal/usecase"
	"siso/pkg/logger"
	"siso/pkg/response"
)

type AdminHandler struct {
	reconcileUseCase *usecase.ReconcileUseCase
}

func NewAdminHandler(reconcileUseCase *usecase.ReconcileUseCase) *AdminHandler {
	return &AdminHandler{
		reconcileUseCase: reconcileUseCase,
	}
}

func (h *AdminHandler) ReconcileOwner(c echo.Context) error {
	ownerID := c.Param("ownerId")
	adminID, _ := c.Get("uid").(string)
	logger.Info("Admin %s started reconcile for %s", adminID, ownerID)

	report, err := h.reconcileUseCase.Sweep(c.Request().Context(), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, report)
}
