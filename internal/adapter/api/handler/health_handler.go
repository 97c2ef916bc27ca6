package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// DependencyCheck probes one backing service for the readiness endpoint.
type DependencyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	checks []DependencyCheck
}

var healthHandler *HealthHandler

func NewHealthHandler(checks ...DependencyCheck) *HealthHandler {
	return &HealthHandler{
		checks: checks,
	}
}

func SetupHealthHandler(checks ...DependencyCheck) {
	healthHandler = NewHealthHandler(checks...)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) CheckReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for _, dep := range h.checks {
		if err := dep.Check(ctx); err != nil {
			results[dep.Name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[dep.Name] = "ok"
	}

	return c.JSON(status, map[string]interface{}{
		"ready":        status == http.StatusOK,
		"dependencies": results,
	})
}
