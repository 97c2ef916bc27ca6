package handler

import (
	"github.com/labstack/echo/v4"

	"siso/internal/usecase"
	"siso/pkg/errors"
	"siso/pkg/response"
)

type AIHandler struct {
	matchUseCase *usecase.MatchUseCase
}

func NewAIHandler(matchUseCase *usecase.MatchUseCase) *AIHandler {
	return &AIHandler{
		matchUseCase: matchUseCase,
	}
}

type findMatchesRequest struct {
	Needs       string `json:"needs" validate:"max=2000"`
	UserProfile string `json:"user_profile" validate:"max=4000"`
}

func (h *AIHandler) FindMatches(c echo.Context) error {
	var req findMatchesRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid, _ := c.Get("uid").(string)
	matches, err := h.matchUseCase.FindMatches(c.Request().Context(), uid, req.Needs, req.UserProfile)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"matches": matches,
	})
}
