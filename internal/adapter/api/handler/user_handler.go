package handler

import (
	"github.com/labstack/echo/v4"

	"siso/internal/usecase"
	"siso/pkg/errors"
	"siso/pkg/response"
)

const publicProfileUploads = 50

type UserHandler struct {
	profileUseCase *usecase.ProfileUseCase
}

func NewUserHandler(profileUseCase *usecase.ProfileUseCase) *UserHandler {
	return &UserHandler{
		profileUseCase: profileUseCase,
	}
}

type updateProfileRequest struct {
	FullName    string `json:"full_name" validate:"max=100"`
	Location    string `json:"location" validate:"max=100"`
	Bio         string `json:"bio" validate:"max=1000"`
	Genres      string `json:"genres" validate:"max=500"`
	Skills      string `json:"skills" validate:"max=500"`
	Experience  string `json:"experience" validate:"max=1000"`
	Influences  string `json:"influences" validate:"max=500"`
	SpotifyLink string `json:"spotify_link" validate:"omitempty,url"`
	YoutubeLink string `json:"youtube_link" validate:"omitempty,url"`
}

type updateUsernameRequest struct {
	Username string `json:"username" validate:"required,max=40"`
}

func (h *UserHandler) GetMe(c echo.Context) error {
	uid, _ := c.Get("uid").(string)

	me, err := h.profileUseCase.GetMe(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, me)
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid, _ := c.Get("uid").(string)
	profile, err := h.profileUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		FullName:    req.FullName,
		Location:    req.Location,
		Bio:         req.Bio,
		Genres:      req.Genres,
		Skills:      req.Skills,
		Experience:  req.Experience,
		Influences:  req.Influences,
		SpotifyLink: req.SpotifyLink,
		YoutubeLink: req.YoutubeLink,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *UserHandler) UpdateUsername(c echo.Context) error {
	var req updateUsernameRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid, _ := c.Get("uid").(string)
	profile, err := h.profileUseCase.UpdateUsername(c.Request().Context(), uid, req.Username)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *UserHandler) GetPublicProfile(c echo.Context) error {
	profile, err := h.profileUseCase.GetPublicProfile(c.Request().Context(), c.Param("userId"), publicProfileUploads)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}
