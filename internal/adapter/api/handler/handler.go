package handler

import (
	"siso/internal/usecase"
)

var (
	uploadHandler *UploadHandler
	userHandler   *UserHandler
	aiHandler     *AIHandler
	adminHandler  *AdminHandler
)

func Setup(
	uploadUseCase *usecase.UploadUseCase,
	profileUseCase *usecase.ProfileUseCase,
	matchUseCase *usecase.MatchUseCase,
	reconcileUseCase *usecase.ReconcileUseCase,
) {
	uploadHandler = NewUploadHandler(uploadUseCase)
	userHandler = NewUserHandler(profileUseCase)
	aiHandler = NewAIHandler(matchUseCase)
	adminHandler = NewAdminHandler(reconcileUseCase)
}

func GetUploadHandler() *UploadHandler {
	return uploadHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetAIHandler() *AIHandler {
	return aiHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
