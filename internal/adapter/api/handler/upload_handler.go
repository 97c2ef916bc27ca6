package handler

import (
	"github.com/labstack/echo/v4"

	"siso/internal/domain/entity"
	"siso/internal/usecase"
	"siso/pkg/logger"
	"siso/pkg/errors"
	"siso/pkg/response"
	"siso/pkg/utils"
)

type UploadHandler struct {
	uploadUseCase *usecase.UploadUseCase
}

func NewUploadHandler(uploadUseCase *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uploadUseCase,
	}
}

type issueCredentialRequest struct {
	FileName    string `json:"file_name" validate:"max=255"`
	ContentType string `json:"content_type" validate:"required"`
	RequestID   string `json:"request_id" validate:"omitempty,max=128"`
}

type credentialResponse struct {
	*entity.UploadCredential
	RequestID string `json:"request_id,omitempty"`
}

type recordUploadRequest struct {
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title" validate:"max=200"`
	FileURL     string `json:"file_url" validate:"omitempty,url"`
	StoragePath string `json:"storage_path"`
	FileName    string `json:"file_name" validate:"max=255"`
	FileType    string `json:"file_type"`
	FileSize    int64  `json:"file_size" validate:"gte=0"`
	Checksum    string `json:"checksum" validate:"omitempty,len=32,hexadecimal"`
	RequestID   string `json:"request_id" validate:"omitempty,max=128"`
}

func (h *UploadHandler) IssueCredential(c echo.Context) error {
	var req issueCredentialRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid, _ := c.Get("uid").(string)
	credential, err := h.uploadUseCase.IssueUploadCredential(c.Request().Context(), req.FileName, req.ContentType, uid)
	if err != nil {
		return response.Error(c, err)
	}

	logger.Debug("Issued upload credential %s for %s", credential.StorageKey, uid)
	return response.Created(c, credentialResponse{UploadCredential: credential, RequestID: req.RequestID})
}

func (h *UploadHandler) RecordUpload(c echo.Context) error {
	var req recordUploadRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid, _ := c.Get("uid").(string)
	record, err := h.uploadUseCase.RecordUpload(c.Request().Context(), usecase.RecordUploadInput{
		CallerID:    uid,
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		FileURL:     req.FileURL,
		StoragePath: req.StoragePath,
		FileName:    req.FileName,
		FileType:    req.FileType,
		FileSize:    req.FileSize,
		Checksum:    req.Checksum,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, record)
}

func (h *UploadHandler) ListMyUploads(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	records, total, err := h.uploadUseCase.ListUploads(c.Request().Context(), uid, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, records, total, params.Page, params.PageSize)
}

func (h *UploadHandler) GetUpload(c echo.Context) error {
	record, err := h.uploadUseCase.GetUpload(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, record)
}
