package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"siso/internal/domain/entity"
	"siso/pkg/errors"
)

// Client talks to the siso HTTP API on behalf of one signed-in user.
type Client struct {
	baseURL    string
	httpClient *resty.Client
}

func New(baseURL, token string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", "siso-cli/1.0").
		SetTimeout(30 * time.Second)
	if token != "" {
		httpClient.SetAuthToken(token)
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

type RecordRequest struct {
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title"`
	FileURL     string `json:"file_url"`
	StoragePath string `json:"storage_path"`
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
	FileSize    int64  `json:"file_size,omitempty"`
	Checksum    string `json:"checksum,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}

type UploadPage struct {
	Items      []*entity.UploadRecord `json:"items"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	TotalPages int                    `json:"totalPages"`
}

type Me struct {
	User    *entity.CurrentUser `json:"user"`
	Profile *entity.Musician    `json:"profile,omitempty"`
}

func (c *Client) IssueCredential(ctx context.Context, fileName, contentType, requestID string) (*entity.UploadCredential, error) {
	var credential entity.UploadCredential
	err := c.do(ctx, resty.MethodPost, "/v1/uploads/credentials", map[string]string{
		"file_name":    fileName,
		"content_type": contentType,
		"request_id":   requestID,
	}, &credential)
	if err != nil {
		return nil, err
	}
	return &credential, nil
}

func (c *Client) RecordUpload(ctx context.Context, req RecordRequest) (*entity.UploadRecord, error) {
	var record entity.UploadRecord
	if err := c.do(ctx, resty.MethodPost, "/v1/uploads", req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) ListUploads(ctx context.Context, page, limit int) (*UploadPage, error) {
	path := "/v1/uploads?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
	var out UploadPage
	if err := c.do(ctx, resty.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*Me, error) {
	var out Me
	if err := c.do(ctx, resty.MethodGet, "/v1/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends one request and unwraps the response envelope. API failures come
// back as *errors.AppError; transport failures as plain errors.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req := c.httpClient.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("siso api %s %s failed: %w", method, path, err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		if resp.IsError() {
			return errors.New(errors.CodeInternal, fmt.Sprintf("unexpected API response (%d)", resp.StatusCode()), resp.StatusCode(), nil)
		}
		return fmt.Errorf("failed to decode API response: %w", err)
	}

	if !env.Success || resp.IsError() {
		if env.Error == nil {
			return errors.New(errors.CodeInternal, fmt.Sprintf("request failed with status %d", resp.StatusCode()), resp.StatusCode(), nil)
		}
		appErr := errors.New(env.Error.Code, env.Error.Message, resp.StatusCode(), nil)
		for k, v := range env.Error.Details {
			appErr.WithDetail(k, v)
		}
		return appErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode API data: %w", err)
	}
	return nil
}
