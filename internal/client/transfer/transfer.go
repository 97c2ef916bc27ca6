package transfer

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"siso/pkg/errors"
)

const (
	NetworkErrorMessage = "Network error while uploading. The storage bucket may be missing a CORS rule or be unreachable."
	unknownErrorMessage = "Upload failed. Please try again."

	maxVerbatimBody = 200
)

type Result struct {
	StatusCode int
	ETag       string
}

// Client PUTs payloads straight to the object store with a presigned URL.
// It never retries: a failed transfer restarts the whole flow.
type Client struct {
	httpClient *resty.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: resty.New().
			SetRetryCount(0).
			SetHeader("User-Agent", "siso-cli/1.0"),
	}
}

// Put sends body in a single request. The Content-Type must match the one the
// URL was signed for or the store rejects the write.
func (c *Client) Put(ctx context.Context, writeURL string, body io.Reader, contentType string) (*Result, error) {
	if _, err := url.ParseRequestURI(writeURL); err != nil {
		return nil, errors.Transfer(errors.TransferUnknown, unknownErrorMessage, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Transfer(errors.TransferUnknown, "Upload was cancelled", err)
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetContentLength(true).
		SetBody(body).
		Put(writeURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Transfer(errors.TransferUnknown, "Upload was cancelled", err)
		}
		return nil, errors.Transfer(errors.TransferNetwork, NetworkErrorMessage, err)
	}

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, errors.Transfer(errors.TransferStorage, StorageErrorMessage(resp.StatusCode(), resp.Body()), nil).
			WithDetail("status", resp.StatusCode())
	}

	return &Result{
		StatusCode: resp.StatusCode(),
		ETag:       strings.Trim(resp.Header().Get("ETag"), `"`),
	}, nil
}

type storageError struct {
	XMLName xml.Name `xml:"Error"`
	Code    string   `xml:"Code"`
	Message string   `xml:"Message"`
}

// StorageErrorMessage extracts the most specific detail it can from a
// rejected PUT.
func StorageErrorMessage(status int, body []byte) string {
	var parsed storageError
	if err := xml.Unmarshal(body, &parsed); err == nil && parsed.Code != "" {
		return fmt.Sprintf("Storage error (%s): %s", parsed.Code, strings.TrimSpace(parsed.Message))
	}

	text := strings.TrimSpace(string(body))
	if text != "" && len(text) < maxVerbatimBody {
		return text
	}
	return fmt.Sprintf("upload failed with status %d", status)
}
