package apiclient

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siso/pkg/errors"
)

func TestIssueCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/uploads/credentials", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "demo.mp3", body["file_name"])
		assert.Equal(t, "req-1", body["request_id"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"storage_key":"public/u1/1-demo.mp3","write_url":"https://s3/x",
			"public_url":"https://cdn/public/u1/1-demo.mp3","content_type":"audio/mpeg",
			"expires_at":"2026-05-01T12:05:00Z"},"timestamp":"2026-05-01T12:00:00Z"}`))
	}))
	defer server.Close()

	cred, err := New(server.URL+"/", "tok").IssueCredential(context.Background(), "demo.mp3", "audio/mpeg", "req-1")
	require.NoError(t, err)
	assert.Equal(t, "public/u1/1-demo.mp3", cred.StorageKey)
	assert.Equal(t, 2026, cred.ExpiresAt.Year())
}

func TestErrorEnvelopeBecomesAppError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":{"code":"MISSING_FIELD","message":"title is required","details":{"field":"title"}},"timestamp":"x"}`))
	}))
	defer server.Close()

	_, err := New(server.URL, "").RecordUpload(context.Background(), RecordRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeMissingField))

	appErr := err.(*errors.AppError)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "title", appErr.Details["field"])
}

func TestNonJSONErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New(server.URL, "").Me(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeInternal))
}

func TestTransportErrorIsPlain(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(url, "").ListUploads(context.Background(), 1, 10)
	require.Error(t, err)
	var appErr *errors.AppError
	assert.False(t, stderrors.As(err, &appErr))
}
