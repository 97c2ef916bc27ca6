package transfer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siso/pkg/errors"
)

func TestPutSuccess(t *testing.T) {
	var gotType string
	var gotBody string
	var gotLength int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotType = r.Header.Get("Content-Type")
		gotLength = r.ContentLength
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("ETag", `"9e107d9d372bb6826bd81d3542a419d6"`)
	}))
	defer server.Close()

	res, err := NewClient().Put(context.Background(), server.URL+"/public/u1/1-a.mp3?X-Amz-Signature=x",
		strings.NewReader("ID3 audio"), "audio/mpeg")
	require.NoError(t, err)

	assert.Equal(t, "audio/mpeg", gotType)
	assert.Equal(t, "ID3 audio", gotBody)
	assert.Equal(t, int64(9), gotLength)
	assert.Equal(t, "9e107d9d372bb6826bd81d3542a419d6", res.ETag)
}

func TestPutStorageRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>AccessDenied</Code><Message>Request has expired</Message></Error>`))
	}))
	defer server.Close()

	_, err := NewClient().Put(context.Background(), server.URL, strings.NewReader("x"), "audio/mpeg")
	require.Error(t, err)
	assert.Equal(t, errors.TransferStorage, errors.TransferKind(err))
	assert.Contains(t, err.Error(), "Storage error (AccessDenied): Request has expired")
}

func TestPutNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	target := server.URL
	server.Close()

	_, err := NewClient().Put(context.Background(), target, strings.NewReader("x"), "audio/wav")
	require.Error(t, err)
	assert.Equal(t, errors.TransferNetwork, errors.TransferKind(err))
	assert.Contains(t, err.Error(), "CORS")
}

func TestPutInvalidURLAndCancelled(t *testing.T) {
	_, err := NewClient().Put(context.Background(), "::not a url", strings.NewReader("x"), "audio/ogg")
	assert.Equal(t, errors.TransferUnknown, errors.TransferKind(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewClient().Put(ctx, "https://bucket.example.com/k", strings.NewReader("x"), "audio/ogg")
	assert.Equal(t, errors.TransferUnknown, errors.TransferKind(err))
}

func TestStorageErrorMessage(t *testing.T) {
	assert.Equal(t, "Storage error (SignatureDoesNotMatch): bad sig",
		StorageErrorMessage(403, []byte("<Error><Code>SignatureDoesNotMatch</Code><Message> bad sig </Message></Error>")))
	assert.Equal(t, "quota exceeded", StorageErrorMessage(507, []byte(" quota exceeded\n")))
	assert.Equal(t, "upload failed with status 500", StorageErrorMessage(500, []byte(strings.Repeat("x", 300))))
	assert.Equal(t, "upload failed with status 502", StorageErrorMessage(502, nil))
}
