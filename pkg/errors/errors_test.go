package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesWrappedAppError(t *testing.T) {
	err := fmt.Errorf("recording: %w", Persistence("Failed to save upload", nil))

	assert.True(t, Is(err, CodePersistence))
	assert.False(t, Is(err, CodeTransfer))
	assert.False(t, Is(fmt.Errorf("plain"), CodePersistence))
}

func TestTransferKind(t *testing.T) {
	err := Transfer(TransferStorage, "Storage error (AccessDenied): Request has expired", nil)

	assert.Equal(t, TransferStorage, TransferKind(err))
	assert.Equal(t, TransferNetwork, TransferKind(fmt.Errorf("wrap: %w", Transfer(TransferNetwork, "x", nil))))
	assert.Equal(t, "", TransferKind(Internal("boom", nil)))
	assert.Equal(t, http.StatusBadGateway, err.Status)
}

func TestMissingFieldNamesTheField(t *testing.T) {
	err := MissingField("title")

	assert.Equal(t, CodeMissingField, err.Code)
	assert.Equal(t, "title is required", err.Message)
	assert.Equal(t, "title", err.Details["field"])
}

func TestIssuerErrorHidesCause(t *testing.T) {
	cause := fmt.Errorf("signing key AKIA... rejected")
	err := Issuer("Failed to generate upload URL", cause)

	assert.NotContains(t, err.Error(), "AKIA")
	assert.ErrorIs(t, err, cause)
}
