package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedAudioType(t *testing.T) {
	for _, ct := range []string{"audio/mpeg", "audio/wav", "audio/ogg"} {
		assert.True(t, IsAllowedAudioType(ct), ct)
	}
	for _, ct := range []string{"audio/flac", "image/png", "", "AUDIO/MPEG"} {
		assert.False(t, IsAllowedAudioType(ct), ct)
	}
}

func TestCredentialExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cred := &UploadCredential{ExpiresAt: now.Add(300 * time.Second)}

	assert.False(t, cred.Expired(now))
	assert.True(t, cred.Expired(now.Add(300*time.Second)))
	assert.True(t, cred.Expired(now.Add(301*time.Second)))
}
