package entity

import (
	"time"
)

const (
	ContentTypeMPEG = "audio/mpeg"
	ContentTypeWAV  = "audio/wav"
	ContentTypeOGG  = "audio/ogg"

	// MaxAudioBytes is the largest audio file accepted for sharing (20 MiB).
	MaxAudioBytes int64 = 20 * 1024 * 1024

	// EventUploadRecorded is pushed to the owner's live feed after a record
	// is written.
	EventUploadRecorded = "upload.recorded"
)

var allowedAudioTypes = map[string]bool{
	ContentTypeMPEG: true,
	ContentTypeWAV:  true,
	ContentTypeOGG:  true,
}

func IsAllowedAudioType(contentType string) bool {
	return allowedAudioTypes[contentType]
}

// UploadCredential is a write-only, single-key, time-limited grant to put one
// object into the store. It is never persisted.
type UploadCredential struct {
	StorageKey  string    `json:"storage_key"`
	WriteURL    string    `json:"write_url"`
	PublicURL   string    `json:"public_url"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (c *UploadCredential) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// UploadRecord points at an object that has already been written. Records are
// append-only.
type UploadRecord struct {
	ID          string    `json:"id" firestore:"id"`
	OwnerID     string    `json:"owner_id" firestore:"userId"`
	Title       string    `json:"title" firestore:"title"`
	FileURL     string    `json:"file_url" firestore:"fileUrl"`
	StoragePath string    `json:"storage_path" firestore:"storagePath"`
	FileName    string    `json:"file_name" firestore:"fileName"`
	FileType    string    `json:"file_type" firestore:"fileType"`
	FileSize    int64     `json:"file_size,omitempty" firestore:"fileSize,omitempty"`
	Checksum    string    `json:"checksum,omitempty" firestore:"checksum,omitempty"`
	RequestID   string    `json:"request_id,omitempty" firestore:"requestId,omitempty"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}

// IssuanceEvent is the audit trail of a handed-out credential.
type IssuanceEvent struct {
	StorageKey  string    `json:"storage_key" firestore:"storageKey"`
	OwnerID     string    `json:"owner_id" firestore:"ownerId"`
	ContentType string    `json:"content_type" firestore:"contentType"`
	FileName    string    `json:"file_name" firestore:"fileName"`
	IssuedAt    time.Time `json:"issued_at" firestore:"issuedAt"`
	ExpiresAt   time.Time `json:"expires_at" firestore:"expiresAt"`
}
