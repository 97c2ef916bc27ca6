package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siso/internal/domain/entity"
	"siso/pkg/errors"
)

// Runs against the Firestore emulator only.
func emulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "siso-test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestUploadRepositoryRoundTrip(t *testing.T) {
	client := emulatorClient(t)
	repo := NewFirestoreUploadRepository(client)
	ctx := context.Background()
	owner := "owner-" + uuid.NewString()

	older := &entity.UploadRecord{
		ID: uuid.NewString(), OwnerID: owner, Title: "Old", StoragePath: "public/" + owner + "/1-a.mp3",
		FileURL: "https://cdn/x", FileName: "a.mp3", FileType: entity.ContentTypeMPEG,
		CreatedAt: time.Now().Add(-time.Hour).UTC(),
	}
	newer := &entity.UploadRecord{
		ID: uuid.NewString(), OwnerID: owner, Title: "New", StoragePath: "public/" + owner + "/2-b.mp3",
		FileURL: "https://cdn/y", FileName: "b.mp3", FileType: entity.ContentTypeMPEG,
		RequestID: "req-1", CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	err := repo.Create(ctx, newer)
	assert.True(t, errors.Is(err, errors.CodeConflict))

	list, total, err := repo.ListByOwner(ctx, owner, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "New", list[0].Title)

	byReq, err := repo.GetByRequestID(ctx, owner, "req-1")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, byReq.ID)

	paths, err := repo.StoragePathsByOwner(ctx, owner)
	require.NoError(t, err)
	assert.True(t, paths[older.StoragePath])
	assert.True(t, paths[newer.StoragePath])

	_, err = repo.GetByID(ctx, "missing-"+uuid.NewString())
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
