package repository

import (
	"context"
	"time"

	"siso/internal/domain/entity"
)

type UploadRepository interface {
	Create(ctx context.Context, record *entity.UploadRecord) error
	GetByID(ctx context.Context, id string) (*entity.UploadRecord, error)
	GetByRequestID(ctx context.Context, ownerID, requestID string) (*entity.UploadRecord, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.UploadRecord, int64, error)
	StoragePathsByOwner(ctx context.Context, ownerID string) (map[string]bool, error)
}

type IssuanceRepository interface {
	Append(ctx context.Context, event *entity.IssuanceEvent) error
	OwnersSince(ctx context.Context, since time.Time) ([]string, error)
}
