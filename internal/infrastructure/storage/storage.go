package storage

import (
	"context"
	"fmt"

	"google.golang.org/api/option"

	"siso/internal/domain/service"
	"siso/pkg/config"
)

// New builds the ObjectStore selected by STORAGE_PROVIDER. Callers are
// expected to have run cfg.ValidateStorage first.
func New(ctx context.Context, cfg *config.Config, gcsOpts ...option.ClientOption) (service.ObjectStore, error) {
	switch cfg.StorageProvider {
	case "s3":
		return NewS3Client(ctx, S3Options{
			Endpoint:        cfg.StorageEndpoint,
			Region:          cfg.StorageRegion,
			AccessKeyID:     cfg.StorageAccessKeyID,
			SecretAccessKey: cfg.StorageSecretAccessKey,
			Bucket:          cfg.StorageBucket,
		})
	case "gcs":
		return NewCloudStorageClient(ctx, cfg.StorageBucket, gcsOpts...)
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.StorageProvider)
	}
}
