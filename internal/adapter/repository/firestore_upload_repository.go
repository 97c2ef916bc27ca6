package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"siso/internal/domain/entity"
	"siso/internal/domain/repository"
	"siso/pkg/errors"
	"siso/pkg/logger"
)

const uploadsCollection = "uploads"

type firestoreUploadRepository struct {
	client *firestore.Client
}

func NewFirestoreUploadRepository(client *firestore.Client) repository.UploadRepository {
	return &firestoreUploadRepository{
		client: client,
	}
}

// Create never overwrites: records are append-only.
func (r *firestoreUploadRepository) Create(ctx context.Context, record *entity.UploadRecord) error {
	_, err := r.client.Collection(uploadsCollection).Doc(record.ID).Create(ctx, record)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("Upload record already exists")
		}
		return errors.Internal("Failed to create upload record", err)
	}
	return nil
}

func (r *firestoreUploadRepository) GetByID(ctx context.Context, id string) (*entity.UploadRecord, error) {
	doc, err := r.client.Collection(uploadsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Upload", err)
		}
		return nil, errors.Internal("Failed to get upload", err)
	}

	var record entity.UploadRecord
	if err := doc.DataTo(&record); err != nil {
		return nil, errors.Internal("Failed to parse upload", err)
	}

	return &record, nil
}

func (r *firestoreUploadRepository) GetByRequestID(ctx context.Context, ownerID, requestID string) (*entity.UploadRecord, error) {
	iter := r.client.Collection(uploadsCollection).
		Where("userId", "==", ownerID).
		Where("requestId", "==", requestID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Upload", nil)
		}
		return nil, errors.Internal("Failed to query uploads", err)
	}

	var record entity.UploadRecord
	if err := doc.DataTo(&record); err != nil {
		return nil, errors.Internal("Failed to parse upload", err)
	}

	return &record, nil
}

func (r *firestoreUploadRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.UploadRecord, int64, error) {
	countDocs, err := r.client.Collection(uploadsCollection).
		Where("userId", "==", ownerID).
		Select().
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count uploads", err)
	}
	total := int64(len(countDocs))

	query := r.client.Collection(uploadsCollection).
		Where("userId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	records := []*entity.UploadRecord{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate uploads", err)
		}

		var record entity.UploadRecord
		if err := doc.DataTo(&record); err != nil {
			logger.Error("Failed to parse upload %s: %v", doc.Ref.ID, err)
			continue
		}
		records = append(records, &record)
	}

	return records, total, nil
}

func (r *firestoreUploadRepository) StoragePathsByOwner(ctx context.Context, ownerID string) (map[string]bool, error) {
	iter := r.client.Collection(uploadsCollection).
		Where("userId", "==", ownerID).
		Select("storagePath").
		Documents(ctx)
	defer iter.Stop()

	paths := make(map[string]bool)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate uploads", err)
		}

		if path, ok := doc.Data()["storagePath"].(string); ok && path != "" {
			paths[path] = true
		}
	}

	return paths, nil
}
