package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"siso/internal/domain/entity"
	"siso/internal/domain/repository"
	"siso/pkg/errors"
)

const issuancesCollection = "upload_issuances"

type firestoreIssuanceRepository struct {
	client *firestore.Client
}

func NewFirestoreIssuanceRepository(client *firestore.Client) repository.IssuanceRepository {
	return &firestoreIssuanceRepository{
		client: client,
	}
}

func (r *firestoreIssuanceRepository) Append(ctx context.Context, event *entity.IssuanceEvent) error {
	// The storage key is unique, so it doubles as the document id.
	_, err := r.client.Collection(issuancesCollection).Doc(docIDFromKey(event.StorageKey)).Set(ctx, event)
	if err != nil {
		return errors.Internal("Failed to append issuance event", err)
	}
	return nil
}

func (r *firestoreIssuanceRepository) OwnersSince(ctx context.Context, since time.Time) ([]string, error) {
	iter := r.client.Collection(issuancesCollection).
		Where("issuedAt", ">=", since).
		Select("ownerId").
		Documents(ctx)
	defer iter.Stop()

	seen := make(map[string]bool)
	var owners []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate issuance log", err)
		}

		owner, _ := doc.Data()["ownerId"].(string)
		if owner == "" || seen[owner] {
			continue
		}
		seen[owner] = true
		owners = append(owners, owner)
	}

	return owners, nil
}

// docIDFromKey maps a storage key to a valid Firestore document id; ids may
// not contain '/'.
func docIDFromKey(key string) string {
	out := []byte(key)
	for i, c := range out {
		if c == '/' {
			out[i] = '|'
		}
	}
	return string(out)
}
