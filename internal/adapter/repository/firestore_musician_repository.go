package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"siso/internal/domain/entity"
	"siso/internal/domain/repository"
	"siso/pkg/errors"
)

const musiciansCollection = "Siso_users"

type firestoreMusicianRepository struct {
	client *firestore.Client
}

func NewFirestoreMusicianRepository(client *firestore.Client) repository.MusicianRepository {
	return &firestoreMusicianRepository{
		client: client,
	}
}

func (r *firestoreMusicianRepository) GetByID(ctx context.Context, id string) (*entity.Musician, error) {
	doc, err := r.client.Collection(musiciansCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Musician", err)
		}
		return nil, errors.Internal("Failed to get musician", err)
	}

	var musician entity.Musician
	if err := doc.DataTo(&musician); err != nil {
		return nil, errors.Internal("Failed to parse musician", err)
	}
	musician.ID = doc.Ref.ID

	return &musician, nil
}

func (r *firestoreMusicianRepository) Merge(ctx context.Context, musician *entity.Musician) error {
	_, err := r.client.Collection(musiciansCollection).Doc(musician.ID).Set(ctx, mergeFields(musician), firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update musician profile", err)
	}
	return nil
}

// mergeFields keeps only the fields that carry a value so a partial update
// never blanks stored data.
func mergeFields(m *entity.Musician) map[string]interface{} {
	data := map[string]interface{}{
		"id":          m.ID,
		"email":       m.Email,
		"username":    m.Username,
		"fullName":    m.FullName,
		"location":    m.Location,
		"bio":         m.Bio,
		"experience":  m.Experience,
		"spotifyLink": m.SpotifyLink,
		"youtubeLink": m.YoutubeLink,
		"role":        m.Role,
		"genres":      m.Genres,
		"skills":      m.Skills,
		"influences":  m.Influences,
		"createdAt":   m.CreatedAt,
		"updatedAt":   m.UpdatedAt,
	}

	clean := make(map[string]interface{}, len(data))
	for key, value := range data {
		switch v := value.(type) {
		case string:
			if v == "" {
				continue
			}
		case []string:
			if len(v) == 0 {
				continue
			}
		case time.Time:
			if v.IsZero() {
				continue
			}
		}
		clean[key] = value
	}
	return clean
}
