package repository

import (
	"context"

	"siso/internal/domain/entity"
)

type MusicianRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Musician, error)
	// Merge writes only the non-empty fields of musician into the stored
	// document, creating it when absent.
	Merge(ctx context.Context, musician *entity.Musician) error
}
