package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"siso/internal/domain/entity"
)

func TestMergeFieldsSkipsEmptyValues(t *testing.T) {
	updated := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	fields := mergeFields(&entity.Musician{
		ID:        "u1",
		Bio:       "Drummer",
		Genres:    []string{"jazz"},
		Skills:    []string{},
		UpdatedAt: updated,
	})

	assert.Equal(t, map[string]interface{}{
		"id":        "u1",
		"bio":       "Drummer",
		"genres":    []string{"jazz"},
		"updatedAt": updated,
	}, fields)
}

func TestDocIDFromKey(t *testing.T) {
	assert.Equal(t, "public|u1|17-demo.mp3", docIDFromKey("public/u1/17-demo.mp3"))
}
