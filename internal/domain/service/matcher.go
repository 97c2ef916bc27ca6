package service

import (
	"context"

	"siso/internal/domain/entity"
)

// Matcher ranks musicians for a described need. The ranking itself is opaque.
type Matcher interface {
	Match(ctx context.Context, needs, userProfile string) ([]entity.MatchResult, error)
}
