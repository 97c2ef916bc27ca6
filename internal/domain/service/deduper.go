package service

import (
	"context"
)

// Deduper remembers request ids for a bounded window. Claim returns true the
// first time an id is seen inside the window and false afterwards. Release
// forgets an id so a failed attempt can be retried with it.
type Deduper interface {
	Claim(ctx context.Context, id string) (bool, error)
	Release(ctx context.Context, id string) error
}
