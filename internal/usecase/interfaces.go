package usecase

import (
	"context"
	"time"

	"siso/internal/domain/entity"
)

type IdentityProvider interface {
	VerifyToken(ctx context.Context, token string) (string, error)
	GetCurrentUser(ctx context.Context, uid string) (*entity.CurrentUser, error)
	UpdateDisplayName(ctx context.Context, uid, displayName string) error
}

// FeedNotifier pushes live events to a user's open sessions. Delivery is
// best effort.
type FeedNotifier interface {
	Publish(userID, eventType string, data interface{})
}

type RateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}
