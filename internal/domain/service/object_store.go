package service

import (
	"context"
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	MD5          string
	LastModified time.Time
}

// ObjectStore is the slice of an object-storage provider the upload flow needs.
// SignWrite must return a URL that authorizes exactly one PUT of contentType to
// key until ttl elapses, and nothing else.
type ObjectStore interface {
	SignWrite(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	Stat(ctx context.Context, key string) (*ObjectInfo, error)
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	Close() error
}
