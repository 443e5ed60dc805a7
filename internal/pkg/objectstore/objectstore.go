package objectstore

import (
	"context"
	"time"
)

// Store is the durable blob storage contract the ingestion pipeline consumes.
// Implementations are constructed once at startup and passed in, so tests can
// substitute an in-memory fake.
type Store interface {
	// Put writes payload under key. There is no partial success; an error
	// means the blob must be assumed absent.
	Put(ctx context.Context, key string, payload []byte, contentType string) error

	// SignedURL produces a time-limited capability link for one blob.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)

	// PublicURL resolves the durable public retrieval URL for one blob.
	PublicURL(key string) string

	// Delete removes the given blobs, best-effort. Partial failure returns
	// an error naming the keys that remain.
	Delete(ctx context.Context, keys ...string) error

	// EnsureBucket makes sure the backing bucket exists. Idempotent and safe
	// to race: a concurrent "already exists" outcome counts as success.
	EnsureBucket(ctx context.Context) error
}
