package session

import (
	"context"
	"time"
)

// Store persists sessions keyed by browser id.
type Store interface {
	Get(ctx context.Context, browserID string) (*Session, error)
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, browserID string) error
}
