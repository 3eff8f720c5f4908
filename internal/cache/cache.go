package cache

import (
	"context"
	"time"

	"inkwell/internal/domain"
)

// ProfileCache caches public profile projections. Implementations must be
// safe for concurrent use; a cache miss is (nil, nil), never an error.
type ProfileCache interface {
	GetProfile(ctx context.Context, username string) (*domain.PublicProfile, error)
	SetProfile(ctx context.Context, profile *domain.PublicProfile, ttl time.Duration) error
	InvalidateProfile(ctx context.Context, username string) error
}

// Noop is a ProfileCache that stores nothing, used when Redis is disabled.
type Noop struct{}

func (Noop) GetProfile(context.Context, string) (*domain.PublicProfile, error) {
	return nil, nil
}

func (Noop) SetProfile(context.Context, *domain.PublicProfile, time.Duration) error {
	return nil
}

func (Noop) InvalidateProfile(context.Context, string) error {
	return nil
}
