package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"inkwell/internal/domain"
	"inkwell/pkg/log"
)

type redisCache struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed profile cache and verifies connectivity.
func NewRedis(ctx context.Context, addr, password string, db int) (ProfileCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisCache{client: client}, nil
}

func profileKey(username string) string {
	return "profile:" + username
}

func (c *redisCache) GetProfile(ctx context.Context, username string) (*domain.PublicProfile, error) {
	data, err := c.client.Get(ctx, profileKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var profile domain.PublicProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		// stale or corrupt entry, drop it and treat as a miss
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldUsername, username).Msg("dropping undecodable cached profile")
		c.client.Del(ctx, profileKey(username))
		return nil, nil
	}
	return &profile, nil
}

func (c *redisCache) SetProfile(ctx context.Context, profile *domain.PublicProfile, ttl time.Duration) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, profileKey(profile.Username), data, ttl).Err()
}

func (c *redisCache) InvalidateProfile(ctx context.Context, username string) error {
	return c.client.Del(ctx, profileKey(username)).Err()
}
