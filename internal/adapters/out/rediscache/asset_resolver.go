// Package rediscache memoizes resolved asset URLs in Redis so that listing
// many shipments of one enterprise does not sign the same logo URL each time.
package rediscache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tracking/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "tracking:asset-url:"

var _ ports.AssetResolver = (*CachingResolver)(nil)

type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachingResolver decorates an AssetResolver with a Redis read-through cache.
// Redis failures are logged and the call falls through to the wrapped resolver.
type CachingResolver struct {
	next   ports.AssetResolver
	client cacheClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachingResolver caches URLs from next for ttl. For signed URLs ttl must
// be shorter than the signature lifetime.
func NewCachingResolver(next ports.AssetResolver, client cacheClient, ttl time.Duration, logger *slog.Logger) *CachingResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingResolver{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "asset-url-cache"),
	}
}

func (c *CachingResolver) Resolve(ctx context.Context, assetID string) (string, error) {
	if assetID == "" {
		return "", nil
	}

	key := keyPrefix + assetID
	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "cache read failed", "asset_id", assetID, "error", err)
	}

	resolved, err := c.next.Resolve(ctx, assetID)
	if err != nil {
		return "", err
	}

	if resolved != "" && c.ttl > 0 {
		if err = c.client.Set(ctx, key, resolved, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "cache write failed", "asset_id", assetID, "error", err)
		}
	}

	return resolved, nil
}

// NewClient connects to Redis and verifies the connection with PING.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
