package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prperemyshlev/task-manager/pkg/database"
)

const revokedKeyPrefix = "revoked:access:"

// RedisTokenDenylist keeps revoked access token IDs in Redis with a TTL
type RedisTokenDenylist struct {
	redis *database.Redis
}

// NewRedisTokenDenylist creates a Redis-backed denylist
func NewRedisTokenDenylist(redis *database.Redis) *RedisTokenDenylist {
	return &RedisTokenDenylist{redis: redis}
}

func (d *RedisTokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return nil
	}
	if err := d.redis.Client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (d *RedisTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	exists, err := d.redis.Client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return exists > 0, nil
}
