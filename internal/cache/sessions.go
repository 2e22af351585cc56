package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "session:revoked:"

// RevokeSession помечает jti отозванным до истечения токена.
// Уже истёкший токен не записывается.
func (c *Cache) RevokeSession(ctx context.Context, jti string, ttl time.Duration) error {
	const op = "cache.RevokeSession"
	if ttl <= 0 {
		return nil
	}
	if err := c.Db.Set(ctx, revokedPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsRevoked сообщает, отозвана ли сессия с данным jti.
func (c *Cache) IsRevoked(ctx context.Context, jti string) (bool, error) {
	const op = "cache.IsRevoked"
	err := c.Db.Get(ctx, revokedPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}
