package token

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "token:blacklist:"

// RedisBlacklist stores revoked refresh-token JTIs in Redis. Entries carry
// a TTL equal to the remaining token lifetime, after which expiry alone
// makes the token unusable and the key can be dropped.
type RedisBlacklist struct {
	client *goredis.Client
}

func NewRedisBlacklist(client *goredis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return n > 0, nil
}

// Revoke blacklists the JTI with a single SETNX so that concurrent callers
// cannot both claim the same token. It reports whether this call created
// the entry.
func (b *RedisBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	first, err := b.client.SetNX(ctx, blacklistKeyPrefix+jti, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to blacklist token: %w", err)
	}
	return first, nil
}
