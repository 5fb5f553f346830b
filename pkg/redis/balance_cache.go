package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// NewClient creates a Redis client from a URL and verifies connectivity
func NewClient(url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if password != "" {
		opts.Password = password
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// BalanceCache is a read-through cache for wallet balances keyed by
// (user, asset). Cache failures are swallowed: a broken or unreachable
// Redis degrades lookups to the database, it never fails a request.
type BalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBalanceCache creates a balance cache around an existing client
func NewBalanceCache(client *redis.Client, ttl time.Duration) *BalanceCache {
	return &BalanceCache{client: client, ttl: ttl}
}

// Get returns the cached balance and whether it was present
func (c *BalanceCache) Get(ctx context.Context, userID, assetID uint) (decimal.Decimal, bool) {
	val, err := c.client.Get(ctx, balanceKey(userID, assetID)).Result()
	if err != nil {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// Set stores a balance with the configured TTL
func (c *BalanceCache) Set(ctx context.Context, userID, assetID uint, amount decimal.Decimal) {
	c.client.Set(ctx, balanceKey(userID, assetID), amount.String(), c.ttl)
}

// Invalidate drops the cached balance for (user, asset)
func (c *BalanceCache) Invalidate(ctx context.Context, userID, assetID uint) {
	c.client.Del(ctx, balanceKey(userID, assetID))
}

func balanceKey(userID, assetID uint) string {
	return fmt.Sprintf("balance:%d:%d", userID, assetID)
}
