package rates

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"kantor/pkg/money"
)

// Cache memoizes conversion factors in redis. NBP publishes its table once
// per business day, so a short TTL removes almost all upstream calls without
// risking stale pricing. The cache is strictly best effort: a redis failure
// falls through to the underlying provider, and provider errors are never
// cached.
type Cache struct {
	next   Provider
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCache(next Provider, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *Cache) Rate(ctx context.Context, base, term money.Currency) (decimal.Decimal, error) {
	key := cacheKey(base, term)

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		factor, parseErr := decimal.NewFromString(cached)
		if parseErr == nil {
			return factor, nil
		}
		c.logger.WarnContext(ctx, "dropping unparseable cached rate", "key", key, "value", cached)
	} else if err != redis.Nil {
		c.logger.WarnContext(ctx, "rate cache read failed", "key", key, "error", err)
	}

	factor, err := c.next.Rate(ctx, base, term)
	if err != nil {
		return decimal.Zero, err
	}

	if err := c.client.Set(ctx, key, factor.String(), c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "rate cache write failed", "key", key, "error", err)
	}
	return factor, nil
}

func cacheKey(base, term money.Currency) string {
	return fmt.Sprintf("rates:%s:%s", base, term)
}
