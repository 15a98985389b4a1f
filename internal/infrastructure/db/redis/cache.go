package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sweet-shop/sweet-shop-api/internal/core/domain"
)

const (
	catalogKey = "catalog:sweets"
	catalogTTL = 30 * time.Second
)

// CatalogCache caches the full catalog listing in Redis. Every operation is
// best-effort: Redis failures are logged and reported as cache misses so
// reads always fall back to the primary store.
type CatalogCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewCatalogCache(client *redis.Client, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{client: client, log: log}
}

func (c *CatalogCache) GetList(ctx context.Context) ([]domain.Sweet, bool) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("catalog cache read failed")
		}
		return nil, false
	}

	var sweets []domain.Sweet
	if err := json.Unmarshal(raw, &sweets); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache entry corrupt, dropping")
		c.Invalidate(ctx)
		return nil, false
	}
	return sweets, true
}

func (c *CatalogCache) SetList(ctx context.Context, sweets []domain.Sweet) {
	raw, err := json.Marshal(sweets)
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, catalogKey, raw, catalogTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache write failed")
	}
}

func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
