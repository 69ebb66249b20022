// Package catalogcache provides a read-through Redis cache in front of the
// catalog lookup. Catalog rows change rarely; caching them keeps order
// placement off the catalog tables for the common case.
package catalogcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const keyPrefix = "warehouse:catalog:material:"

// materialPayload is the cached wire form of a catalog record.
type materialPayload struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CachedCatalogLookup decorates a CatalogLookup with a Redis cache. Cache
// failures other than a miss degrade to the inner lookup; a broken cache never
// fails an order. Not-found results are not cached, so a material added to the
// catalog becomes resolvable immediately.
type CachedCatalogLookup struct {
	inner  ports.CatalogLookup
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedCatalogLookup creates a read-through cache over the given lookup.
func NewCachedCatalogLookup(
	inner ports.CatalogLookup,
	client *redis.Client,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedCatalogLookup {
	return &CachedCatalogLookup{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "catalog_cache"),
	}
}

// Resolve returns the cached catalog record, falling through to the inner
// lookup on a miss and caching the result.
func (c *CachedCatalogLookup) Resolve(
	ctx context.Context,
	materialID kernel.UUID,
) (ports.Material, error) {
	if err := materialID.Validate(); err != nil {
		return ports.Material{}, err
	}

	key := keyPrefix + materialID.String()

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		material, decodeErr := decodePayload(cached)
		if decodeErr == nil {
			return material, nil
		}
		c.logger.Warn("discarding undecodable cache entry", "key", key, "error", decodeErr)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("catalog cache read failed", "key", key, "error", err)
	}

	material, err := c.inner.Resolve(ctx, materialID)
	if err != nil {
		return ports.Material{}, err
	}

	c.store(ctx, key, material)
	return material, nil
}

func (c *CachedCatalogLookup) store(ctx context.Context, key string, material ports.Material) {
	payload, err := json.Marshal(materialPayload{
		ID:        material.ID.String(),
		Name:      material.Name,
		SKU:       material.SKU,
		Unit:      material.Unit,
		UnitPrice: material.UnitPrice,
	})
	if err != nil {
		c.logger.Warn("catalog cache encode failed", "key", key, "error", err)
		return
	}

	if err = c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", "key", key, "error", err)
	}
}

func decodePayload(raw string) (ports.Material, error) {
	var payload materialPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return ports.Material{}, fmt.Errorf("unmarshal cached material: %w", err)
	}

	id, err := kernel.UUIDFromString(payload.ID)
	if err != nil {
		return ports.Material{}, errs.NewValueIsInvalidErrorWithCause("cached material id", err)
	}

	return ports.Material{
		ID:        id,
		Name:      payload.Name,
		SKU:       payload.SKU,
		Unit:      payload.Unit,
		UnitPrice: payload.UnitPrice,
	}, nil
}
