package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/domain/ports/repository"
	"vendor-pricelist-platform/internal/infra/metrics"
	red "vendor-pricelist-platform/internal/infra/redis"
)

var _ repository.VendorRepository = (*vendorRepoCacheDecorator)(nil)

// vendorRepoCacheDecorator caches vendor profiles in Redis. The public
// pricelist page reads the profile on every view, so this is the hottest
// lookup in the system.
type vendorRepoCacheDecorator struct {
	inner repository.VendorRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewVendorRepoCacheDecorator(inner repository.VendorRepository, cache red.RedisClient, ttl time.Duration) repository.VendorRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &vendorRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func vendorKey(userID string) string {
	return fmt.Sprintf("vendor:user:%s", userID)
}

// Save invalidates before writing through.
func (d *vendorRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, v *model.VendorProfile) error {
	_ = d.cache.Del(ctx, vendorKey(v.UserID))
	return d.inner.Save(ctx, tx, v)
}

func (d *vendorRepoCacheDecorator) FindByUser(ctx context.Context, tx repository.Tx, userID string) (*model.VendorProfile, error) {
	key := vendorKey(userID)
	if val, err := d.cache.Get(ctx, key); err == nil {
		metrics.IncCacheRequest("vendor", "hit")
		var v model.VendorProfile
		if json.Unmarshal([]byte(val), &v) == nil {
			return &v, nil
		}
	}

	metrics.IncCacheRequest("vendor", "miss")
	v, err := d.inner.FindByUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if bytes, err := json.Marshal(v); err == nil {
		_ = d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return v, nil
}
