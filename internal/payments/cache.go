package payments

import (
	"context"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/zjrosen/feeportal/internal/log"
)

const recordsKey = "records"

// CachedProvider memoizes another provider's records for a TTL.
type CachedProvider struct {
	next  Provider
	cache *cache.Cache
}

// NewCachedProvider wraps next. A non-positive ttl caches until Invalidate.
func NewCachedProvider(next Provider, ttl time.Duration) *CachedProvider {
	expiration := ttl
	cleanup := 2 * ttl
	if ttl <= 0 {
		expiration = cache.NoExpiration
		cleanup = 0
	}
	return &CachedProvider{
		next:  next,
		cache: cache.New(expiration, cleanup),
	}
}

// Records implements Provider.
func (c *CachedProvider) Records(ctx context.Context) ([]PaymentRecord, error) {
	if v, ok := c.cache.Get(recordsKey); ok {
		return slices.Clone(v.([]PaymentRecord)), nil
	}

	records, err := c.next.Records(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(recordsKey, slices.Clone(records))
	log.Debug(log.CatPayments, "Records cached", "count", len(records))
	return records, nil
}

// Invalidate drops the cached records so the next call hits the wrapped provider.
func (c *CachedProvider) Invalidate() {
	c.cache.Delete(recordsKey)
}
