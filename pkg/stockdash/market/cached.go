package market

import (
	"context"
	"time"

	"github.com/komsit37/stockdash/pkg/stockdash/types"
)

// CachedGateway decorates a Gateway with TTL+LRU caches for prices and bundles.
type CachedGateway struct {
	next    Gateway
	prices  *Cache[types.PriceSeries]
	bundles *Cache[*types.StatementBundle]
}

// NewCachedGateway wraps next. Each cache holds at most size entries.
func NewCachedGateway(next Gateway, ttl time.Duration, size int) *CachedGateway {
	return &CachedGateway{
		next:    next,
		prices:  NewCache[types.PriceSeries](ttl, size),
		bundles: NewCache[*types.StatementBundle](ttl, size),
	}
}

func (c *CachedGateway) PriceHistory(ctx context.Context, ticker string, period types.Period) (types.PriceSeries, error) {
	return c.prices.Do(ctx, ticker+"|"+period.Code, func(ctx context.Context) (types.PriceSeries, error) {
		return c.next.PriceHistory(ctx, ticker, period)
	})
}

func (c *CachedGateway) Statements(ctx context.Context, ticker string) (*types.StatementBundle, error) {
	return c.bundles.Do(ctx, ticker, func(ctx context.Context) (*types.StatementBundle, error) {
		return c.next.Statements(ctx, ticker)
	})
}
