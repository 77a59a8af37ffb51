package market

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	yfgo "github.com/komsit37/yf-go"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/komsit37/stockdash/pkg/stockdash/types"
)

const (
	// DefaultTimeout bounds a single upstream call.
	DefaultTimeout = 15 * time.Second

	// DefaultRateLimit is the default number of upstream calls per second.
	DefaultRateLimit = 5
)

// ErrNoData is returned when the provider answers without a usable result.
var ErrNoData = errors.New("no data returned")

// Gateway fetches market data for one ticker.
type Gateway interface {
	PriceHistory(ctx context.Context, ticker string, period types.Period) (types.PriceSeries, error)
	Statements(ctx context.Context, ticker string) (*types.StatementBundle, error)
}

// YFGateway implements Gateway using yf-go.
type YFGateway struct {
	client  yfgo.API
	limiter *rate.Limiter
	timeout time.Duration
	logger  arbor.ILogger

	// yf-go refreshes its crumb without locking
	mu sync.Mutex
}

// Option configures a YFGateway.
type Option func(*YFGateway)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(g *YFGateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithRateLimit caps upstream calls per second; 0 disables the limit.
func WithRateLimit(perSecond float64) Option {
	return func(g *YFGateway) {
		if perSecond <= 0 {
			g.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger sets the logger.
func WithLogger(logger arbor.ILogger) Option {
	return func(g *YFGateway) {
		g.logger = logger
	}
}

// NewYFGateway wraps client.
func NewYFGateway(client yfgo.API, opts ...Option) *YFGateway {
	g := &YFGateway{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = arbor.NewLogger()
	}
	return g
}

// NewClient builds the yf-go client. A positive ttl enables its raw response cache.
func NewClient(ttl time.Duration) *yfgo.Client {
	if ttl <= 0 {
		return yfgo.NewClient(yfgo.WithCacheDisabled())
	}
	return yfgo.NewClient(yfgo.WithDefaultCacheTTL(ttl))
}

// call runs fn after the rate limiter admits it, under the per-call timeout.
func (g *YFGateway) call(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	cctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(cctx)
}

func (g *YFGateway) chart(ctx context.Context, ticker string, opts yfgo.ChartOptions) (yfgo.ChartResult, error) {
	var res yfgo.ChartResult
	err := g.call(ctx, func(ctx context.Context) error {
		var err error
		res, err = g.client.ChartTyped(ctx, ticker, opts)
		return err
	})
	return res, err
}

// quoteSummary returns the raw module object for ticker.
func (g *YFGateway) quoteSummary(ctx context.Context, ticker string, modules []yfgo.QuoteSummaryModule) (map[string]any, error) {
	var raw any
	err := g.call(ctx, func(ctx context.Context) error {
		var err error
		raw, err = g.client.QuoteSummary(ctx, ticker, modules)
		return err
	})
	if err != nil {
		return nil, err
	}
	obj, ok := raw.(map[string]any)
	if !ok || len(obj) == 0 {
		return nil, ErrNoData
	}
	return obj, nil
}
