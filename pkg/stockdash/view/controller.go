package view

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/komsit37/stockdash/pkg/stockdash/chart"
	"github.com/komsit37/stockdash/pkg/stockdash/format"
	"github.com/komsit37/stockdash/pkg/stockdash/logging"
	"github.com/komsit37/stockdash/pkg/stockdash/market"
	"github.com/komsit37/stockdash/pkg/stockdash/types"
)

// Universe supplies the selectable tickers.
type Universe interface {
	Universe(ctx context.Context) []string
}

// Controller runs render passes: decode the selection, fetch, format.
type Controller struct {
	Universe      Universe
	Gateway       market.Gateway
	Logger        arbor.ILogger
	DefaultTicker string

	// Metrics overrides the key-metrics layout; nil uses format.Layout.
	Metrics [][]string
}

// Decode resolves the selection in values against the current universe.
func (c *Controller) Decode(ctx context.Context, values url.Values) (State, int, []string) {
	universe := c.Universe.Universe(ctx)
	st, idx := decode(values, universe, c.DefaultTicker)
	return st, idx, universe
}

// Render decodes values and builds the dashboard for the resulting selection.
// The universe used for decoding is returned for the selectors.
func (c *Controller) Render(ctx context.Context, values url.Values) (*Dashboard, []string) {
	st, idx, universe := c.Decode(ctx, values)
	d := c.Build(ctx, st)
	d.Index = idx
	return d, universe
}

// Build performs one full fetch-and-format pass for st. It never fails:
// errors are reported inside the dashboard.
func (c *Controller) Build(ctx context.Context, st State) *Dashboard {
	start := time.Now()
	d := &Dashboard{State: st}

	var (
		series    types.PriceSeries
		priceErr  error
		bundle    *types.StatementBundle
		bundleErr error
	)
	// The fetches fail independently; each error is reported in its own section.
	var wg sync.WaitGroup
	wg.Go(func() {
		series, priceErr = c.Gateway.PriceHistory(ctx, st.Ticker, st.Period)
	})
	wg.Go(func() {
		bundle, bundleErr = c.Gateway.Statements(ctx, st.Ticker)
	})
	wg.Wait()

	if priceErr != nil {
		c.logger().Warn().Str("ticker", st.Ticker).Str("period", st.Period.Code).Err(priceErr).Msg("Price history failed")
		d.PriceError = "Error fetching data: " + priceErr.Error()
	} else {
		d.PriceChart = chart.BuildPriceChart(series, st.Ticker)
	}

	if bundleErr != nil || bundle == nil {
		c.logger().Error().Str("ticker", st.Ticker).Err(bundleErr).Msg("Statement bundle failed")
		d.Error = FetchError
		return d
	}

	company := format.CompanyInfo(bundle.Info)
	d.Company = &company
	d.Metrics = format.Strip(bundle.Info, c.layout())
	d.FinancialChart = chart.BuildFinancialsChart(bundle, st.Ticker)
	d.Annual = c.tables(st.Ticker, bundle, annualTables)
	d.Quarterly = c.tables(st.Ticker, bundle, quarterlyTables)
	if !bundle.Statement(types.Actions).Empty() {
		tv := c.table(st.Ticker, bundle, actionsTable)
		d.Actions = &tv
	}

	c.logger().Info().
		Str("ticker", st.Ticker).
		Str("period", st.Period.Code).
		Bool("price_ok", priceErr == nil).
		Dur("elapsed", time.Since(start)).
		Msg("Dashboard built")
	return d
}

func (c *Controller) layout() [][]string {
	if len(c.Metrics) > 0 {
		return c.Metrics
	}
	return format.Layout
}

func (c *Controller) tables(ticker string, b *types.StatementBundle, specs []tableSpec) []format.TableView {
	out := make([]format.TableView, 0, len(specs))
	for _, spec := range specs {
		out = append(out, c.table(ticker, b, spec))
	}
	return out
}

// table formats one statement; a failure becomes a placeholder so the
// remaining sections still render.
func (c *Controller) table(ticker string, b *types.StatementBundle, spec tableSpec) (tv format.TableView) {
	defer func() {
		if r := recover(); r != nil {
			c.logger().Error().
				Str("ticker", ticker).
				Str("statement", string(spec.kind)).
				Str("panic", fmt.Sprint(r)).
				Msg("Statement render failed")
			tv = failedTable(spec, fmt.Errorf("%v", r))
		}
	}()
	tv = format.NewTableView(spec.title, spec.warning, b.Statement(spec.kind))
	tv.Name = spec.name
	return tv
}

func failedTable(spec tableSpec, err error) format.TableView {
	return format.TableView{Title: spec.title, Name: spec.name}.Failed(err)
}

func (c *Controller) logger() arbor.ILogger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.Get()
}
