package market

import (
	"context"
	"fmt"
	"sort"
	"time"

	yfgo "github.com/komsit37/yf-go"

	"github.com/komsit37/stockdash/pkg/stockdash/types"
)

// PriceHistory returns daily bars for ticker over period. An unknown ticker
// yields an empty series, not an error.
func (g *YFGateway) PriceHistory(ctx context.Context, ticker string, period types.Period) (types.PriceSeries, error) {
	start := time.Now()
	res, err := g.chart(ctx, ticker, yfgo.ChartOptions{Range: period.Code, Interval: "1d"})
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("price history %s %s: %w", ticker, period.Code, err)
	}
	s := seriesFromChart(ticker, res)
	g.logger.Debug().
		Str("ticker", ticker).
		Str("period", period.Code).
		Int("bars", len(s.Bars)).
		Dur("elapsed", time.Since(start)).
		Msg("Price history fetched")
	return s, nil
}

func seriesFromChart(ticker string, res yfgo.ChartResult) types.PriceSeries {
	s := types.PriceSeries{Ticker: ticker, Currency: res.Meta.Currency}
	if len(res.Indicators.Quote) == 0 {
		return s
	}
	q := res.Indicators.Quote[0]
	loc := location(res.Meta.ExchangeTimezoneName)
	for i, ts := range res.Timestamp {
		open, high, low, cls := at(q.Open, i), at(q.High, i), at(q.Low, i), at(q.Close, i)
		fill := firstNonNil(cls, open, high, low)
		if fill == nil {
			continue
		}
		bar := types.PriceBar{
			Date:  time.Unix(ts, 0).In(loc),
			Open:  orElse(open, *fill),
			High:  orElse(high, *fill),
			Low:   orElse(low, *fill),
			Close: orElse(cls, *fill),
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			bar.Volume = *q.Volume[i]
		}
		s.Bars = append(s.Bars, bar)
	}
	sort.SliceStable(s.Bars, func(i, j int) bool { return s.Bars[i].Date.Before(s.Bars[j].Date) })
	return s
}

func location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func at(xs []*float64, i int) *float64 {
	if i < len(xs) {
		return xs[i]
	}
	return nil
}

func firstNonNil(xs ...*float64) *float64 {
	for _, x := range xs {
		if x != nil {
			return x
		}
	}
	return nil
}

func orElse(x *float64, def float64) float64 {
	if x == nil {
		return def
	}
	return *x
}
