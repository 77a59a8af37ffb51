package market

import (
	"context"
	"errors"
	"strings"
	"sync"

	yfgo "github.com/komsit37/yf-go"
)

var errUpstream = errors.New("upstream down")

// fakeYF serves canned quoteSummary results keyed by the joined module list
// and chart results keyed by range.
type fakeYF struct {
	mu         sync.Mutex
	summaries  map[string]any
	summaryErr map[string]error
	charts     map[string]yfgo.ChartResult
	chartErr   map[string]error
	calls      []string
}

func newFakeYF() *fakeYF {
	return &fakeYF{
		summaries:  map[string]any{},
		summaryErr: map[string]error{},
		charts:     map[string]yfgo.ChartResult{},
		chartErr:   map[string]error{},
	}
}

func (f *fakeYF) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeYF) QuoteSummary(ctx context.Context, symbol string, modules []yfgo.QuoteSummaryModule) (any, error) {
	key := strings.Join(yfgo.ModulesToStrings(modules), ",")
	f.record("qs:" + symbol + ":" + key)
	if err := f.summaryErr[key]; err != nil {
		return nil, err
	}
	return f.summaries[key], nil
}

func (f *fakeYF) QuoteSummaryTyped(ctx context.Context, symbol string, modules []yfgo.QuoteSummaryModule) (yfgo.QuoteSummaryTyped, error) {
	return yfgo.QuoteSummaryTyped{}, errors.New("not used")
}

func (f *fakeYF) Quote(ctx context.Context, symbols []string) ([]yfgo.Quote, error) {
	return nil, errors.New("not used")
}

func (f *fakeYF) Chart(ctx context.Context, symbol string, opts yfgo.ChartOptions) (any, error) {
	return nil, errors.New("not used")
}

func (f *fakeYF) ChartTyped(ctx context.Context, symbol string, opts yfgo.ChartOptions) (yfgo.ChartResult, error) {
	f.record("chart:" + symbol + ":" + opts.Range + ":" + opts.Interval)
	if err := f.chartErr[opts.Range]; err != nil {
		return yfgo.ChartResult{}, err
	}
	return f.charts[opts.Range], nil
}

func fp(v float64) *float64 { return &v }
func ip(v int64) *int64     { return &v }

func raw(v float64) map[string]any { return map[string]any{"raw": v, "fmt": "x"} }

func infoKey() string {
	return strings.Join(yfgo.ModulesToStrings(infoModules), ",")
}

// appleFixture loads a realistic quoteSummary payload for AAPL.
func appleFixture(f *fakeYF) {
	f.summaries[infoKey()] = map[string]any{
		"price": map[string]any{
			"longName":           "Apple Inc.",
			"currency":           "USD",
			"marketCap":          raw(3.0e12),
			"regularMarketPrice": raw(189.0),
		},
		"summaryDetail": map[string]any{
			"marketCap":     raw(1),
			"dayLow":        raw(188.0),
			"dayHigh":       raw(191.5),
			"dividendYield": map[string]any{},
		},
		"assetProfile": map[string]any{
			"sector":            "Technology",
			"fullTimeEmployees": 164000.0,
			"companyOfficers":   []any{map[string]any{"name": "Tim Cook"}},
		},
	}
	f.summaries["incomeStatementHistory"] = map[string]any{
		"incomeStatementHistory": map[string]any{
			"maxAge": 86400.0,
			"incomeStatementHistory": []any{
				map[string]any{
					"maxAge":       1.0,
					"endDate":      map[string]any{"raw": 1664496000.0, "fmt": "2022-09-30"},
					"totalRevenue": raw(394328000000),
					"netIncome":    raw(99803000000),
				},
				map[string]any{
					"maxAge":       1.0,
					"endDate":      map[string]any{"raw": 1696032000.0, "fmt": "2023-09-30"},
					"totalRevenue": raw(383285000000),
					"netIncome":    raw(96995000000),
					"ebit":         map[string]any{},
				},
			},
		},
	}
	f.summaries["incomeStatementHistoryQuarterly"] = map[string]any{
		"incomeStatementHistoryQuarterly": map[string]any{
			"incomeStatementHistory": []any{
				map[string]any{
					"endDate":      map[string]any{"raw": 1711843200.0},
					"totalRevenue": raw(90753000000),
				},
			},
		},
	}
	f.summaryErr["balanceSheetHistory"] = errUpstream
}
