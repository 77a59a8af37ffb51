package view

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/komsit37/stockdash/pkg/stockdash/format"
	"github.com/komsit37/stockdash/pkg/stockdash/types"
	"github.com/komsit37/stockdash/pkg/stockdash/universe"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		universe   []string
		wantTicker string
		wantPeriod string
		wantIndex  int
	}{
		{name: "known", query: "ticker=MSFT&period=3mo", universe: universe.Fallback, wantTicker: "MSFT", wantPeriod: "3mo", wantIndex: 1},
		{name: "case and space", query: "ticker=+msft+&period=5y", universe: universe.Fallback, wantTicker: "MSFT", wantPeriod: "5y", wantIndex: 1},
		{name: "unknown ticker", query: "ticker=ZZZZ", universe: universe.Fallback, wantTicker: "AAPL", wantPeriod: "1y", wantIndex: 0},
		{name: "empty", query: "", universe: universe.Fallback, wantTicker: "AAPL", wantPeriod: "1y", wantIndex: 0},
		{name: "bad period", query: "ticker=NVDA&period=10y", universe: universe.Fallback, wantTicker: "NVDA", wantPeriod: "1y", wantIndex: 7},
		{name: "no AAPL in universe", query: "ticker=ZZZZ", universe: []string{"MMM", "AOS"}, wantTicker: "MMM", wantPeriod: "1y", wantIndex: 0},
		{name: "AAPL later in universe", query: "ticker=ZZZZ", universe: []string{"MMM", "AAPL"}, wantTicker: "AAPL", wantPeriod: "1y", wantIndex: 1},
		{name: "empty universe", query: "ticker=MSFT", universe: nil, wantTicker: "AAPL", wantPeriod: "1y", wantIndex: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			st, idx := Decode(values, tt.universe)
			assert.Equal(t, tt.wantTicker, st.Ticker)
			assert.Equal(t, tt.wantPeriod, st.Period.Code)
			assert.Equal(t, tt.wantIndex, idx)
		})
	}
}

func TestStateRoundTrip(t *testing.T) {
	p, _ := types.ParsePeriod("3mo")
	st := State{Ticker: "MSFT", Period: p}
	assert.Equal(t, "period=3mo&ticker=MSFT", st.Query())

	got, idx := Decode(st.Encode(), universe.Fallback)
	assert.Equal(t, st, got)
	assert.Equal(t, 1, idx)
}

func TestOptions(t *testing.T) {
	opts := PeriodOptions(types.DefaultPeriod)
	require.Len(t, opts, 6)
	assert.Equal(t, Option{Value: "1y", Label: types.DefaultPeriod.Label, Selected: true}, opts[3])
	assert.False(t, opts[0].Selected)

	tick := TickerOptions([]string{"AAPL", "MSFT"}, "MSFT")
	assert.Equal(t, []Option{{Value: "AAPL", Label: "AAPL"}, {Value: "MSFT", Label: "MSFT", Selected: true}}, tick)
}

type fakeGateway struct {
	series    types.PriceSeries
	bundle    *types.StatementBundle
	priceErr  error
	bundleErr error
}

func (g *fakeGateway) PriceHistory(ctx context.Context, ticker string, period types.Period) (types.PriceSeries, error) {
	return g.series, g.priceErr
}

func (g *fakeGateway) Statements(ctx context.Context, ticker string) (*types.StatementBundle, error) {
	return g.bundle, g.bundleErr
}

func f(v float64) *float64 { return &v }

func appleBundle() *types.StatementBundle {
	income := types.Table{
		Rows:    []string{"Net Income", "Total Revenue"},
		Columns: []string{"2023-09-30", "2022-09-30"},
		Cells:   [][]*float64{{f(96995000000), f(99803000000)}, {f(383285000000), f(394328000000)}},
	}
	return &types.StatementBundle{
		Ticker: "AAPL",
		Info: types.Info{
			"longName":   "Apple Inc.",
			"currency":   "USD",
			"marketCap":  3.0e12,
			"trailingPE": 29.46,
		},
		Statements: map[types.StatementKind]types.Table{
			types.Financials:      income,
			types.IncomeStatement: income,
		},
	}
}

func newController(g *fakeGateway) *Controller {
	return &Controller{
		Universe: universe.NewProvider(universe.StaticSource(universe.Fallback), arbor.NewLogger()),
		Gateway:  g,
		Logger:   arbor.NewLogger(),
	}
}

func TestBuild(t *testing.T) {
	g := &fakeGateway{
		series: types.PriceSeries{Ticker: "AAPL"},
		bundle: appleBundle(),
	}
	d := newController(g).Build(context.Background(), DefaultState())

	assert.Empty(t, d.Error)
	assert.Empty(t, d.PriceError)
	require.NotNil(t, d.PriceChart)
	assert.Equal(t, "AAPL Key Metrics", d.MetricsTitle())

	require.NotNil(t, d.Company)
	assert.Equal(t, "Apple Inc.", d.Company.Left[0].Value)

	require.Len(t, d.Metrics, 4)
	assert.Equal(t, "$3,000,000,000,000", d.Metrics[0][0].Value)
	assert.Equal(t, "29.46", d.Metrics[0][1].Value)
	assert.Equal(t, format.NotAvailable, d.Metrics[3][1].Value)

	require.NotNil(t, d.FinancialChart)
	assert.Equal(t, "AAPL Financial Performance", d.FinancialChart.Title)

	require.Len(t, d.Annual, 4)
	assert.Equal(t, "Annual Financial Statements", d.Annual[0].Title)
	assert.Equal(t, "Annual Financials", d.Annual[0].Name)
	assert.True(t, d.Annual[0].Available)
	assert.True(t, d.Annual[1].Available)
	assert.False(t, d.Annual[2].Available)
	assert.Equal(t, "No Annual Balance Sheet data available.", d.Annual[2].Warning)
	assert.Equal(t, "No Annual Cash Flow data available.", d.Annual[3].Warning)

	require.Len(t, d.Quarterly, 4)
	assert.Equal(t, "No quarterly financial data available.", d.Quarterly[0].Warning)
	assert.Equal(t, "Quarterly Cash Flow", d.Quarterly[3].Title)

	assert.Nil(t, d.Actions, "empty actions table is omitted")
}

func TestBuildActions(t *testing.T) {
	b := appleBundle()
	b.Statements[types.Actions] = types.Table{
		Rows:    []string{"2024-02-09"},
		Columns: []string{"Dividends", "Stock Splits"},
		Cells:   [][]*float64{{f(0.24), f(0)}},
	}
	d := newController(&fakeGateway{bundle: b}).Build(context.Background(), DefaultState())
	require.NotNil(t, d.Actions)
	assert.Equal(t, "Dividends and Stock Splits", d.Actions.Title)
	assert.Equal(t, []string{"2024-02-09", "0.24", "0"}, d.Actions.Rows[0])
}

func TestBuildBundleFailureSuppressesFinancials(t *testing.T) {
	g := &fakeGateway{
		series:    types.PriceSeries{Ticker: "ZZZZ"},
		bundleErr: errors.New("boom"),
	}
	d := newController(g).Build(context.Background(), State{Ticker: "ZZZZ", Period: types.DefaultPeriod})

	assert.Equal(t, FetchError, d.Error)
	assert.NotNil(t, d.PriceChart)
	assert.Nil(t, d.Company)
	assert.Nil(t, d.Metrics)
	assert.Nil(t, d.FinancialChart)
	assert.Nil(t, d.Annual)
	assert.Nil(t, d.Quarterly)
	assert.Nil(t, d.Actions)
}

func TestBuildPriceFailureKeepsOtherSections(t *testing.T) {
	g := &fakeGateway{priceErr: errors.New("timeout"), bundle: appleBundle()}
	d := newController(g).Build(context.Background(), DefaultState())

	assert.Equal(t, "Error fetching data: timeout", d.PriceError)
	assert.Nil(t, d.PriceChart)
	assert.Empty(t, d.Error)
	assert.NotNil(t, d.Company)
	assert.Len(t, d.Annual, 4)
}

func TestBuildNoAnnualIncomeHasNoFinancialChart(t *testing.T) {
	b := appleBundle()
	delete(b.Statements, types.IncomeStatement)
	d := newController(&fakeGateway{bundle: b}).Build(context.Background(), DefaultState())
	assert.Nil(t, d.FinancialChart)
	assert.Empty(t, d.Error)
}

func TestBuildCustomMetricsLayout(t *testing.T) {
	c := newController(&fakeGateway{bundle: appleBundle()})
	c.Metrics = [][]string{{"pe"}}
	d := c.Build(context.Background(), DefaultState())
	assert.Equal(t, [][]format.MetricValue{{{Key: "pe", Label: "P/E Ratio", Value: "29.46"}}}, d.Metrics)
}

func TestControllerDecode(t *testing.T) {
	c := newController(&fakeGateway{})
	c.DefaultTicker = "MSFT"
	st, idx, u := c.Decode(context.Background(), url.Values{"ticker": {"ZZZZ"}})
	assert.Equal(t, "MSFT", st.Ticker)
	assert.Equal(t, 1, idx)
	assert.Equal(t, universe.Fallback, u)
}

func TestControllerRender(t *testing.T) {
	c := newController(&fakeGateway{bundle: appleBundle()})
	d, u := c.Render(context.Background(), url.Values{"ticker": {"nvda"}, "period": {"6mo"}})
	assert.Equal(t, "NVDA", d.State.Ticker)
	assert.Equal(t, "6mo", d.State.Period.Code)
	assert.Equal(t, 7, d.Index)
	assert.Len(t, u, len(universe.Fallback))
}

func TestFailedTable(t *testing.T) {
	tv := failedTable(annualTables[2], errors.New("bad shape"))
	assert.False(t, tv.Available)
	assert.Equal(t, "Annual Balance Sheet", tv.Title)
	assert.Equal(t, "Unable to display Annual Balance Sheet data.", tv.Warning)
	assert.Equal(t, "Error displaying Annual Balance Sheet: bad shape", tv.Error)
}
