package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/stockdash/pkg/stockdash/chart"
	"github.com/komsit37/stockdash/pkg/stockdash/format"
	"github.com/komsit37/stockdash/pkg/stockdash/types"
	"github.com/komsit37/stockdash/pkg/stockdash/view"
)

func f(v float64) *float64 { return &v }

func sampleDashboard() *view.Dashboard {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	series := types.PriceSeries{Ticker: "AAPL", Bars: []types.PriceBar{
		{Date: day(2), Open: 187.15, High: 188.44, Low: 183.89, Close: 185.64, Volume: 82488700},
		{Date: day(3), Open: 184.22, High: 185.88, Low: 183.43, Close: 184.25, Volume: 58414500},
	}}
	income := types.Table{
		Rows:    []string{"Net Income", "Total Revenue"},
		Columns: []string{"2023-09-30", "2022-09-30"},
		Cells:   [][]*float64{{f(96995000000), f(99803000000)}, {f(383285000000), f(394328000000)}},
	}
	bundle := &types.StatementBundle{Ticker: "AAPL", Statements: map[types.StatementKind]types.Table{
		types.IncomeStatement: income,
	}}
	info := types.Info{
		"longName":            "Apple Inc.",
		"sector":              "Technology",
		"fullTimeEmployees":   161000.0,
		"currency":            "USD",
		"marketCap":           3.0e12,
		"longBusinessSummary": "Apple designs smartphones.",
	}
	company := format.CompanyInfo(info)
	actions := format.NewTableView("Dividends and Stock Splits", "", types.Table{
		Rows:    []string{"2024-02-09"},
		Columns: []string{"Dividends", "Stock Splits"},
		Cells:   [][]*float64{{f(0.24), f(0)}},
	})
	return &view.Dashboard{
		State:          view.DefaultState(),
		PriceChart:     chart.BuildPriceChart(series, "AAPL"),
		Company:        &company,
		Metrics:        format.Strip(info, format.Layout),
		FinancialChart: chart.BuildFinancialsChart(bundle, "AAPL"),
		Annual: []format.TableView{
			format.NewTableView("Annual Income Statement", "", income),
			format.Placeholder("Annual Balance Sheet", "No Annual Balance Sheet data available."),
		},
		Quarterly: []format.TableView{
			format.Placeholder("Quarterly Cash Flow", "No Quarterly Cash Flow data available."),
		},
		Actions: &actions,
	}
}

func TestNew(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &TerminalRenderer{}, r)

	r, err = New("json")
	require.NoError(t, err)
	assert.IsType(t, &JSONRenderer{}, r)

	_, err = New("xml")
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTerminalRenderer().Render(&buf, sampleDashboard(), Options{Width: 120}))
	out := buf.String()

	for _, want := range []string{
		"AAPL · 1 YEAR",
		"Stock Price Chart",
		"2024-01-02 to 2024-01-03 · 2 sessions · last close 184.25 (-0.75%)",
		"82,488,700",
		"Company Information",
		"Apple Inc.",
		"161,000",
		"Business Summary",
		"smartphones",
		"AAPL Key Metrics",
		"$3,000,000,000,000",
		"Financial Performance",
		"Annual Revenue Trend",
		"383,285,000,000",
		"Detailed Financial Data",
		"Annual Reports",
		"Net Income",
		"No Annual Balance Sheet data available.",
		"Quarterly Reports",
		"No Quarterly Cash Flow data available.",
		"Dividends and Stock Splits",
		"0.24",
	} {
		assert.Contains(t, out, want)
	}
}

func TestTerminalRendererFetchError(t *testing.T) {
	d := &view.Dashboard{
		State:      view.DefaultState(),
		PriceError: "Error fetching data: timeout",
		Error:      view.FetchError,
	}
	var buf bytes.Buffer
	require.NoError(t, NewTerminalRenderer().Render(&buf, d, Options{}))
	out := buf.String()
	assert.Contains(t, out, "Error fetching data: timeout")
	assert.Contains(t, out, view.FetchError)
	assert.NotContains(t, out, "Company Information")
}

func TestTerminalRendererEmptyPrice(t *testing.T) {
	d := &view.Dashboard{State: view.DefaultState(), PriceChart: chart.BuildPriceChart(types.PriceSeries{}, "AAPL")}
	var buf bytes.Buffer
	require.NoError(t, NewTerminalRenderer().Render(&buf, d, Options{}))
	assert.Contains(t, buf.String(), "No price history available.")
}

func TestTerminalRendererTableError(t *testing.T) {
	tv := format.Placeholder("Annual Balance Sheet", "Unable to display Annual Balance Sheet data.")
	tv.Error = "Error displaying Annual Balance Sheet: bad shape"
	d := &view.Dashboard{State: view.DefaultState(), Annual: []format.TableView{tv}}
	var buf bytes.Buffer
	require.NoError(t, NewTerminalRenderer().Render(&buf, d, Options{}))
	assert.Contains(t, buf.String(), "Error displaying Annual Balance Sheet: bad shape")
	assert.Contains(t, buf.String(), "Unable to display Annual Balance Sheet data.")
}

func TestTerminalRendererStatementRenderPanic(t *testing.T) {
	orig := renderStatement
	t.Cleanup(func() { renderStatement = orig })
	renderStatement = func(tv format.TableView, style func(table.Writer)) string {
		if tv.Title == "Annual Income Statement" {
			panic("render boom")
		}
		return orig(tv, style)
	}

	d := sampleDashboard()
	var buf bytes.Buffer
	require.NoError(t, NewTerminalRenderer().Render(&buf, d, Options{}))
	out := buf.String()
	assert.Contains(t, out, "Error displaying Annual Income Statement: render boom")
	assert.Contains(t, out, "Unable to display Annual Income Statement data.")
	assert.Contains(t, out, "Quarterly Reports")
	assert.Contains(t, out, "Dividends and Stock Splits")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestTerminalRendererWriteError(t *testing.T) {
	err := NewTerminalRenderer().Render(failingWriter{}, sampleDashboard(), Options{})
	assert.EqualError(t, err, "closed")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer().Render(&buf, sampleDashboard(), Options{PrettyJSON: true}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "AAPL", got["state"].(map[string]any)["ticker"])
	assert.Contains(t, got, "price_chart")
	assert.NotContains(t, got, "error")
	assert.Contains(t, buf.String(), "\n  \"state\"")
}

func TestSyms(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Syms(&buf, []string{"AAPL", " MSFT ", "", "BRK-B"}))
	assert.Equal(t, "AAPL,MSFT,BRK-B\n", buf.String())
}
