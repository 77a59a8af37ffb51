package chart

import (
	"sort"
	"time"

	"github.com/komsit37/stockdash/pkg/stockdash/types"
)

const (
	// DefaultHeight is the pixel height of both dashboard charts.
	DefaultHeight = 600

	// VolumeColor fills the trading volume bars.
	VolumeColor = "rgba(158,202,225,0.8)"
)

// BuildPriceChart returns a two-row chart: candlesticks over volume bars.
func BuildPriceChart(series types.PriceSeries, ticker string) *Spec {
	n := len(series.Bars)
	x := make([]string, n)
	price := Trace{
		Kind:  Candlestick,
		Name:  ticker,
		X:     x,
		Open:  make([]float64, n),
		High:  make([]float64, n),
		Low:   make([]float64, n),
		Close: make([]float64, n),
	}
	volume := Trace{Kind: Bar, Name: "Volume", X: x, Y: make([]float64, n), Color: VolumeColor}
	for i, b := range series.Bars {
		x[i] = b.Date.Format(time.DateOnly)
		price.Open[i], price.High[i], price.Low[i], price.Close[i] = b.Open, b.High, b.Low, b.Close
		volume.Y[i] = float64(b.Volume)
	}
	return &Spec{
		Title:      ticker + " Stock Price and Volume",
		Height:     DefaultHeight,
		Rows:       2,
		Cols:       1,
		RowHeights: []float64{0.7, 0.2},
		SharedX:    true,
		Panels: []Panel{
			{Row: 0, Col: 0, Title: ticker + " Stock Price", Traces: []Trace{price}},
			{Row: 1, Col: 0, Title: "Trading Volume", Traces: []Trace{volume}},
		},
	}
}

type financialCell struct {
	row, col int
	title    string
	kind     types.StatementKind
	item     string
}

var financialCells = []financialCell{
	{0, 0, "Annual Revenue Trend", types.IncomeStatement, "Total Revenue"},
	{0, 1, "Net Income Trend", types.IncomeStatement, "Net Income"},
	{1, 0, "Quarterly Revenue", types.QuarterlyIncomeStatement, "Total Revenue"},
	{1, 1, "Quarterly Net Income", types.QuarterlyIncomeStatement, "Net Income"},
}

// BuildFinancialsChart returns a 2x2 bar grid of revenue and net income, or
// nil when there is no annual income statement. A cell is filled only when
// its line item exists; missing values are skipped.
func BuildFinancialsChart(b *types.StatementBundle, ticker string) *Spec {
	if b.Statement(types.IncomeStatement).Empty() {
		return nil
	}
	s := &Spec{
		Title:  ticker + " Financial Performance",
		Height: DefaultHeight,
		Rows:   2,
		Cols:   2,
	}
	for _, c := range financialCells {
		p := Panel{Row: c.row, Col: c.col, Title: c.title}
		t := b.Statement(c.kind)
		if !t.Empty() {
			if cells, ok := t.Row(c.item); ok {
				if tr, ok := barTrace(c.item, t.Columns, cells); ok {
					p.Traces = []Trace{tr}
				}
			}
		}
		s.Panels = append(s.Panels, p)
	}
	return s
}

// barTrace plots the present cells of a statement row in ascending column order.
func barTrace(name string, columns []string, cells []*float64) (Trace, bool) {
	idx := make([]int, 0, len(columns))
	for i := range columns {
		if i < len(cells) && cells[i] != nil {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool { return columns[idx[a]] < columns[idx[b]] })

	tr := Trace{Kind: Bar, Name: name}
	for _, i := range idx {
		tr.X = append(tr.X, columns[i])
		tr.Y = append(tr.Y, *cells[i])
	}
	return tr, len(tr.X) > 0
}
