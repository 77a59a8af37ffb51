package chart

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ScriptURL is the echarts bundle the rendered snippets expect on the page.
const ScriptURL = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

// Plot area in percent of the canvas.
const (
	plotTop    = 10.0
	plotBottom = 6.0
	plotLeft   = 8.0
	plotRight  = 4.0
	rowGap     = 8.0
	colGap     = 8.0
)

// RenderHTML renders s as a div plus an initialising script. The element id
// is derived from the title, so identical specs render identically.
func RenderHTML(s *Spec) (out template.HTML, err error) {
	if s == nil {
		return "", nil
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("render chart %q: %v", s.Title, r)
		}
	}()

	host := build(s)
	snip := host.RenderSnippet()
	return template.HTML(snip.Element + "\n" + snip.Script), nil
}

// ChartID turns a title into a stable element id usable as a JS identifier.
func ChartID(title string) string {
	var b strings.Builder
	b.WriteString("chart_")
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func build(s *Spec) *charts.Bar {
	rows, cols := max(s.Rows, 1), max(s.Cols, 1)
	height := s.Height
	if height <= 0 {
		height = DefaultHeight
	}

	host := charts.NewBar()
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:   "100%",
			Height:  strconv.Itoa(height) + "px",
			ChartID: ChartID(s.Title),
		}),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithGridOpts(grids(rows, cols, s.RowHeights)...),
	}

	var xIndex []int
	for i, p := range s.Panels {
		x := opts.XAxis{GridIndex: p.Row*cols + p.Col, Type: "category", Data: panelX(p)}
		y := opts.YAxis{GridIndex: p.Row*cols + p.Col, Name: p.Title, Scale: opts.Bool(true)}
		if i == 0 {
			host.SetXAxis(x.Data)
			global = append(global, charts.WithXAxisOpts(x, 0), charts.WithYAxisOpts(y, 0))
		} else {
			host.ExtendXAxis(x)
			host.ExtendYAxis(y)
		}
		xIndex = append(xIndex, i)
	}
	if s.SharedX && len(xIndex) > 0 {
		global = append(global, charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", XAxisIndex: xIndex}))
		if s.RangeSlider {
			global = append(global, charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", XAxisIndex: xIndex}))
		}
	}
	host.SetGlobalOptions(global...)

	for i, p := range s.Panels {
		for _, t := range p.Traces {
			host.Overlap(series(t, i))
		}
	}
	return host
}

// grids lays out rows x cols grids, row-major, with row heights proportional
// to weights (equal when weights do not match rows).
func grids(rows, cols int, weights []float64) []opts.Grid {
	if len(weights) != rows {
		weights = make([]float64, rows)
		for i := range weights {
			weights[i] = 1
		}
	}
	var sum float64
	for _, w := range weights {
		sum += w
	}
	usableH := 100 - plotTop - plotBottom - rowGap*float64(rows-1)
	usableW := 100 - plotLeft - plotRight - colGap*float64(cols-1)
	width := usableW / float64(cols)

	out := make([]opts.Grid, 0, rows*cols)
	top := plotTop
	for r := 0; r < rows; r++ {
		h := usableH * weights[r] / sum
		for c := 0; c < cols; c++ {
			out = append(out, opts.Grid{
				Top:    pct(top),
				Left:   pct(plotLeft + float64(c)*(width+colGap)),
				Width:  pct(width),
				Height: pct(h),
			})
		}
		top += h + rowGap
	}
	return out
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func panelX(p Panel) []string {
	for _, t := range p.Traces {
		if len(t.X) > 0 {
			return t.X
		}
	}
	return nil
}

// series builds a single-series chart bound to the axes of panel index axis.
func series(t Trace, axis int) charts.Overlaper {
	bind := charts.WithSeriesOpts(func(s *charts.SingleSeries) {
		s.XAxisIndex = axis
		s.YAxisIndex = axis
	})
	style := charts.WithItemStyleOpts(opts.ItemStyle{Color: t.Color})

	switch t.Kind {
	case Candlestick:
		data := make([]opts.KlineData, len(t.X))
		for i := range t.X {
			data[i] = opts.KlineData{Value: [4]float64{at(t.Open, i), at(t.Close, i), at(t.Low, i), at(t.High, i)}}
		}
		return charts.NewKLine().AddSeries(t.Name, data, bind)
	case Line:
		data := make([]opts.LineData, len(t.X))
		for i := range t.X {
			data[i] = opts.LineData{Value: at(t.Y, i)}
		}
		return charts.NewLine().AddSeries(t.Name, data, bind, style)
	default:
		data := make([]opts.BarData, len(t.X))
		for i := range t.X {
			data[i] = opts.BarData{Value: at(t.Y, i)}
		}
		return charts.NewBar().AddSeries(t.Name, data, bind, style)
	}
}

func at(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}
