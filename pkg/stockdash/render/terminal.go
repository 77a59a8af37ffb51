package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/stockdash/pkg/stockdash/chart"
	"github.com/komsit37/stockdash/pkg/stockdash/format"
	"github.com/komsit37/stockdash/pkg/stockdash/logging"
	"github.com/komsit37/stockdash/pkg/stockdash/view"
)

// RecentBars is the number of trailing sessions listed under the price section.
const RecentBars = 10

// TerminalRenderer prints a dashboard as terminal tables.
type TerminalRenderer struct{}

func NewTerminalRenderer() *TerminalRenderer { return &TerminalRenderer{} }

func (r *TerminalRenderer) Render(w io.Writer, d *view.Dashboard, opts Options) error {
	p := printer{w: w, opts: opts}
	p.title(fmt.Sprintf("%s · %s", d.State.Ticker, d.State.Period.Label))

	p.section("Stock Price Chart")
	if d.PriceError != "" {
		p.errorLine(d.PriceError)
	} else {
		p.price(d.PriceChart)
	}

	if d.Error != "" {
		p.errorLine(d.Error)
		return p.err
	}

	if d.Company != nil {
		p.section("Company Information")
		p.company(*d.Company)
	}
	if len(d.Metrics) > 0 {
		p.section(d.MetricsTitle())
		p.metrics(d.Metrics)
	}
	if d.FinancialChart != nil {
		p.section("Financial Performance")
		p.financials(d.FinancialChart)
	}
	if len(d.Annual) > 0 || len(d.Quarterly) > 0 {
		p.section("Detailed Financial Data")
		p.subsection("Annual Reports")
		for _, tv := range d.Annual {
			p.statement(tv)
		}
		p.subsection("Quarterly Reports")
		for _, tv := range d.Quarterly {
			p.statement(tv)
		}
	}
	if d.Actions != nil {
		p.section("Dividends and Stock Splits")
		p.statement(*d.Actions)
	}
	return p.err
}

// printer accumulates the first write error so sections can be emitted
// unconditionally.
type printer struct {
	w    io.Writer
	opts Options
	err  error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) paint(c text.Colors, s string) string {
	if !p.opts.Color {
		return s
	}
	return c.Sprint(s)
}

func (p *printer) title(s string) {
	p.printf("%s\n", p.paint(text.Colors{text.Bold}, strings.ToUpper(s)))
}

func (p *printer) section(s string) {
	p.printf("\n%s\n", p.paint(text.Colors{text.Bold, text.FgCyan}, s))
}

func (p *printer) subsection(s string) {
	p.printf("\n%s\n", p.paint(text.Colors{text.Bold}, s))
}

func (p *printer) errorLine(s string) {
	p.printf("%s\n", p.paint(text.Colors{text.FgRed}, s))
}

func (p *printer) warnLine(s string) {
	p.printf("%s\n", p.paint(text.Colors{text.FgYellow}, s))
}

func (p *printer) writer() table.Writer {
	tw := table.NewWriter()
	p.style(tw)
	return tw
}

func (p *printer) style(tw table.Writer) {
	if p.opts.Color {
		tw.SetStyle(table.StyleColoredDark)
	} else {
		tw.SetStyle(table.StyleLight)
	}
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false
	if p.opts.Width > 0 {
		tw.SetAllowedRowLength(p.opts.Width)
	}
}

func (p *printer) render(tw table.Writer) {
	p.printf("%s\n", tw.Render())
}

func (p *printer) price(spec *chart.Spec) {
	candles, ok := spec.Panel(0, 0)
	if !ok || len(candles.Traces) == 0 || len(candles.Traces[0].X) == 0 {
		p.warnLine("No price history available.")
		return
	}
	c := candles.Traces[0]
	var volume []float64
	if vp, ok := spec.Panel(1, 0); ok && len(vp.Traces) > 0 {
		volume = vp.Traces[0].Y
	}

	n := len(c.X)
	first, last := c.Close[0], c.Close[n-1]
	change := ""
	if first != 0 {
		pct := (last - first) / first * 100
		color := text.Colors{text.FgGreen}
		if pct < 0 {
			color = text.Colors{text.FgRed}
		}
		change = p.paint(color, fmt.Sprintf(" (%+.2f%%)", pct))
	}
	p.printf("%s to %s · %d sessions · last close %s%s\n", c.X[0], c.X[n-1], n, format.Cell(&last), change)

	tw := p.writer()
	tw.AppendHeader(table.Row{"Date", "Open", "High", "Low", "Close", "Volume"})
	for i := max(0, n-RecentBars); i < n; i++ {
		vol := ""
		if i < len(volume) {
			vol = format.Cell(&volume[i])
		}
		tw.AppendRow(table.Row{c.X[i], format.Cell(&c.Open[i]), format.Cell(&c.High[i]), format.Cell(&c.Low[i]), format.Cell(&c.Close[i]), vol})
	}
	tw.SetColumnConfigs(rightAligned(2, 6))
	p.render(tw)
}

func (p *printer) company(c format.Company) {
	tw := p.writer()
	for i := 0; i < max(len(c.Left), len(c.Right)); i++ {
		row := make(table.Row, 4)
		if i < len(c.Left) {
			row[0], row[1] = c.Left[i].Label, c.Left[i].Value
		}
		if i < len(c.Right) {
			row[2], row[3] = c.Right[i].Label, c.Right[i].Value
		}
		tw.AppendRow(row)
	}
	p.render(tw)

	if strings.TrimSpace(c.Summary) == "" {
		return
	}
	p.subsection("Business Summary")
	p.printf("%s\n", p.summary(c.Summary))
}

// summary renders plain text through glamour with markup characters kept
// literal; on failure the text is printed as is.
func (p *printer) summary(plain string) string {
	md := format.LiteralMarkdown(plain)
	style := styles.NoTTYStyle
	if p.opts.Color {
		style = styles.DarkStyle
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if p.opts.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(p.opts.Width))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return plain
	}
	out, err := tr.Render(md)
	if err != nil {
		return plain
	}
	return strings.TrimRight(out, "\n")
}

func (p *printer) metrics(cols [][]format.MetricValue) {
	rows := 0
	for _, col := range cols {
		rows = max(rows, len(col))
	}
	tw := p.writer()
	for r := 0; r < rows; r++ {
		row := make(table.Row, 0, 2*len(cols))
		for _, col := range cols {
			if r < len(col) {
				row = append(row, col[r].Label, p.paint(text.Colors{text.Bold}, col[r].Value))
			} else {
				row = append(row, "", "")
			}
		}
		tw.AppendRow(row)
	}
	p.render(tw)
}

func (p *printer) financials(spec *chart.Spec) {
	tw := p.writer()
	tw.AppendHeader(table.Row{"Panel", "Latest", "Value", "Points"})
	for _, panel := range spec.Panels {
		if len(panel.Traces) == 0 || len(panel.Traces[0].X) == 0 {
			tw.AppendRow(table.Row{panel.Title, "", format.NotAvailable, 0})
			continue
		}
		t := panel.Traces[0]
		n := len(t.X)
		tw.AppendRow(table.Row{panel.Title, t.X[n-1], format.Cell(&t.Y[n-1]), n})
	}
	tw.SetColumnConfigs(rightAligned(3, 4))
	p.render(tw)
}

func (p *printer) statement(tv format.TableView) {
	p.printf("\n%s\n", tv.Title)
	if tv.Error != "" {
		p.errorLine(tv.Error)
	}
	if !tv.Available {
		p.warnLine(tv.Warning)
		return
	}
	out, err := format.Guard(func() string { return renderStatement(tv, p.style) })
	if err != nil {
		logging.Get().Error().Err(err).Str("statement", tv.Title).Msg("Statement render failed")
		failed := tv.Failed(err)
		p.errorLine(failed.Error)
		p.warnLine(failed.Warning)
		return
	}
	p.printf("%s\n", out)
}

// renderStatement draws an available statement as a styled terminal table.
var renderStatement = func(tv format.TableView, style func(table.Writer)) string {
	tw := tv.Writer()
	style(tw)
	return tw.Render()
}

// rightAligned returns configs aligning columns from..to (1-based) right.
func rightAligned(from, to int) []table.ColumnConfig {
	cfgs := make([]table.ColumnConfig, 0, to-from+1)
	for n := from; n <= to; n++ {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignHeader: text.AlignRight})
	}
	return cfgs
}
