package server

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/komsit37/stockdash/pkg/stockdash/chart"
	"github.com/komsit37/stockdash/pkg/stockdash/format"
	"github.com/komsit37/stockdash/pkg/stockdash/view"
)

//go:embed templates/*.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/dashboard.html"))

// page is the template data for one dashboard request.
type page struct {
	*view.Dashboard

	Tickers   []view.Option
	Periods   []view.Option
	ScriptURL string

	PriceChartHTML     template.HTML
	FinancialChartHTML template.HTML
	SummaryHTML        template.HTML
	AnnualHTML         []statementHTML
	QuarterlyHTML      []statementHTML
	ActionsHTML        *statementHTML
}

type statementHTML struct {
	Title   string
	Warning string
	Error   string
	Table   template.HTML
}

func (s *Server) newPage(d *view.Dashboard, universe []string) page {
	p := page{
		Dashboard: d,
		Tickers:   view.TickerOptions(universe, d.State.Ticker),
		Periods:   view.PeriodOptions(d.State.Period),
		ScriptURL: chart.ScriptURL,
	}
	p.PriceChartHTML = s.chartHTML(d.PriceChart)
	p.FinancialChartHTML = s.chartHTML(d.FinancialChart)
	if d.Company != nil {
		p.SummaryHTML = s.summaryHTML(d.Company.Summary)
	}
	for _, tv := range d.Annual {
		p.AnnualHTML = append(p.AnnualHTML, s.statementOf(d.State.Ticker, tv, format.TableView.HTML))
	}
	for _, tv := range d.Quarterly {
		p.QuarterlyHTML = append(p.QuarterlyHTML, s.statementOf(d.State.Ticker, tv, format.TableView.HTML))
	}
	if d.Actions != nil {
		a := s.statementOf(d.State.Ticker, *d.Actions, format.TableView.HTML)
		p.ActionsHTML = &a
	}
	return p
}

// statementOf renders the table markup only for available views. go-pretty
// escapes cell text, so the markup is trusted. A render failure replaces the
// table with its failure placeholder.
func (s *Server) statementOf(ticker string, tv format.TableView, render func(format.TableView) string) statementHTML {
	if tv.Available {
		out, err := format.Guard(func() string { return render(tv) })
		if err == nil {
			return statementHTML{Title: tv.Title, Warning: tv.Warning, Error: tv.Error, Table: template.HTML(out)}
		}
		s.logger.Error().
			Err(err).
			Str("ticker", ticker).
			Str("statement", tv.Title).
			Msg("Statement render failed")
		tv = tv.Failed(err)
	}
	return statementHTML{Title: tv.Title, Warning: tv.Warning, Error: tv.Error}
}

func (s *Server) chartHTML(spec *chart.Spec) template.HTML {
	if spec == nil {
		return ""
	}
	out, err := chart.RenderHTML(spec)
	if err != nil {
		s.logger.Error().Err(err).Str("chart", spec.Title).Msg("Chart render failed")
		return ""
	}
	return out
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
}

// summaryHTML renders the plain-text business summary as paragraphs. The
// text is escaped so markup characters in it stay literal.
func (s *Server) summaryHTML(summary string) template.HTML {
	if summary == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(format.LiteralMarkdown(summary)), &buf); err != nil {
		s.logger.Warn().Err(err).Msg("Summary markdown conversion failed")
		return template.HTML("<p>" + template.HTMLEscapeString(summary) + "</p>")
	}
	return template.HTML(buf.String())
}
