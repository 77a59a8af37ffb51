package market

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/PaesslerAG/jsonpath"
	yfgo "github.com/komsit37/yf-go"

	"github.com/komsit37/stockdash/pkg/stockdash/types"
)

// infoModules make up the flat company metadata record. On key collisions the
// earlier module wins.
var infoModules = []yfgo.QuoteSummaryModule{
	yfgo.ModulePrice,
	yfgo.ModuleSummaryDetail,
	yfgo.ModuleAssetProfile,
	yfgo.ModuleDefaultKeyStatistics,
	yfgo.ModuleFinancialData,
}

type statementSource struct {
	kind   types.StatementKind
	module yfgo.QuoteSummaryModule
	path   string
}

var statementSources = []statementSource{
	{types.IncomeStatement, yfgo.ModuleIncomeStatementHistory, "$.incomeStatementHistory.incomeStatementHistory"},
	{types.BalanceSheet, yfgo.ModuleBalanceSheetHistory, "$.balanceSheetHistory.balanceSheetStatements"},
	{types.CashFlow, yfgo.ModuleCashflowStatementHistory, "$.cashflowStatementHistory.cashflowStatements"},
	{types.QuarterlyIncomeStatement, yfgo.ModuleIncomeStatementHistoryQtr, "$.incomeStatementHistoryQuarterly.incomeStatementHistory"},
	{types.QuarterlyBalanceSheet, yfgo.ModuleBalanceSheetHistoryQuarterly, "$.balanceSheetHistoryQuarterly.balanceSheetStatements"},
	{types.QuarterlyCashFlow, yfgo.ModuleCashflowStatementHistoryQtr, "$.cashflowStatementHistoryQuarterly.cashflowStatements"},
}

// Statements fetches company metadata and all statements for ticker. Only a
// metadata failure fails the bundle; a failed statement becomes an empty table.
func (g *YFGateway) Statements(ctx context.Context, ticker string) (*types.StatementBundle, error) {
	start := time.Now()
	raw, err := g.quoteSummary(ctx, ticker, infoModules)
	if err != nil {
		return nil, fmt.Errorf("company info %s: %w", ticker, err)
	}
	b := &types.StatementBundle{
		Ticker:     ticker,
		Statements: make(map[types.StatementKind]types.Table, len(statementSources)+3),
		Info:       flattenInfo(raw, infoModules),
	}

	for _, src := range statementSources {
		t, err := g.statement(ctx, ticker, src)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("statements %s: %w", ticker, ctx.Err())
			}
			g.logger.Warn().
				Str("ticker", ticker).
				Str("statement", string(src.kind)).
				Err(err).
				Msg("Statement unavailable")
		}
		b.Statements[src.kind] = t
	}
	b.Statements[types.Financials] = b.Statements[types.IncomeStatement]
	b.Statements[types.QuarterlyFinancials] = b.Statements[types.QuarterlyIncomeStatement]

	actions, err := g.actions(ctx, ticker)
	if err != nil {
		g.logger.Warn().Str("ticker", ticker).Err(err).Msg("Corporate actions unavailable")
	}
	b.Statements[types.Actions] = actions

	g.logger.Debug().
		Str("ticker", ticker).
		Int("info_fields", len(b.Info)).
		Dur("elapsed", time.Since(start)).
		Msg("Statements fetched")
	return b, nil
}

func (g *YFGateway) statement(ctx context.Context, ticker string, src statementSource) (types.Table, error) {
	raw, err := g.quoteSummary(ctx, ticker, []yfgo.QuoteSummaryModule{src.module})
	if err != nil {
		return types.Table{}, err
	}
	found, err := jsonpath.Get(src.path, raw)
	if err != nil {
		return types.Table{}, fmt.Errorf("%s: %w", src.path, err)
	}
	entries, ok := found.([]any)
	if !ok {
		return types.Table{}, fmt.Errorf("%s: unexpected %T", src.path, found)
	}
	return tableFromEntries(entries), nil
}

// actions builds the dividends and splits table, one row per event date.
func (g *YFGateway) actions(ctx context.Context, ticker string) (types.Table, error) {
	res, err := g.chart(ctx, ticker, yfgo.ChartOptions{Range: "max", Interval: "1mo", Events: "div|split"})
	if err != nil {
		return types.Table{}, fmt.Errorf("actions %s: %w", ticker, err)
	}
	return actionsTable(res), nil
}

func actionsTable(res yfgo.ChartResult) types.Table {
	type event struct{ div, split float64 }
	loc := location(res.Meta.ExchangeTimezoneName)
	byDate := map[string]*event{}
	get := func(ts int64) *event {
		d := time.Unix(ts, 0).In(loc).Format(time.DateOnly)
		e, ok := byDate[d]
		if !ok {
			e = &event{}
			byDate[d] = e
		}
		return e
	}
	for _, d := range res.Events.Dividends {
		if d.Amount != nil {
			get(d.Date).div += *d.Amount
		}
	}
	for _, s := range res.Events.Splits {
		if s.Numerator != nil && s.Denominator != nil && *s.Denominator != 0 {
			get(s.Date).split = float64(*s.Numerator) / float64(*s.Denominator)
		}
	}
	if len(byDate) == 0 {
		return types.Table{}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	t := types.Table{Rows: dates, Columns: []string{"Dividends", "Stock Splits"}}
	for _, d := range dates {
		e := byDate[d]
		div, split := e.div, e.split
		t.Cells = append(t.Cells, []*float64{&div, &split})
	}
	return t
}

// flattenInfo merges the modules of a quoteSummary result into one record.
// {raw, fmt} leaves become their raw value; nested lists and objects are dropped.
func flattenInfo(raw map[string]any, modules []yfgo.QuoteSummaryModule) types.Info {
	info := types.Info{}
	for _, m := range modules {
		fields, ok := raw[m.String()].(map[string]any)
		if !ok {
			continue
		}
		for k, v := range fields {
			if _, taken := info[k]; taken {
				continue
			}
			if leaf, ok := leafValue(v); ok {
				info[k] = leaf
			}
		}
	}
	return info
}

func leafValue(v any) (any, bool) {
	switch t := v.(type) {
	case string, bool, float64, json.Number:
		return t, true
	case map[string]any:
		r, ok := t["raw"]
		if !ok || r == nil {
			return nil, false
		}
		return leafValue(r)
	default:
		return nil, false
	}
}

// tableFromEntries turns statement entries into a table: one column per
// endDate (most recent first) and one row per line item (sorted by label).
func tableFromEntries(entries []any) types.Table {
	type column struct {
		date   string
		fields map[string]any
	}
	var cols []column
	keys := map[string]string{}
	for _, e := range entries {
		fields, ok := e.(map[string]any)
		if !ok {
			continue
		}
		date, ok := endDate(fields["endDate"])
		if !ok {
			continue
		}
		cols = append(cols, column{date: date, fields: fields})
		for k := range fields {
			if k == "endDate" || k == "maxAge" {
				continue
			}
			keys[k] = Label(k)
		}
	}
	if len(cols) == 0 || len(keys) == 0 {
		return types.Table{}
	}
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].date > cols[j].date })

	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if keys[names[i]] != keys[names[j]] {
			return keys[names[i]] < keys[names[j]]
		}
		return names[i] < names[j]
	})

	t := types.Table{Columns: make([]string, len(cols))}
	for i, c := range cols {
		t.Columns[i] = c.date
	}
	for _, k := range names {
		row := make([]*float64, len(cols))
		for i, c := range cols {
			row[i] = number(c.fields[k])
		}
		t.Rows = append(t.Rows, keys[k])
		t.Cells = append(t.Cells, row)
	}
	return t
}

func endDate(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	if s, ok := m["fmt"].(string); ok {
		if d, err := time.Parse(time.DateOnly, s); err == nil {
			return d.Format(time.DateOnly), true
		}
	}
	if f := number(m); f != nil {
		return time.Unix(int64(*f), 0).UTC().Format(time.DateOnly), true
	}
	return "", false
}

// number extracts a float from a number or a {raw} object.
func number(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		x, err := t.Float64()
		if err != nil {
			return nil
		}
		f = x
	case map[string]any:
		return number(t["raw"])
	default:
		return nil
	}
	return &f
}

// Label turns a camelCase line-item key into title words:
// totalRevenue -> Total Revenue, netIncomeFromContinuingOps -> Net Income From Continuing Ops.
func Label(key string) string {
	rs := []rune(key)
	var b strings.Builder
	for i, r := range rs {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		prev := rs[i-1]
		boundary := unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev) ||
			(unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1])))
		if boundary {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
