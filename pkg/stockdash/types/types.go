package types

import (
	"strings"
	"time"
)

// Period is a lookback window for price history. Code is the provider range code.
type Period struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Periods lists the selectable lookback windows in display order.
var Periods = []Period{
	{Code: "1mo", Label: "1 Month"},
	{Code: "3mo", Label: "3 Months"},
	{Code: "6mo", Label: "6 Months"},
	{Code: "1y", Label: "1 Year"},
	{Code: "2y", Label: "2 Years"},
	{Code: "5y", Label: "5 Years"},
}

// DefaultPeriod is the 1 year window.
var DefaultPeriod = Periods[3]

// ParsePeriod looks up a period by its code.
func ParsePeriod(code string) (Period, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, p := range Periods {
		if p.Code == code {
			return p, true
		}
	}
	return Period{}, false
}

// PriceBar is one daily OHLCV record.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries is a ticker's bars in ascending date order. It may be empty.
type PriceSeries struct {
	Ticker   string     `json:"ticker"`
	Currency string     `json:"currency,omitempty"`
	Bars     []PriceBar `json:"bars"`
}

// Empty reports whether the series has no bars.
func (s PriceSeries) Empty() bool { return len(s.Bars) == 0 }

// Table is a statement keyed by line item (rows) with period columns.
// A nil cell is a missing value.
type Table struct {
	Rows    []string     `json:"rows"`
	Columns []string     `json:"columns"`
	Cells   [][]*float64 `json:"cells"`
}

// Empty reports whether the table has no rows or no columns.
func (t Table) Empty() bool { return len(t.Rows) == 0 || len(t.Columns) == 0 }

// Row returns the cells of the named line item.
func (t Table) Row(name string) ([]*float64, bool) {
	for i, r := range t.Rows {
		if r == name && i < len(t.Cells) {
			return t.Cells[i], true
		}
	}
	return nil, false
}

// StatementKind names one table in a StatementBundle.
type StatementKind string

const (
	Financials               StatementKind = "financials"
	IncomeStatement          StatementKind = "income_stmt"
	BalanceSheet             StatementKind = "balance_sheet"
	CashFlow                 StatementKind = "cash_flow"
	QuarterlyFinancials      StatementKind = "quarterly_financials"
	QuarterlyIncomeStatement StatementKind = "quarterly_income_stmt"
	QuarterlyBalanceSheet    StatementKind = "quarterly_balance_sheet"
	QuarterlyCashFlow        StatementKind = "quarterly_cash_flow"
	Actions                  StatementKind = "actions"
)

// Info is the flat company metadata record. Every key is optional.
type Info map[string]any

// String returns a trimmed string field or "".
func (i Info) String(key string) string {
	if v, ok := i[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// StatementBundle holds the statements and metadata of one ticker.
type StatementBundle struct {
	Ticker     string                  `json:"ticker"`
	Statements map[StatementKind]Table `json:"statements"`
	Info       Info                    `json:"info"`
}

// Statement returns the named table, or an empty one when absent.
func (b *StatementBundle) Statement(kind StatementKind) Table {
	if b == nil || b.Statements == nil {
		return Table{}
	}
	return b.Statements[kind]
}
