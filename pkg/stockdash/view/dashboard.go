package view

import (
	"github.com/komsit37/stockdash/pkg/stockdash/chart"
	"github.com/komsit37/stockdash/pkg/stockdash/format"
	"github.com/komsit37/stockdash/pkg/stockdash/types"
)

// FetchError is shown instead of every financial section when the statement
// bundle cannot be fetched.
const FetchError = "Unable to fetch data for the selected ticker. Please try selecting a different stock."

// Dashboard is the result of one render pass.
type Dashboard struct {
	State State `json:"state"`
	Index int   `json:"index"`

	PriceChart *chart.Spec `json:"price_chart,omitempty"`
	PriceError string      `json:"price_error,omitempty"`

	// Error suppresses everything below when set.
	Error string `json:"error,omitempty"`

	Company        *format.Company        `json:"company,omitempty"`
	Metrics        [][]format.MetricValue `json:"metrics,omitempty"`
	FinancialChart *chart.Spec            `json:"financial_chart,omitempty"`
	Annual         []format.TableView     `json:"annual,omitempty"`
	Quarterly      []format.TableView     `json:"quarterly,omitempty"`
	Actions        *format.TableView      `json:"actions,omitempty"`
}

// MetricsTitle is the heading of the key-metrics strip.
func (d *Dashboard) MetricsTitle() string { return d.State.Ticker + " Key Metrics" }

// tableSpec names a statement section: title is its heading, name is used in
// error messages.
type tableSpec struct {
	kind    types.StatementKind
	title   string
	name    string
	warning string
}

var annualTables = []tableSpec{
	{types.Financials, "Annual Financial Statements", "Annual Financials", "No annual financial data available."},
	{types.IncomeStatement, "Annual Income Statement", "Annual Income Statement", "No Annual Income Statement data available."},
	{types.BalanceSheet, "Annual Balance Sheet", "Annual Balance Sheet", "No Annual Balance Sheet data available."},
	{types.CashFlow, "Annual Cash Flow", "Annual Cash Flow", "No Annual Cash Flow data available."},
}

var quarterlyTables = []tableSpec{
	{types.QuarterlyFinancials, "Quarterly Financial Statements", "Quarterly Financials", "No quarterly financial data available."},
	{types.QuarterlyIncomeStatement, "Quarterly Income Statement", "Quarterly Income Statement", "No Quarterly Income Statement data available."},
	{types.QuarterlyBalanceSheet, "Quarterly Balance Sheet", "Quarterly Balance Sheet", "No Quarterly Balance Sheet data available."},
	{types.QuarterlyCashFlow, "Quarterly Cash Flow", "Quarterly Cash Flow", "No Quarterly Cash Flow data available."},
}

var actionsTable = tableSpec{types.Actions, "Dividends and Stock Splits", "Dividends and Stock Splits", ""}
