package format

import (
	"github.com/komsit37/stockdash/pkg/stockdash/types"
)

// Resolver turns company metadata into a display string for one metric.
type Resolver func(info types.Info) string

// Metric is one entry of the key-metrics strip.
type Metric struct {
	Key     string
	Label   string
	Resolve Resolver
}

// MetricValue is a resolved metric ready for display.
type MetricValue struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Registry maps metric keys to their definitions.
var Registry = map[string]Metric{}

// Layout is the fixed four-column arrangement of the key-metrics strip.
var Layout = [][]string{
	{"market_cap", "pe"},
	{"price", "dividend_yield"},
	{"day_range", "book_value"},
	{"volume", "beta"},
}

func register(key, label string, r Resolver) {
	Registry[key] = Metric{Key: key, Label: label, Resolve: r}
}

// scalar resolves a single metadata field in unit u, trying keys in order.
func scalar(u Unit, keys ...string) Resolver {
	return func(info types.Info) string {
		return Format(firstPresent(info, keys...), u, info.String("currency"))
	}
}

func firstPresent(info types.Info, keys ...string) Value {
	for _, k := range keys {
		if v := ValueOf(info[k]); v.IsPresent() {
			return v
		}
	}
	return Absent
}

func init() {
	register("market_cap", "Market Cap", scalar(Aggregate, "marketCap"))
	register("pe", "P/E Ratio", scalar(Ratio, "trailingPE"))
	register("price", "Current Price", scalar(Currency, "currentPrice", "regularMarketPrice"))
	register("dividend_yield", "Dividend Yield", scalar(Percent, "dividendYield"))
	register("day_range", "Day Range", func(info types.Info) string {
		return FormatRange(ValueOf(info["dayLow"]), ValueOf(info["dayHigh"]), info.String("currency"))
	})
	register("book_value", "Book Value", scalar(Currency, "bookValue"))
	register("volume", "Volume", scalar(Count, "volume"))
	register("beta", "Beta", scalar(Ratio, "beta"))
}

// Resolve renders one metric. An unknown key or a failing resolver yields
// NotAvailable for that metric only.
func Resolve(key string, info types.Info) (out string) {
	m, ok := Registry[key]
	if !ok {
		return NotAvailable
	}
	defer func() {
		if r := recover(); r != nil {
			out = NotAvailable
		}
	}()
	return m.Resolve(info)
}

// Strip resolves the metrics of layout column by column.
func Strip(info types.Info, layout [][]string) [][]MetricValue {
	out := make([][]MetricValue, 0, len(layout))
	for _, col := range layout {
		vals := make([]MetricValue, 0, len(col))
		for _, key := range col {
			label := key
			if m, ok := Registry[key]; ok {
				label = m.Label
			}
			vals = append(vals, MetricValue{Key: key, Label: label, Value: Resolve(key, info)})
		}
		out = append(out, vals)
	}
	return out
}
