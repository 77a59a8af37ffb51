package universe

import (
	"context"
	"strings"
)

// Source loads an ordered list of ticker symbols.
type Source interface {
	Load(ctx context.Context) ([]string, error)
}

// Fallback is served whenever the configured source cannot be loaded.
var Fallback = []string{
	"AAPL", "MSFT", "AMZN", "GOOGL", "GOOG", "TSLA", "META", "NVDA", "BRK-B", "UNH",
	"JNJ", "JPM", "V", "PG", "MA", "HD", "CVX", "ABBV", "BAC", "PFE",
	"KO", "AVGO", "PEP", "TMO", "COST", "WMT", "DIS", "ABT", "MRK", "VZ",
	"ADBE", "NFLX", "NKE", "CRM", "XOM", "ACN", "DHR", "BMY", "LIN", "TXN",
	"ORCL", "WFC", "NEE", "QCOM", "PM", "RTX", "UPS", "SBUX", "T", "LOW",
}

// StaticSource serves a fixed list.
type StaticSource []string

func (s StaticSource) Load(context.Context) ([]string, error) {
	return append([]string(nil), s...), nil
}

// Normalize upper-cases and trims a symbol and maps class-share dots to the
// provider's dash notation (BRK.B -> BRK-B).
func Normalize(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	return strings.ReplaceAll(s, ".", "-")
}

// dedupe normalizes symbols, dropping blanks and repeats while keeping order.
func dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = Normalize(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
