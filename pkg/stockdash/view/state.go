package view

import (
	"net/url"
	"strings"

	"github.com/komsit37/stockdash/pkg/stockdash/types"
)

// DefaultTicker is selected when the requested ticker is not in the universe.
const DefaultTicker = "AAPL"

// State is the user selection, mirrored in the URL query.
type State struct {
	Ticker string       `json:"ticker"`
	Period types.Period `json:"period"`
}

func DefaultState() State {
	return State{Ticker: DefaultTicker, Period: types.DefaultPeriod}
}

// Decode reads the selection from query values. An unknown ticker falls back
// to AAPL, or to the first universe member when AAPL is not listed; an
// unknown period falls back to 1y. The returned index locates the ticker in
// universe.
func Decode(values url.Values, universe []string) (State, int) {
	return decode(values, universe, DefaultTicker)
}

func decode(values url.Values, universe []string, def string) (State, int) {
	st := State{Period: types.DefaultPeriod}
	if p, ok := types.ParsePeriod(strings.TrimSpace(values.Get("period"))); ok {
		st.Period = p
	}

	ticker := strings.ToUpper(strings.TrimSpace(values.Get("ticker")))
	if i := indexOf(universe, ticker); i >= 0 {
		st.Ticker = ticker
		return st, i
	}
	if def == "" {
		def = DefaultTicker
	}
	if i := indexOf(universe, def); i >= 0 {
		st.Ticker = def
		return st, i
	}
	if len(universe) > 0 {
		st.Ticker = universe[0]
		return st, 0
	}
	st.Ticker = def
	return st, 0
}

// Encode returns the query values for s.
func (s State) Encode() url.Values {
	return url.Values{
		"ticker": {s.Ticker},
		"period": {s.Period.Code},
	}
}

// Query returns the encoded query string for s.
func (s State) Query() string { return s.Encode().Encode() }

func indexOf(xs []string, x string) int {
	if x == "" {
		return -1
	}
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}

// Option is one entry of a selector.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// PeriodOptions lists the analysis periods with selected marked.
func PeriodOptions(selected types.Period) []Option {
	out := make([]Option, len(types.Periods))
	for i, p := range types.Periods {
		out[i] = Option{Value: p.Code, Label: p.Label, Selected: p.Code == selected.Code}
	}
	return out
}

// TickerOptions lists the universe with selected marked.
func TickerOptions(universe []string, selected string) []Option {
	out := make([]Option, len(universe))
	for i, t := range universe {
		out[i] = Option{Value: t, Label: t, Selected: t == selected}
	}
	return out
}
