package format

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// NotAvailable is rendered for every absent value.
const NotAvailable = "N/A"

// Unit selects how a Value is rendered.
type Unit int

const (
	Currency  Unit = iota // currency, two decimals
	Aggregate             // currency, no decimals (market cap)
	Ratio                 // two decimals (P/E, beta)
	Percent               // fraction rendered x100 with a trailing %
	Count                 // thousands-separated integer
)

func (u Unit) String() string {
	switch u {
	case Currency:
		return "currency"
	case Aggregate:
		return "aggregate"
	case Ratio:
		return "ratio"
	case Percent:
		return "percent"
	case Count:
		return "count"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// Value is either Present(v) or Absent. The zero Value is Absent.
type Value struct {
	v       float64
	present bool
}

// Absent is the missing value.
var Absent = Value{}

// Present wraps v. NaN and infinities are treated as absent.
func Present(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Absent
	}
	return Value{v: v, present: true}
}

// Get returns the wrapped number and whether it is present.
func (x Value) Get() (float64, bool) { return x.v, x.present }

func (x Value) IsPresent() bool { return x.present }

// ValueOf converts loosely typed upstream data. Anything that is not a finite
// number (or a numeric string, or a {"raw": n} object) is Absent.
func ValueOf(in any) Value {
	switch t := in.(type) {
	case nil:
		return Absent
	case Value:
		return t
	case float64:
		return Present(t)
	case float32:
		return Present(float64(t))
	case int:
		return Present(float64(t))
	case int32:
		return Present(float64(t))
	case int64:
		return Present(float64(t))
	case uint64:
		return Present(float64(t))
	case *float64:
		if t == nil {
			return Absent
		}
		return Present(*t)
	case *int64:
		if t == nil {
			return Absent
		}
		return Present(float64(*t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Absent
		}
		return Present(f)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", ""))
		if s == "" {
			return Absent
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Absent
		}
		return Present(f)
	case map[string]any:
		return ValueOf(t["raw"])
	default:
		return Absent
	}
}

// Format renders x in unit u. currency is an ISO code used for the symbol of
// currency units ("" means USD). It never panics on any input.
func Format(x Value, u Unit, currency string) string {
	v, ok := x.Get()
	if !ok {
		return NotAvailable
	}
	switch u {
	case Currency:
		return formatMoney(v, 2, currency)
	case Aggregate:
		return formatMoney(v, 0, currency)
	case Ratio:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case Percent:
		return strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
	case Count:
		return humanize.Commaf(math.Round(v))
	default:
		return NotAvailable
	}
}

// FormatRange renders "low - high" in currency, only when both bounds are present.
func FormatRange(low, high Value, currency string) string {
	if !low.IsPresent() || !high.IsPresent() {
		return NotAvailable
	}
	return Format(low, Currency, currency) + " - " + Format(high, Currency, currency)
}

// Text renders a string field, or NotAvailable when blank or not a string.
func Text(in any) string {
	switch t := in.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return s
		}
	case json.Number:
		return t.String()
	case float64:
		if !math.IsNaN(t) && !math.IsInf(t, 0) {
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return NotAvailable
}
