package format

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// maxMinorUnits bounds amounts the int64 formatter can take.
const maxMinorUnits = 9e18

// Symbol returns the display symbol for an ISO currency code, "$" when unknown.
func Symbol(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "$"
	}
	if c := money.GetCurrency(code); c != nil && c.Grapheme != "" {
		return c.Grapheme
	}
	return "$"
}

// formatMoney renders v with a leading currency symbol, comma thousands and
// the given number of decimals.
func formatMoney(v float64, decimals int, code string) string {
	sym := Symbol(code)
	if math.Abs(v)*math.Pow10(decimals) >= maxMinorUnits {
		s := humanize.CommafWithDigits(math.Abs(v), decimals)
		if v < 0 {
			return "-" + sym + s
		}
		return sym + s
	}
	minor := decimal.NewFromFloat(v).Shift(int32(decimals)).Round(0).IntPart()
	return money.NewFormatter(decimals, ".", ",", sym, "$1").Format(minor)
}
