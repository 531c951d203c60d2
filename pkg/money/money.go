package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Numeric converts a float coming from outside the decimal world into a
// decimal, mapping NaN and ±Inf to zero.
func Numeric(value float64) decimal.Decimal {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(value)
}

// NumericPtr is Numeric for optional values; nil resolves to zero.
func NumericPtr(value *float64) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return Numeric(*value)
}

// Max0 clamps negative amounts to zero.
func Max0(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Ratio converts a percent (3 for 3%) to a ratio (0.03).
func Ratio(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// Percent converts a ratio (0.03) to a percent (3).
func Percent(ratio decimal.Decimal) decimal.Decimal {
	return ratio.Mul(hundred)
}

// SafeDiv returns num/den, or zero when den is not positive.
func SafeDiv(num, den decimal.Decimal) decimal.Decimal {
	if !den.IsPositive() {
		return decimal.Zero
	}
	return num.Div(den)
}

// Decimals returns the display precision for a currency code.
func Decimals(currency string) int32 {
	switch strings.ToUpper(currency) {
	case "HUF", "":
		return 0
	default:
		return 2
	}
}

// Round rounds an amount to the display precision of the currency.
func Round(d decimal.Decimal, currency string) decimal.Decimal {
	return d.Round(Decimals(currency))
}

// Format renders an amount with thousands grouping and the currency symbol,
// e.g. "1 234 567 Ft" or "€1,234.50".
func Format(d decimal.Decimal, currency string) string {
	places := Decimals(currency)
	s := d.StringFixed(places)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	sep := ","
	if strings.EqualFold(currency, "HUF") || currency == "" {
		sep = " "
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
	out := b.String()
	if fracPart != "" {
		out += "." + fracPart
	}
	if negative {
		out = "-" + out
	}

	switch strings.ToUpper(currency) {
	case "EUR":
		return "€" + out
	case "USD":
		return "$" + out
	default:
		return out + " Ft"
	}
}
