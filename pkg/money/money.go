package money

import (
	"strconv"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Value is a monetary amount as the T-Bank Invest API ships it: an integer
// units part carried as a string plus a fractional part scaled to one
// billionth, optionally tagged with a currency code.
type Value struct {
	Currency string `json:"currency,omitempty"`
	Units    string `json:"units"`
	Nano     int32  `json:"nano"`
}

// Quotation is the same decimal shape without a currency tag, used for
// share counts and yield values.
type Quotation struct {
	Units string `json:"units"`
	Nano  int32  `json:"nano"`
}

// compose converts a units/nano pair to a float64. The two terms are summed
// directly: some upstream feeds emit a nano component whose sign disagrees
// with units, and the sum is the correct value either way. Unparseable
// units contribute zero — conversion never fails.
func compose(units string, nano int32) float64 {
	u, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		u = 0
	}
	return float64(u) + float64(nano)/1e9
}

func composeDecimal(units string, nano int32) decimal.Decimal {
	u, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		u = 0
	}
	return decimal.NewFromInt(u).Add(decimal.New(int64(nano), -9))
}

// Float converts the value to a float64. A nil value is exactly 0.
func (v *Value) Float() float64 {
	if v == nil {
		return 0
	}
	return compose(v.Units, v.Nano)
}

// Decimal converts the value to an exact decimal. A nil value is zero.
func (v *Value) Decimal() decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return composeDecimal(v.Units, v.Nano)
}

// Float converts the quotation to a float64. A nil quotation is exactly 0.
func (q *Quotation) Float() float64 {
	if q == nil {
		return 0
	}
	return compose(q.Units, q.Nano)
}

// Decimal converts the quotation to an exact decimal. A nil quotation is zero.
func (q *Quotation) Decimal() decimal.Decimal {
	if q == nil {
		return decimal.Zero
	}
	return composeDecimal(q.Units, q.Nano)
}

// Format renders an amount for display in the given currency, rounded to
// the currency's fraction (at most 2 digits for the currencies we handle).
// Engine math never rounds; this is display-time only.
func Format(amount float64, currency string) string {
	if currency == "" {
		currency = "RUB"
	}
	cur := gomoney.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		cur = gomoney.GetCurrency("RUB")
	}

	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return gomoney.New(minor, cur.Code).Display()
}

// FormatValue renders a raw API value for display in its own currency.
func FormatValue(v *Value) string {
	if v == nil {
		return Format(0, "")
	}
	return Format(v.Float(), v.Currency)
}
