// README: Common money value object used across modules.
package types

import "github.com/shopspring/decimal"

// Money is a display amount. Arithmetic stays in float64 inside the pricing
// engine; Money only rounds at presentation time.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

func CAD(v float64) Money {
	return Money{Amount: decimal.NewFromFloat(v), Currency: "CAD"}
}

// String renders the amount rounded half away from zero to cents, e.g. "$12.30".
func (m Money) String() string {
	if m.Amount.IsNegative() {
		return "-$" + m.Amount.Neg().StringFixed(2)
	}
	return "$" + m.Amount.StringFixed(2)
}

// Rounded returns the amount rounded to cents as a float.
func (m Money) Rounded() float64 {
	f, _ := m.Amount.Round(2).Float64()
	return f
}
