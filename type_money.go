package nepfolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the only currency this ledger accounts in. NEPSE trades,
// fees and taxes are all denominated in Nepalese rupees.
const Currency = money.NPR

// Money represents a rupee amount. It wraps an exact decimal so that fee
// bracket boundaries and tax thresholds compare exactly.
type Money struct {
	value decimal.Decimal
}

// M is a convenient factory for Money.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// String formats the amount with the NPR currency formatter.
func (m Money) String() string {
	cur := money.GetCurrency(Currency)
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// SignedString is like String but zero renders as "-" and gains carry a "+".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }

func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value)} }

// Mul scales the amount by a dimensionless factor (a quantity of shares, or a rate).
func (m Money) Mul(n Quantity) Money { return Money{value: m.value.Mul(n.value)} }

// Div returns the per-unit amount, e.g. a cost basis divided by a share count.
func (m Money) Div(n Quantity) Money { return Money{value: m.value.Div(n.value)} }

// Ratio returns the dimensionless ratio m/n.
func (m Money) Ratio(n Money) Quantity { return Quantity{value: m.value.Div(n.value)} }

// Decimal exposes the underlying exact value for persistence.
func (m Money) Decimal() decimal.Decimal { return m.value }

// InexactFloat64 returns the nearest float64, for display-side math only.
func (m Money) InexactFloat64() float64 { return m.value.InexactFloat64() }

// MarshalJSON implements the json.Marshaler interface.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.value.UnmarshalJSON(data)
}
