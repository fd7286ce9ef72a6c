package types

import "github.com/shopspring/decimal"

const moneyScale = 2

// Money is a currency amount. It serializes as a JSON number fixed to two
// decimals, e.g. 120.50.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(moneyScale)), nil
}
