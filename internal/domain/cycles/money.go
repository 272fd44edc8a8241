package cycles

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the precision of every stored currency value.
const MoneyPlaces = 2

const (
	maxMoneyText     = 32
	minMoneyExponent = -8
	maxMoneyExponent = 12
)

// MaxMoney is the largest value a numeric(14,2) column holds.
var MaxMoney = decimal.RequireFromString("999999999999.99")

var ErrInvalidMoney = errors.New("invalid currency value")

// ParseMoney parses currency text. Overlong input and exponents outside the
// storable range are rejected before any arithmetic touches the value.
func ParseMoney(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxMoneyText {
		return decimal.Zero, ErrInvalidMoney
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidMoney
	}
	if !exponentInRange(value) {
		return decimal.Zero, ErrInvalidMoney
	}
	return value, nil
}

// ValidMoney reports whether value is positive, has at most two decimals and
// fits MaxMoney.
func ValidMoney(value decimal.Decimal) bool {
	if !value.IsPositive() || !exponentInRange(value) {
		return false
	}
	if !value.Equal(value.Round(MoneyPlaces)) {
		return false
	}
	return value.LessThanOrEqual(MaxMoney)
}

func exponentInRange(value decimal.Decimal) bool {
	exp := value.Exponent()
	return exp >= minMoneyExponent && exp <= maxMoneyExponent
}
