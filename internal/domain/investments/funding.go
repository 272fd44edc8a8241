package investments

import (
	"fmt"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"

	"github.com/shopspring/decimal"
)

const currencyPlaces = cyclesdomain.MoneyPlaces

// ParseAmount turns raw user input into a currency amount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := cyclesdomain.ParseMoney(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := validateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// ApplyFunding returns the cycle's funding after adding amount, refusing
// anything that would push it past the goal.
func ApplyFunding(goal, current, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := validateAmount(amount); err != nil {
		return current, err
	}

	remaining := goal.Sub(current)
	if !remaining.IsPositive() {
		return current, ErrCycleFullyFunded
	}
	if amount.GreaterThan(remaining) {
		return current, fmt.Errorf("%w: remaining %s", ErrExceedsRemaining, remaining.StringFixed(currencyPlaces))
	}
	return current.Add(amount), nil
}

func validateAmount(amount decimal.Decimal) error {
	if !cyclesdomain.ValidMoney(amount) {
		return ErrInvalidAmount
	}
	return nil
}
