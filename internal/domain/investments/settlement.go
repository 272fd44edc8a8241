package investments

import (
	cyclesdomain "livestock-invest-go/internal/domain/cycles"

	"github.com/shopspring/decimal"
)

const ratioPlaces = 6

var hundred = decimal.NewFromInt(100)

// ComputePayout splits finalSalePrice pro rata by capital contribution:
//
//	shareRatio = amount / goal
//	finalValue = finalSalePrice * shareRatio
//	profit     = finalValue - amount
//	roi        = profit / amount * 100
//
// Losses are kept as negative profit.
func ComputePayout(investment Investment, goal, finalSalePrice decimal.Decimal) (Payout, error) {
	if !goal.IsPositive() {
		return Payout{}, cyclesdomain.ErrInvalidFundingGoal
	}
	if !investment.Amount.IsPositive() {
		return Payout{}, ErrInvalidAmount
	}

	amount := investment.Amount
	finalValue := finalSalePrice.Mul(amount).Div(goal).Round(currencyPlaces)
	profit := finalValue.Sub(amount)

	return Payout{
		InvestmentID: investment.ID,
		InvestorID:   investment.InvestorID,
		Amount:       amount,
		ShareRatio:   amount.Div(goal).Round(ratioPlaces),
		FinalValue:   finalValue,
		Profit:       profit,
		ROI:          profit.Div(amount).Mul(hundred).Round(currencyPlaces),
	}, nil
}

// ExpectedProfit is the display preview of an investment's profit at a
// projected sale price. Unlike settlement it never shows a loss.
func ExpectedProfit(amount, goal, projectedSalePrice decimal.Decimal) decimal.Decimal {
	if !goal.IsPositive() || !amount.IsPositive() {
		return decimal.Zero
	}
	profit := projectedSalePrice.Mul(amount).Div(goal).Round(currencyPlaces).Sub(amount)
	if profit.IsNegative() {
		return decimal.Zero
	}
	return profit
}

// Settle builds the settlement report of a completed cycle.
func Settle(cycle cyclesdomain.Cycle, investments []Investment) (*SettlementReport, error) {
	if cycle.Status != cyclesdomain.StatusCompleted || !cycle.FinalSalePrice.Valid {
		return nil, ErrCycleNotCompleted
	}
	price := cycle.FinalSalePrice.Decimal

	report := SettlementReport{
		Cycle:         cycle,
		Payouts:       make([]Payout, 0, len(investments)),
		TotalInvested: decimal.Zero,
		TotalValue:    decimal.Zero,
		TotalProfit:   decimal.Zero,
	}

	investors := make(map[string]struct{}, len(investments))
	for _, investment := range investments {
		payout, err := ComputePayout(investment, cycle.FundingGoal, price)
		if err != nil {
			return nil, err
		}
		report.Payouts = append(report.Payouts, payout)
		report.TotalInvested = report.TotalInvested.Add(payout.Amount)
		report.TotalValue = report.TotalValue.Add(payout.FinalValue)
		report.TotalProfit = report.TotalProfit.Add(payout.Profit)
		investors[investment.InvestorID] = struct{}{}
	}
	report.InvestorsCount = len(investors)
	report.UnfundedShare = price.Sub(report.TotalValue)
	if report.UnfundedShare.IsNegative() {
		report.UnfundedShare = decimal.Zero
	}

	return &report, nil
}
