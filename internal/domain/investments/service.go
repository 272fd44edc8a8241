package investments

import (
	"context"
	"sort"
	"strings"
	"time"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	usersdomain "livestock-invest-go/internal/domain/users"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserDirectory interface {
	Get(ctx context.Context, userID string) (*usersdomain.User, error)
}

type Service struct {
	repo  Repository
	users UserDirectory
	now   func() time.Time
}

func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{
		repo:  repo,
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Invest records an investment and raises the cycle's funding in one
// transaction. Nothing is written when any check fails.
func (s *Service) Invest(ctx context.Context, input InvestInput) (*InvestResult, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	investor, err := s.users.Get(ctx, input.InvestorID)
	if err != nil {
		return nil, err
	}
	if investor.Role != usersdomain.RoleInvestor || !investor.IsActive() {
		return nil, ErrInvestorNotEligible
	}

	var result InvestResult
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		cycle, err := tx.GetCycleForUpdate(ctx, input.CycleID)
		if err != nil {
			return err
		}
		if cycle.Status != cyclesdomain.StatusActive {
			return cyclesdomain.ErrCycleNotActive
		}

		funding, err := ApplyFunding(cycle.FundingGoal, cycle.CurrentFunding, input.Amount)
		if err != nil {
			return err
		}

		now := s.now()
		investment := Investment{
			ID:         uuid.NewString(),
			InvestorID: investor.ID,
			CycleID:    cycle.ID,
			Amount:     input.Amount,
			Date:       now,
			Status:     StatusApproved,
			CreatedAt:  now,
		}
		if ref := strings.TrimSpace(input.ReceiptRef); ref != "" {
			investment.ReceiptRef = &ref
		}

		if err := tx.CreateInvestment(ctx, &investment); err != nil {
			return err
		}
		if err := tx.UpdateCycleFunding(ctx, cycle.ID, funding); err != nil {
			return err
		}

		cycle.CurrentFunding = funding
		result = InvestResult{Investment: investment, Cycle: *cycle}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) ListByCycle(ctx context.Context, cycleID string) ([]Investment, error) {
	if _, err := s.repo.GetCycle(ctx, cycleID); err != nil {
		return nil, err
	}
	return s.repo.ListInvestmentsByCycle(ctx, cycleID)
}

func (s *Service) Settlement(ctx context.Context, cycleID string) (*SettlementReport, error) {
	cycle, err := s.repo.GetCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if cycle.Status != cyclesdomain.StatusCompleted {
		return nil, ErrCycleNotCompleted
	}

	items, err := s.repo.ListInvestmentsByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	sortByDate(items)
	return Settle(*cycle, items)
}

func (s *Service) Portfolio(ctx context.Context, investorID string) (*Portfolio, error) {
	items, err := s.repo.ListInvestmentsByInvestor(ctx, investorID)
	if err != nil {
		return nil, err
	}
	sortByDate(items)

	portfolio := Portfolio{
		Holdings:       make([]Holding, 0, len(items)),
		TotalInvested:  decimal.Zero,
		ActiveInvested: decimal.Zero,
		RealizedValue:  decimal.Zero,
		RealizedProfit: decimal.Zero,
	}

	cycles := make(map[string]*cyclesdomain.Cycle)
	for _, item := range items {
		cycle, ok := cycles[item.CycleID]
		if !ok {
			cycle, err = s.repo.GetCycle(ctx, item.CycleID)
			if err != nil {
				return nil, err
			}
			cycles[item.CycleID] = cycle
		}

		holding := Holding{Investment: item, Cycle: *cycle}
		portfolio.TotalInvested = portfolio.TotalInvested.Add(item.Amount)

		if cycle.Status == cyclesdomain.StatusCompleted && cycle.FinalSalePrice.Valid {
			payout, err := ComputePayout(item, cycle.FundingGoal, cycle.FinalSalePrice.Decimal)
			if err != nil {
				return nil, err
			}
			holding.Payout = &payout
			portfolio.RealizedValue = portfolio.RealizedValue.Add(payout.FinalValue)
			portfolio.RealizedProfit = portfolio.RealizedProfit.Add(payout.Profit)
		} else {
			portfolio.ActiveInvested = portfolio.ActiveInvested.Add(item.Amount)
		}

		portfolio.Holdings = append(portfolio.Holdings, holding)
	}

	return &portfolio, nil
}

// Preview simulates an investment against a projected sale price without
// writing anything.
func (s *Service) Preview(ctx context.Context, cycleID string, amount, projectedSalePrice decimal.Decimal) (*Preview, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if !cyclesdomain.ValidMoney(projectedSalePrice) {
		return nil, ErrInvalidProjectedSale
	}

	cycle, err := s.repo.GetCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if !cycle.FundingGoal.IsPositive() {
		return nil, cyclesdomain.ErrInvalidFundingGoal
	}

	_, applyErr := ApplyFunding(cycle.FundingGoal, cycle.CurrentFunding, amount)
	return &Preview{
		CycleID:        cycle.ID,
		Amount:         amount,
		Remaining:      cycle.Remaining(),
		Allowed:        applyErr == nil && cycle.Status == cyclesdomain.StatusActive,
		ShareRatio:     amount.Div(cycle.FundingGoal).Round(ratioPlaces),
		ProjectedValue: projectedSalePrice.Mul(amount).Div(cycle.FundingGoal).Round(currencyPlaces),
		ExpectedProfit: ExpectedProfit(amount, cycle.FundingGoal, projectedSalePrice),
	}, nil
}

func sortByDate(items []Investment) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.Before(items[j].Date)
	})
}
