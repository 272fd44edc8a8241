package inmemory

import (
	"context"
	"sort"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	investmentsdomain "livestock-invest-go/internal/domain/investments"

	"github.com/shopspring/decimal"
)

type InvestmentsRepository struct {
	store *Store
	tx    *state
}

func (r *InvestmentsRepository) Transaction(ctx context.Context, fn func(investmentsdomain.Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}
	return r.store.transaction(ctx, func(data *state) error {
		return fn(&InvestmentsRepository{store: r.store, tx: data})
	})
}

func (r *InvestmentsRepository) GetCycle(ctx context.Context, cycleID string) (*cyclesdomain.Cycle, error) {
	var result *cyclesdomain.Cycle
	err := r.store.access(ctx, r.tx, func(data *state) error {
		cycle, err := getCycle(data, cycleID)
		result = cycle
		return err
	})
	return result, err
}

func (r *InvestmentsRepository) GetCycleForUpdate(ctx context.Context, cycleID string) (*cyclesdomain.Cycle, error) {
	return r.GetCycle(ctx, cycleID)
}

func (r *InvestmentsRepository) UpdateCycleFunding(ctx context.Context, cycleID string, funding decimal.Decimal) error {
	return r.store.access(ctx, r.tx, func(data *state) error {
		cycle, ok := data.cycles[cycleID]
		if !ok {
			return cyclesdomain.ErrCycleNotFound
		}
		cycle.CurrentFunding = funding
		data.cycles[cycleID] = cycle
		return nil
	})
}

func (r *InvestmentsRepository) CreateInvestment(ctx context.Context, investment *investmentsdomain.Investment) error {
	return r.store.access(ctx, r.tx, func(data *state) error {
		if _, ok := data.cycles[investment.CycleID]; !ok {
			return cyclesdomain.ErrCycleNotFound
		}
		data.investments[investment.ID] = *investment
		return nil
	})
}

func (r *InvestmentsRepository) ListInvestmentsByCycle(ctx context.Context, cycleID string) ([]investmentsdomain.Investment, error) {
	return r.list(ctx, func(item investmentsdomain.Investment) bool {
		return item.CycleID == cycleID
	})
}

func (r *InvestmentsRepository) ListInvestmentsByInvestor(ctx context.Context, investorID string) ([]investmentsdomain.Investment, error) {
	return r.list(ctx, func(item investmentsdomain.Investment) bool {
		return item.InvestorID == investorID
	})
}

func (r *InvestmentsRepository) list(ctx context.Context, match func(investmentsdomain.Investment) bool) ([]investmentsdomain.Investment, error) {
	result := make([]investmentsdomain.Investment, 0)
	err := r.store.access(ctx, r.tx, func(data *state) error {
		for _, item := range data.investments {
			if match(item) {
				result = append(result, item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}
