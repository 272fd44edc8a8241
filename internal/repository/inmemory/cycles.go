package inmemory

import (
	"context"
	"sort"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
)

type CyclesRepository struct {
	store *Store
	tx    *state
}

func (r *CyclesRepository) Transaction(ctx context.Context, fn func(cyclesdomain.Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}
	return r.store.transaction(ctx, func(data *state) error {
		return fn(&CyclesRepository{store: r.store, tx: data})
	})
}

func (r *CyclesRepository) GetCycle(ctx context.Context, cycleID string) (*cyclesdomain.Cycle, error) {
	var result *cyclesdomain.Cycle
	err := r.store.access(ctx, r.tx, func(data *state) error {
		cycle, err := getCycle(data, cycleID)
		result = cycle
		return err
	})
	return result, err
}

// GetCycleForUpdate needs no row lock: transactions already hold the store mutex.
func (r *CyclesRepository) GetCycleForUpdate(ctx context.Context, cycleID string) (*cyclesdomain.Cycle, error) {
	return r.GetCycle(ctx, cycleID)
}

func (r *CyclesRepository) ListCycles(ctx context.Context, filter cyclesdomain.ListFilter) ([]cyclesdomain.Cycle, error) {
	result := make([]cyclesdomain.Cycle, 0)
	err := r.store.access(ctx, r.tx, func(data *state) error {
		for _, cycle := range data.cycles {
			if filter.Status != "" && cycle.Status != filter.Status {
				continue
			}
			if filter.BreederID != "" && cycle.BreederID != filter.BreederID {
				continue
			}
			result = append(result, cycle)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortCycles(result)
	return result, nil
}

func (r *CyclesRepository) CreateCycle(ctx context.Context, cycle *cyclesdomain.Cycle) error {
	return r.store.access(ctx, r.tx, func(data *state) error {
		if _, ok := data.users[cycle.BreederID]; !ok {
			return cyclesdomain.ErrBreederNotEligible
		}
		data.cycles[cycle.ID] = *cycle
		return nil
	})
}

func (r *CyclesRepository) UpdateCycle(ctx context.Context, cycle *cyclesdomain.Cycle) error {
	return r.store.access(ctx, r.tx, func(data *state) error {
		if _, ok := data.cycles[cycle.ID]; !ok {
			return cyclesdomain.ErrCycleNotFound
		}
		data.cycles[cycle.ID] = *cycle
		return nil
	})
}

func (r *CyclesRepository) DeleteCycle(ctx context.Context, cycleID string) error {
	return r.store.access(ctx, r.tx, func(data *state) error {
		if _, ok := data.cycles[cycleID]; !ok {
			return cyclesdomain.ErrCycleNotFound
		}
		for id, entry := range data.logs {
			if entry.CycleID == cycleID {
				delete(data.logs, id)
			}
		}
		for id, investment := range data.investments {
			if investment.CycleID == cycleID {
				delete(data.investments, id)
			}
		}
		delete(data.cycles, cycleID)
		return nil
	})
}

func (r *CyclesRepository) CreateLog(ctx context.Context, entry *cyclesdomain.Log) error {
	return r.store.access(ctx, r.tx, func(data *state) error {
		if _, ok := data.cycles[entry.CycleID]; !ok {
			return cyclesdomain.ErrCycleNotFound
		}
		data.logs[entry.ID] = *entry
		return nil
	})
}

func (r *CyclesRepository) ListLogs(ctx context.Context, cycleID string) ([]cyclesdomain.Log, error) {
	result := make([]cyclesdomain.Log, 0)
	err := r.store.access(ctx, r.tx, func(data *state) error {
		for _, entry := range data.logs {
			if entry.CycleID == cycleID {
				result = append(result, entry)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cyclesdomain.SortLogs(result)
	return result, nil
}

// sortCycles orders newest first, matching the postgres repository.
func sortCycles(items []cyclesdomain.Cycle) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
