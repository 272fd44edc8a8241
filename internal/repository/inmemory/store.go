package inmemory

import (
	"context"
	"maps"
	"sync"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	investmentsdomain "livestock-invest-go/internal/domain/investments"
	usersdomain "livestock-invest-go/internal/domain/users"
)

// Store keeps every entity in process memory behind a single mutex.
// Transactions run under the lock and roll back to a snapshot on error.
type Store struct {
	mu   sync.Mutex
	data *state
}

type state struct {
	users       map[string]usersdomain.User
	cycles      map[string]cyclesdomain.Cycle
	investments map[string]investmentsdomain.Investment
	logs        map[string]cyclesdomain.Log
}

func NewStore() *Store {
	return &Store{
		data: &state{
			users:       make(map[string]usersdomain.User),
			cycles:      make(map[string]cyclesdomain.Cycle),
			investments: make(map[string]investmentsdomain.Investment),
			logs:        make(map[string]cyclesdomain.Log),
		},
	}
}

func (s *state) clone() *state {
	return &state{
		users:       maps.Clone(s.users),
		cycles:      maps.Clone(s.cycles),
		investments: maps.Clone(s.investments),
		logs:        maps.Clone(s.logs),
	}
}

// access runs fn against tx when called inside a transaction, otherwise
// against the live state under the lock.
func (s *Store) access(ctx context.Context, tx *state, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tx != nil {
		return fn(tx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *Store) transaction(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(s.data); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) Users() *UsersRepository {
	return &UsersRepository{store: s}
}

func (s *Store) Cycles() *CyclesRepository {
	return &CyclesRepository{store: s}
}

func (s *Store) Investments() *InvestmentsRepository {
	return &InvestmentsRepository{store: s}
}

func getCycle(data *state, cycleID string) (*cyclesdomain.Cycle, error) {
	cycle, ok := data.cycles[cycleID]
	if !ok {
		return nil, cyclesdomain.ErrCycleNotFound
	}
	return &cycle, nil
}
