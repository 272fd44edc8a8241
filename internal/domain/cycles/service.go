package cycles

import (
	"context"
	"sort"
	"strings"
	"time"

	usersdomain "livestock-invest-go/internal/domain/users"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserDirectory interface {
	Get(ctx context.Context, userID string) (*usersdomain.User, error)
}

// RiskWarmer precomputes the risk summary of a freshly created cycle. It must
// return immediately.
type RiskWarmer interface {
	Warm(cycle Cycle)
}

type Service struct {
	repo  Repository
	users UserDirectory
	risk  RiskWarmer
	now   func() time.Time
}

func NewService(repo Repository, users UserDirectory, risk RiskWarmer) *Service {
	return &Service{
		repo:  repo,
		users: users,
		risk:  risk,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Get(ctx context.Context, cycleID string) (*Cycle, error) {
	return s.repo.GetCycle(ctx, cycleID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Cycle, error) {
	return s.repo.ListCycles(ctx, filter)
}

// ListOpportunities returns the cycles investors may fund.
func (s *Service) ListOpportunities(ctx context.Context) ([]Cycle, error) {
	return s.repo.ListCycles(ctx, ListFilter{Status: StatusActive})
}

func (s *Service) ListByBreeder(ctx context.Context, breederID string) ([]Cycle, error) {
	return s.repo.ListCycles(ctx, ListFilter{BreederID: breederID})
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Cycle, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	breeder, err := s.users.Get(ctx, input.BreederID)
	if err != nil {
		return nil, err
	}
	if breeder.Role != usersdomain.RoleBreeder || !breeder.IsActive() {
		return nil, ErrBreederNotEligible
	}

	now := s.now()
	startDate := truncateDay(now)
	if input.StartDate != nil {
		startDate = truncateDay(input.StartDate.UTC())
	}

	cycle := Cycle{
		ID:               uuid.NewString(),
		BreederID:        breeder.ID,
		AnimalType:       strings.TrimSpace(input.AnimalType),
		Description:      strings.TrimSpace(input.Description),
		Insured:          input.Insured,
		InitialWeight:    input.InitialWeight,
		TargetWeight:     input.TargetWeight,
		FundingGoal:      input.FundingGoal,
		CurrentFunding:   decimal.Zero,
		TotalHeads:       input.TotalHeads,
		StartDate:        startDate,
		ExpectedDuration: input.ExpectedDuration,
		Status:           StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if ref := strings.TrimSpace(input.ImageRef); ref != "" {
		cycle.ImageRef = &ref
	}

	if err := s.repo.CreateCycle(ctx, &cycle); err != nil {
		return nil, err
	}

	if s.risk != nil {
		s.risk.Warm(cycle)
	}
	return &cycle, nil
}

func (s *Service) Approve(ctx context.Context, cycleID string) (*Cycle, error) {
	return s.transition(ctx, cycleID, func(cycle *Cycle) error {
		if cycle.Status != StatusPending {
			return ErrInvalidTransition
		}
		cycle.Status = StatusActive
		return nil
	})
}

func (s *Service) Reject(ctx context.Context, cycleID string) (*Cycle, error) {
	return s.transition(ctx, cycleID, func(cycle *Cycle) error {
		if cycle.Status != StatusPending {
			return ErrInvalidTransition
		}
		cycle.Status = StatusRejected
		return nil
	})
}

// Sell records the final sale of an active cycle. Funding is left untouched;
// payouts are derived from it by the settlement calculator.
func (s *Service) Sell(ctx context.Context, cycleID string, finalSalePrice decimal.Decimal) (*Cycle, error) {
	if !ValidMoney(finalSalePrice) {
		return nil, ErrInvalidSalePrice
	}

	return s.transition(ctx, cycleID, func(cycle *Cycle) error {
		if cycle.Status != StatusActive {
			return ErrInvalidTransition
		}
		endDate := s.now()
		cycle.Status = StatusCompleted
		cycle.FinalSalePrice = decimal.NewNullDecimal(finalSalePrice)
		cycle.ActualEndDate = &endDate
		return nil
	})
}

// Delete removes a cycle in any non-PENDING state together with its logs and
// investments. Pending cycles are approved or rejected instead.
func (s *Service) Delete(ctx context.Context, cycleID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		cycle, err := tx.GetCycleForUpdate(ctx, cycleID)
		if err != nil {
			return err
		}
		if cycle.Status == StatusPending {
			return ErrInvalidTransition
		}
		return tx.DeleteCycle(ctx, cycleID)
	})
}

func (s *Service) AddLog(ctx context.Context, input AddLogInput) (*Log, error) {
	food := strings.TrimSpace(input.FoodDetails)
	if food == "" {
		return nil, ErrFoodDetailsRequired
	}
	if input.Weight != nil && *input.Weight <= 0 {
		return nil, ErrInvalidLogWeight
	}

	var result Log
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		cycle, err := tx.GetCycle(ctx, input.CycleID)
		if err != nil {
			return err
		}
		if cycle.BreederID != input.BreederID {
			return ErrNotOwner
		}
		if cycle.Status != StatusActive {
			return ErrCycleNotActive
		}

		now := s.now()
		entry := Log{
			ID:          uuid.NewString(),
			CycleID:     cycle.ID,
			Date:        truncateDay(now),
			Weight:      input.Weight,
			FoodDetails: food,
			CreatedAt:   now,
		}
		if notes := strings.TrimSpace(input.Notes); notes != "" {
			entry.Notes = &notes
		}

		if err := tx.CreateLog(ctx, &entry); err != nil {
			return err
		}
		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListLogs returns the cycle's logs, newest date first.
func (s *Service) ListLogs(ctx context.Context, cycleID string) ([]Log, error) {
	if _, err := s.repo.GetCycle(ctx, cycleID); err != nil {
		return nil, err
	}
	logs, err := s.repo.ListLogs(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	SortLogs(logs)
	return logs, nil
}

func (s *Service) transition(ctx context.Context, cycleID string, apply func(*Cycle) error) (*Cycle, error) {
	var result Cycle
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		cycle, err := tx.GetCycleForUpdate(ctx, cycleID)
		if err != nil {
			return err
		}
		if err := apply(cycle); err != nil {
			return err
		}
		cycle.UpdatedAt = s.now()
		if err := tx.UpdateCycle(ctx, cycle); err != nil {
			return err
		}
		result = *cycle
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SortLogs orders logs by date descending, newest entry first within a day.
func SortLogs(logs []Log) {
	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].Date.Equal(logs[j].Date) {
			return logs[i].Date.After(logs[j].Date)
		}
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})
}

// CurrentWeight is the weight of the latest dated log that recorded one,
// or the cycle's initial weight when no log did.
func CurrentWeight(cycle Cycle, logs []Log) float64 {
	var latest *Log
	for i := range logs {
		entry := &logs[i]
		if entry.Weight == nil {
			continue
		}
		if latest == nil ||
			entry.Date.After(latest.Date) ||
			(entry.Date.Equal(latest.Date) && entry.CreatedAt.After(latest.CreatedAt)) {
			latest = entry
		}
	}
	if latest == nil {
		return cycle.InitialWeight
	}
	return *latest.Weight
}

func validateCreate(input CreateInput) error {
	if strings.TrimSpace(input.AnimalType) == "" {
		return ErrInvalidAnimalType
	}
	if input.InitialWeight <= 0 || input.TargetWeight <= input.InitialWeight {
		return ErrInvalidWeights
	}
	if !ValidMoney(input.FundingGoal) {
		return ErrInvalidFundingGoal
	}
	if input.TotalHeads < 1 {
		return ErrInvalidHeads
	}
	if input.ExpectedDuration < 1 {
		return ErrInvalidDuration
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
