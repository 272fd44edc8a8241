package investments

import (
	"context"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetCycle(ctx context.Context, cycleID string) (*cyclesdomain.Cycle, error)
	GetCycleForUpdate(ctx context.Context, cycleID string) (*cyclesdomain.Cycle, error)
	UpdateCycleFunding(ctx context.Context, cycleID string, funding decimal.Decimal) error
	CreateInvestment(ctx context.Context, investment *Investment) error
	ListInvestmentsByCycle(ctx context.Context, cycleID string) ([]Investment, error)
	ListInvestmentsByInvestor(ctx context.Context, investorID string) ([]Investment, error)
}
