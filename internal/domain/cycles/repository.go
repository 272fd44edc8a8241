package cycles

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetCycle(ctx context.Context, cycleID string) (*Cycle, error)
	GetCycleForUpdate(ctx context.Context, cycleID string) (*Cycle, error)
	ListCycles(ctx context.Context, filter ListFilter) ([]Cycle, error)
	CreateCycle(ctx context.Context, cycle *Cycle) error
	UpdateCycle(ctx context.Context, cycle *Cycle) error
	// DeleteCycle removes the cycle together with its logs and investments.
	DeleteCycle(ctx context.Context, cycleID string) error
	CreateLog(ctx context.Context, log *Log) error
	ListLogs(ctx context.Context, cycleID string) ([]Log, error)
}
