package investments

import (
	"context"
	"errors"
	"time"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	investmentsdomain "livestock-invest-go/internal/domain/investments"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(investmentsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetCycle(ctx context.Context, cycleID string) (*cyclesdomain.Cycle, error) {
	return r.getCycle(r.db.WithContext(ctx), cycleID)
}

func (r *PostgresRepository) GetCycleForUpdate(ctx context.Context, cycleID string) (*cyclesdomain.Cycle, error) {
	return r.getCycle(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), cycleID)
}

func (r *PostgresRepository) getCycle(db *gorm.DB, cycleID string) (*cyclesdomain.Cycle, error) {
	var cycle cyclesdomain.Cycle
	if err := db.Where("id = ?", cycleID).First(&cycle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cyclesdomain.ErrCycleNotFound
		}
		return nil, err
	}
	return &cycle, nil
}

func (r *PostgresRepository) UpdateCycleFunding(ctx context.Context, cycleID string, funding decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&cyclesdomain.Cycle{}).
		Where("id = ?", cycleID).
		Updates(map[string]interface{}{
			"current_funding": funding,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return cyclesdomain.ErrCycleNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateInvestment(ctx context.Context, investment *investmentsdomain.Investment) error {
	return r.db.WithContext(ctx).Create(investment).Error
}

func (r *PostgresRepository) ListInvestmentsByCycle(ctx context.Context, cycleID string) ([]investmentsdomain.Investment, error) {
	return r.list(ctx, "cycle_id = ?", cycleID)
}

func (r *PostgresRepository) ListInvestmentsByInvestor(ctx context.Context, investorID string) ([]investmentsdomain.Investment, error) {
	return r.list(ctx, "investor_id = ?", investorID)
}

func (r *PostgresRepository) list(ctx context.Context, where string, arg string) ([]investmentsdomain.Investment, error) {
	var items []investmentsdomain.Investment
	if err := r.db.WithContext(ctx).
		Where(where, arg).
		Order("date asc, id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
