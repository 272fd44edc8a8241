package cycles

import (
	"context"
	"errors"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	investmentsdomain "livestock-invest-go/internal/domain/investments"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(cyclesdomain.Repository) error) error {
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

func (r *PostgresRepository) ListCycles(ctx context.Context, filter cyclesdomain.ListFilter) ([]cyclesdomain.Cycle, error) {
	query := r.db.WithContext(ctx).Model(&cyclesdomain.Cycle{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.BreederID != "" {
		query = query.Where("breeder_id = ?", filter.BreederID)
	}

	var cycles []cyclesdomain.Cycle
	if err := query.Order("created_at desc, id asc").Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (r *PostgresRepository) CreateCycle(ctx context.Context, cycle *cyclesdomain.Cycle) error {
	err := r.db.WithContext(ctx).Create(cycle).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return cyclesdomain.ErrBreederNotEligible
	}
	return err
}

func (r *PostgresRepository) UpdateCycle(ctx context.Context, cycle *cyclesdomain.Cycle) error {
	result := r.db.WithContext(ctx).
		Model(&cyclesdomain.Cycle{}).
		Where("id = ?", cycle.ID).
		Updates(map[string]interface{}{
			"status":           cycle.Status,
			"current_funding":  cycle.CurrentFunding,
			"final_sale_price": cycle.FinalSalePrice,
			"actual_end_date":  cycle.ActualEndDate,
			"updated_at":       cycle.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return cyclesdomain.ErrCycleNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteCycle(ctx context.Context, cycleID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&cyclesdomain.Log{}, "cycle_id = ?", cycleID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&investmentsdomain.Investment{}, "cycle_id = ?", cycleID).Error; err != nil {
			return err
		}
		result := tx.Delete(&cyclesdomain.Cycle{}, "id = ?", cycleID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return cyclesdomain.ErrCycleNotFound
		}
		return nil
	})
}

func (r *PostgresRepository) CreateLog(ctx context.Context, entry *cyclesdomain.Log) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PostgresRepository) ListLogs(ctx context.Context, cycleID string) ([]cyclesdomain.Log, error) {
	var logs []cyclesdomain.Log
	if err := r.db.WithContext(ctx).
		Where("cycle_id = ?", cycleID).
		Order("date desc, created_at desc").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
