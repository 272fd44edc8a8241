package users

import (
	"context"
	"errors"

	usersdomain "livestock-invest-go/internal/domain/users"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(usersdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetUser(ctx context.Context, userID string) (*usersdomain.User, error) {
	return r.getUser(r.db.WithContext(ctx), userID)
}

func (r *PostgresRepository) GetUserForUpdate(ctx context.Context, userID string) (*usersdomain.User, error) {
	return r.getUser(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *PostgresRepository) getUser(db *gorm.DB, userID string) (*usersdomain.User, error) {
	var user usersdomain.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usersdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetUserByPhone(ctx context.Context, phone string) (*usersdomain.User, error) {
	var user usersdomain.User
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usersdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) ListUsers(ctx context.Context, filter usersdomain.ListFilter) ([]usersdomain.User, error) {
	query := r.db.WithContext(ctx).Model(&usersdomain.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var users []usersdomain.User
	if err := query.Order("created_at asc, id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *usersdomain.User) error {
	return translateUnique(r.db.WithContext(ctx).Create(user).Error)
}

func (r *PostgresRepository) UpdateUser(ctx context.Context, user *usersdomain.User) error {
	result := r.db.WithContext(ctx).
		Model(&usersdomain.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":               user.Name,
			"phone":              user.Phone,
			"status":             user.Status,
			"national_id":        user.NationalID,
			"bank_iban":          user.BankIBAN,
			"id_front_ref":       user.IDFrontRef,
			"id_back_ref":        user.IDBackRef,
			"documents_verified": user.DocumentsVerified,
			"updated_at":         user.UpdatedAt,
		})
	if err := translateUnique(result.Error); err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return usersdomain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) IsPhoneTaken(ctx context.Context, phone, exceptUserID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&usersdomain.User{}).Where("phone = ?", phone)
	if exceptUserID != "" {
		query = query.Where("id <> ?", exceptUserID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// translateUnique relies on gorm.Config.TranslateError; phone is the only
// unique column besides the primary key.
func translateUnique(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return usersdomain.ErrPhoneTaken
	}
	return err
}
