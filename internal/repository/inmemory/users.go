package inmemory

import (
	"context"
	"sort"

	usersdomain "livestock-invest-go/internal/domain/users"
)

type UsersRepository struct {
	store *Store
	tx    *state
}

func (r *UsersRepository) Transaction(ctx context.Context, fn func(usersdomain.Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}
	return r.store.transaction(ctx, func(data *state) error {
		return fn(&UsersRepository{store: r.store, tx: data})
	})
}

func (r *UsersRepository) GetUser(ctx context.Context, userID string) (*usersdomain.User, error) {
	var result *usersdomain.User
	err := r.store.access(ctx, r.tx, func(data *state) error {
		user, ok := data.users[userID]
		if !ok {
			return usersdomain.ErrUserNotFound
		}
		result = &user
		return nil
	})
	return result, err
}

// GetUserForUpdate needs no row lock: transactions already hold the store mutex.
func (r *UsersRepository) GetUserForUpdate(ctx context.Context, userID string) (*usersdomain.User, error) {
	return r.GetUser(ctx, userID)
}

func (r *UsersRepository) GetUserByPhone(ctx context.Context, phone string) (*usersdomain.User, error) {
	var result *usersdomain.User
	err := r.store.access(ctx, r.tx, func(data *state) error {
		for _, user := range data.users {
			if user.Phone == phone {
				found := user
				result = &found
				return nil
			}
		}
		return usersdomain.ErrUserNotFound
	})
	return result, err
}

func (r *UsersRepository) ListUsers(ctx context.Context, filter usersdomain.ListFilter) ([]usersdomain.User, error) {
	result := make([]usersdomain.User, 0)
	err := r.store.access(ctx, r.tx, func(data *state) error {
		for _, user := range data.users {
			if filter.Role != "" && user.Role != filter.Role {
				continue
			}
			if filter.Status != "" && user.Status != filter.Status {
				continue
			}
			result = append(result, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *UsersRepository) CreateUser(ctx context.Context, user *usersdomain.User) error {
	return r.store.access(ctx, r.tx, func(data *state) error {
		for _, existing := range data.users {
			if existing.Phone == user.Phone {
				return usersdomain.ErrPhoneTaken
			}
		}
		data.users[user.ID] = *user
		return nil
	})
}

func (r *UsersRepository) UpdateUser(ctx context.Context, user *usersdomain.User) error {
	return r.store.access(ctx, r.tx, func(data *state) error {
		if _, ok := data.users[user.ID]; !ok {
			return usersdomain.ErrUserNotFound
		}
		for _, existing := range data.users {
			if existing.ID != user.ID && existing.Phone == user.Phone {
				return usersdomain.ErrPhoneTaken
			}
		}
		data.users[user.ID] = *user
		return nil
	})
}

func (r *UsersRepository) IsPhoneTaken(ctx context.Context, phone, exceptUserID string) (bool, error) {
	taken := false
	err := r.store.access(ctx, r.tx, func(data *state) error {
		for _, user := range data.users {
			if user.Phone == phone && user.ID != exceptUserID {
				taken = true
				return nil
			}
		}
		return nil
	})
	return taken, err
}
