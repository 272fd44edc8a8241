package users

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetUser(ctx context.Context, userID string) (*User, error)
	// GetUserForUpdate reads the user and locks it until the transaction ends.
	GetUserForUpdate(ctx context.Context, userID string) (*User, error)
	GetUserByPhone(ctx context.Context, phone string) (*User, error)
	ListUsers(ctx context.Context, filter ListFilter) ([]User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
	IsPhoneTaken(ctx context.Context, phone, exceptUserID string) (bool, error)
}
