package users

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrPhoneTaken        = errors.New("phone already registered")
	ErrInvalidPhone      = errors.New("phone must be 11 digits")
	ErrInvalidName       = errors.New("name is invalid")
	ErrInvalidRole       = errors.New("role is invalid")
	ErrInvalidTransition = errors.New("user is not pending")
	ErrAccountPending    = errors.New("account pending approval")
	ErrAccountRejected   = errors.New("account rejected")
)
