package users

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	phoneLength   = 11
	nameMinLength = 2
	nameMaxLength = 100
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetUser(ctx, userID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]User, error) {
	return s.repo.ListUsers(ctx, filter)
}

// Register creates a self-service account. Only breeders and investors may
// register; the account waits in PENDING until an admin decides on it.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if input.Role != RoleBreeder && input.Role != RoleInvestor {
		return nil, ErrInvalidRole
	}

	user, err := s.newUser(input.Name, input.Phone, input.Role, StatusPending)
	if err != nil {
		return nil, err
	}
	user.NationalID = optionalString(input.NationalID)
	user.BankIBAN = optionalString(strings.ToUpper(strings.ReplaceAll(input.BankIBAN, " ", "")))
	user.IDFrontRef = optionalString(input.IDFrontRef)
	user.IDBackRef = optionalString(input.IDBackRef)

	if err := s.create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) CreateByAdmin(ctx context.Context, input CreateInput) (*User, error) {
	if _, ok := ParseRole(string(input.Role)); !ok {
		return nil, ErrInvalidRole
	}

	user, err := s.newUser(input.Name, input.Phone, input.Role, StatusActive)
	if err != nil {
		return nil, err
	}
	user.DocumentsVerified = true

	if err := s.create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Approve(ctx context.Context, userID string) (*User, error) {
	return s.decide(ctx, userID, StatusActive)
}

func (s *Service) Reject(ctx context.Context, userID string) (*User, error) {
	return s.decide(ctx, userID, StatusRejected)
}

// Authenticate resolves a login by phone. Only ACTIVE accounts pass; pending and
// rejected accounts get an AccessError carrying a role-specific message.
func (s *Service) Authenticate(ctx context.Context, phone string) (*User, error) {
	phone, err := normalizePhone(phone)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	switch user.Status {
	case StatusActive:
		return user, nil
	case StatusPending:
		return nil, &AccessError{Role: user.Role, Status: user.Status, err: ErrAccountPending}
	default:
		return nil, &AccessError{Role: user.Role, Status: user.Status, err: ErrAccountRejected}
	}
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*User, error) {
	var result User
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		user, err := tx.GetUser(ctx, userID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			name, err := normalizeName(*input.Name)
			if err != nil {
				return err
			}
			user.Name = name
		}
		if input.Phone != nil {
			phone, err := normalizePhone(*input.Phone)
			if err != nil {
				return err
			}
			if phone != user.Phone {
				taken, err := tx.IsPhoneTaken(ctx, phone, user.ID)
				if err != nil {
					return err
				}
				if taken {
					return ErrPhoneTaken
				}
				user.Phone = phone
			}
		}
		if input.NationalID != nil {
			user.NationalID = optionalString(*input.NationalID)
		}
		if input.BankIBAN != nil {
			user.BankIBAN = optionalString(strings.ToUpper(strings.ReplaceAll(*input.BankIBAN, " ", "")))
		}
		user.UpdatedAt = s.now()

		if err := tx.UpdateUser(ctx, user); err != nil {
			return err
		}
		result = *user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) decide(ctx context.Context, userID string, target Status) (*User, error) {
	var result User
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		user, err := tx.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user.Status != StatusPending {
			return ErrInvalidTransition
		}

		user.Status = target
		user.UpdatedAt = s.now()
		if err := tx.UpdateUser(ctx, user); err != nil {
			return err
		}
		result = *user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) newUser(name, phone string, role Role, status Status) (*User, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	phone, err = normalizePhone(phone)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &User{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		Role:      role,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *Service) create(ctx context.Context, user *User) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		taken, err := tx.IsPhoneTaken(ctx, user.Phone, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrPhoneTaken
		}
		return tx.CreateUser(ctx, user)
	})
}

func normalizePhone(value string) (string, error) {
	value = strings.TrimSpace(value)
	if len(value) != phoneLength {
		return "", ErrInvalidPhone
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return "", ErrInvalidPhone
		}
	}
	return value, nil
}

func normalizeName(value string) (string, error) {
	value = strings.Join(strings.Fields(value), " ")
	length := utf8.RuneCountInString(value)
	if length < nameMinLength || length > nameMaxLength {
		return "", ErrInvalidName
	}

	letters := 0
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.Is(unicode.Mn, r), r == ' ', r == '-', r == '\'', r == '.':
		default:
			return "", ErrInvalidName
		}
	}
	if letters == 0 {
		return "", ErrInvalidName
	}
	return value, nil
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// AccessError refuses a login for an account that is not ACTIVE.
type AccessError struct {
	Role   Role
	Status Status
	err    error
}

func (e *AccessError) Error() string {
	return e.err.Error()
}

func (e *AccessError) Unwrap() error {
	return e.err
}

func (e *AccessError) Message() string {
	return AccessMessage(e.Role, e.Status)
}

// AccessMessage is the user-facing text shown when a login is refused.
func AccessMessage(role Role, status Status) string {
	switch status {
	case StatusPending:
		switch role {
		case RoleBreeder:
			return "حساب المربي قيد المراجعة من الإدارة، سيتم تفعيله بعد التحقق من البيانات"
		case RoleInvestor:
			return "حساب المستثمر قيد المراجعة من الإدارة، سيتم تفعيله بعد التحقق من البيانات"
		}
		return "الحساب قيد المراجعة"
	case StatusRejected:
		switch role {
		case RoleBreeder:
			return "تم رفض طلب تسجيل المربي، يرجى التواصل مع الإدارة"
		case RoleInvestor:
			return "تم رفض طلب تسجيل المستثمر، يرجى التواصل مع الإدارة"
		}
		return "تم رفض الحساب"
	}
	return ""
}

func IsAccessError(err error) (*AccessError, bool) {
	var accessErr *AccessError
	if errors.As(err, &accessErr) {
		return accessErr, true
	}
	return nil, false
}
