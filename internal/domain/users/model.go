package users

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleBreeder  Role = "BREEDER"
	RoleInvestor Role = "INVESTOR"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusActive   Status = "ACTIVE"
	StatusRejected Status = "REJECTED"
)

type User struct {
	ID                string    `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"not null"`
	Phone             string    `gorm:"size:11;not null;uniqueIndex"`
	Role              Role      `gorm:"type:varchar(16);not null;index"`
	Status            Status    `gorm:"type:varchar(16);not null;index"`
	NationalID        *string   `gorm:"type:text"`
	BankIBAN          *string   `gorm:"column:bank_iban;type:text"`
	IDFrontRef        *string   `gorm:"type:text"`
	IDBackRef         *string   `gorm:"type:text"`
	DocumentsVerified bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (u User) IsActive() bool {
	return u.Status == StatusActive
}

type RegisterInput struct {
	Name       string
	Phone      string
	Role       Role
	NationalID string
	BankIBAN   string
	IDFrontRef string
	IDBackRef  string
}

type CreateInput struct {
	Name  string
	Phone string
	Role  Role
}

type ProfileInput struct {
	Name       *string
	Phone      *string
	NationalID *string
	BankIBAN   *string
}

type ListFilter struct {
	Role   Role
	Status Status
}

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleAdmin, RoleBreeder, RoleInvestor:
		return Role(value), true
	default:
		return "", false
	}
}

func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusPending, StatusActive, StatusRejected:
		return Status(value), true
	default:
		return "", false
	}
}
