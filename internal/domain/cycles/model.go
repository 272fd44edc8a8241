package cycles

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
)

func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusPending, StatusActive, StatusCompleted, StatusRejected:
		return Status(value), true
	default:
		return "", false
	}
}

type Cycle struct {
	ID               string              `gorm:"type:uuid;primaryKey"`
	BreederID        string              `gorm:"type:uuid;not null;index"`
	AnimalType       string              `gorm:"not null"`
	Description      string              `gorm:"type:text;not null;default:''"`
	Insured          bool                `gorm:"not null;default:false"`
	InitialWeight    float64             `gorm:"not null"`
	TargetWeight     float64             `gorm:"not null"`
	FundingGoal      decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	CurrentFunding   decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0"`
	TotalHeads       int                 `gorm:"not null"`
	StartDate        time.Time           `gorm:"type:date;not null"`
	ExpectedDuration int                 `gorm:"not null"`
	ImageRef         *string             `gorm:"type:text"`
	Status           Status              `gorm:"type:varchar(16);not null;index"`
	FinalSalePrice   decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	ActualEndDate    *time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// Remaining is the amount still open for investment.
func (c Cycle) Remaining() decimal.Decimal {
	remaining := c.FundingGoal.Sub(c.CurrentFunding)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// FundingProgress is CurrentFunding as a percentage of FundingGoal.
func (c Cycle) FundingProgress() decimal.Decimal {
	if !c.FundingGoal.IsPositive() {
		return decimal.Zero
	}
	return c.CurrentFunding.Div(c.FundingGoal).Mul(decimal.NewFromInt(100)).Round(2)
}

func (c Cycle) ExpectedEndDate() time.Time {
	return c.StartDate.AddDate(0, 0, c.ExpectedDuration)
}

type Log struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	CycleID     string    `gorm:"type:uuid;not null;index"`
	Date        time.Time `gorm:"type:date;not null"`
	Weight      *float64
	FoodDetails string    `gorm:"type:text;not null"`
	Notes       *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Log) TableName() string {
	return "cycle_logs"
}

type CreateInput struct {
	BreederID        string
	AnimalType       string
	Description      string
	Insured          bool
	InitialWeight    float64
	TargetWeight     float64
	FundingGoal      decimal.Decimal
	TotalHeads       int
	StartDate        *time.Time
	ExpectedDuration int
	ImageRef         string
}

type AddLogInput struct {
	BreederID   string
	CycleID     string
	Weight      *float64
	FoodDetails string
	Notes       string
}

type ListFilter struct {
	Status    Status
	BreederID string
}
