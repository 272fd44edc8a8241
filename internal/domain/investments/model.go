package investments

import (
	"time"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"

	"github.com/shopspring/decimal"
)

type Status string

const StatusApproved Status = "APPROVED"

type Investment struct {
	ID         string          `gorm:"type:uuid;primaryKey"`
	InvestorID string          `gorm:"type:uuid;not null;index"`
	CycleID    string          `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Date       time.Time       `gorm:"not null"`
	Status     Status          `gorm:"type:varchar(16);not null"`
	ReceiptRef *string         `gorm:"type:text"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

type InvestInput struct {
	InvestorID string
	CycleID    string
	Amount     decimal.Decimal
	ReceiptRef string
}

type InvestResult struct {
	Investment Investment
	Cycle      cyclesdomain.Cycle
}

// Payout is one investor's pro-rata part of a cycle's final sale price.
type Payout struct {
	InvestmentID string
	InvestorID   string
	Amount       decimal.Decimal
	ShareRatio   decimal.Decimal
	FinalValue   decimal.Decimal
	Profit       decimal.Decimal
	ROI          decimal.Decimal
}

type SettlementReport struct {
	Cycle          cyclesdomain.Cycle
	Payouts        []Payout
	TotalInvested  decimal.Decimal
	TotalValue     decimal.Decimal
	TotalProfit    decimal.Decimal
	UnfundedShare  decimal.Decimal
	InvestorsCount int
}

type Holding struct {
	Investment Investment
	Cycle      cyclesdomain.Cycle
	Payout     *Payout
}

type Portfolio struct {
	Holdings       []Holding
	TotalInvested  decimal.Decimal
	ActiveInvested decimal.Decimal
	RealizedValue  decimal.Decimal
	RealizedProfit decimal.Decimal
}

type Preview struct {
	CycleID        string
	Amount         decimal.Decimal
	Remaining      decimal.Decimal
	Allowed        bool
	ShareRatio     decimal.Decimal
	ProjectedValue decimal.Decimal
	ExpectedProfit decimal.Decimal
}
