package dashboard

import (
	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	usersdomain "livestock-invest-go/internal/domain/users"

	"github.com/shopspring/decimal"
)

// Dashboard is one of AdminDashboard, BreederDashboard or InvestorDashboard.
type Dashboard interface {
	Role() usersdomain.Role
	dashboard()
}

type AdminDashboard struct {
	PendingUsers    int
	PendingCycles   int
	ActiveCycles    int
	CompletedCycles int
	TotalFunded     decimal.Decimal
	RealizedProfit  decimal.Decimal
}

func (AdminDashboard) Role() usersdomain.Role { return usersdomain.RoleAdmin }
func (AdminDashboard) dashboard()             {}

type BreederCycle struct {
	Cycle           cyclesdomain.Cycle
	CurrentWeight   float64
	FundingProgress decimal.Decimal
}

type BreederDashboard struct {
	Cycles       []BreederCycle
	ActiveCycles int
	TotalFunded  decimal.Decimal
}

func (BreederDashboard) Role() usersdomain.Role { return usersdomain.RoleBreeder }
func (BreederDashboard) dashboard()             {}

type InvestorDashboard struct {
	Opportunities  []cyclesdomain.Cycle
	Holdings       int
	TotalInvested  decimal.Decimal
	ActiveInvested decimal.Decimal
	RealizedValue  decimal.Decimal
	RealizedProfit decimal.Decimal
}

func (InvestorDashboard) Role() usersdomain.Role { return usersdomain.RoleInvestor }
func (InvestorDashboard) dashboard()             {}
