package inmemory

import (
	"time"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	investmentsdomain "livestock-invest-go/internal/domain/investments"
	usersdomain "livestock-invest-go/internal/domain/users"

	"github.com/shopspring/decimal"
)

// Demo identifiers are fixed so the seeded data is stable across restarts.
const (
	DemoAdminID          = "00000000-0000-4000-8000-000000000001"
	DemoBreederID        = "00000000-0000-4000-8000-000000000002"
	DemoInvestorID       = "00000000-0000-4000-8000-000000000003"
	DemoPendingBreederID = "00000000-0000-4000-8000-000000000004"

	DemoActiveCycleID    = "00000000-0000-4000-8000-000000000101"
	DemoPendingCycleID   = "00000000-0000-4000-8000-000000000102"
	DemoCompletedCycleID = "00000000-0000-4000-8000-000000000103"
)

const (
	DemoAdminPhone    = "01000000000"
	DemoBreederPhone  = "01111111111"
	DemoInvestorPhone = "01222222222"
)

// SeedDemo loads the demo users, cycles, investments and logs. Existing
// entries with the same ids are replaced.
func (s *Store) SeedDemo(now time.Time) {
	now = now.UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range []usersdomain.User{
		demoUser(DemoAdminID, "مدير المنصة", DemoAdminPhone, usersdomain.RoleAdmin, usersdomain.StatusActive, now.Add(-4*time.Hour)),
		demoUser(DemoBreederID, "محمود عبد الله", DemoBreederPhone, usersdomain.RoleBreeder, usersdomain.StatusActive, now.Add(-3*time.Hour)),
		demoUser(DemoInvestorID, "سارة إبراهيم", DemoInvestorPhone, usersdomain.RoleInvestor, usersdomain.StatusActive, now.Add(-2*time.Hour)),
		demoUser(DemoPendingBreederID, "كريم حسن", "01555555555", usersdomain.RoleBreeder, usersdomain.StatusPending, now.Add(-time.Hour)),
	} {
		s.data.users[user.ID] = user
	}

	endDate := day.AddDate(0, 0, -10)
	for _, cycle := range []cyclesdomain.Cycle{
		{
			ID:               DemoActiveCycleID,
			BreederID:        DemoBreederID,
			AnimalType:       "عجول بلدي",
			Description:      "أربعة عجول بلدي في مزرعة بالمنوفية مع تغذية مركزة.",
			Insured:          true,
			InitialWeight:    250,
			TargetWeight:     450,
			FundingGoal:      decimal.NewFromInt(60000),
			CurrentFunding:   decimal.NewFromInt(20000),
			TotalHeads:       4,
			StartDate:        day.AddDate(0, 0, -30),
			ExpectedDuration: 180,
			Status:           cyclesdomain.StatusActive,
			CreatedAt:        now.Add(-90 * time.Minute),
			UpdatedAt:        now.Add(-90 * time.Minute),
		},
		{
			ID:               DemoPendingCycleID,
			BreederID:        DemoBreederID,
			AnimalType:       "أغنام برقي",
			Description:      "عشرة رؤوس أغنام للتسمين قبل عيد الأضحى.",
			InitialWeight:    35,
			TargetWeight:     60,
			FundingGoal:      decimal.NewFromInt(15000),
			CurrentFunding:   decimal.Zero,
			TotalHeads:       10,
			StartDate:        day,
			ExpectedDuration: 90,
			Status:           cyclesdomain.StatusPending,
			CreatedAt:        now.Add(-30 * time.Minute),
			UpdatedAt:        now.Add(-30 * time.Minute),
		},
		{
			ID:               DemoCompletedCycleID,
			BreederID:        DemoBreederID,
			AnimalType:       "عجول فريزيان",
			Insured:          true,
			InitialWeight:    300,
			TargetWeight:     500,
			FundingGoal:      decimal.NewFromInt(30000),
			CurrentFunding:   decimal.NewFromInt(30000),
			TotalHeads:       2,
			StartDate:        day.AddDate(0, 0, -190),
			ExpectedDuration: 180,
			Status:           cyclesdomain.StatusCompleted,
			FinalSalePrice:   decimal.NewNullDecimal(decimal.NewFromInt(45000)),
			ActualEndDate:    &endDate,
			CreatedAt:        now.Add(-3 * time.Hour),
			UpdatedAt:        now.Add(-3 * time.Hour),
		},
	} {
		s.data.cycles[cycle.ID] = cycle
	}

	for _, investment := range []investmentsdomain.Investment{
		demoInvestment("00000000-0000-4000-8000-000000000201", DemoActiveCycleID, decimal.NewFromInt(20000), now.Add(-80*time.Minute)),
		demoInvestment("00000000-0000-4000-8000-000000000202", DemoCompletedCycleID, decimal.NewFromInt(30000), day.AddDate(0, 0, -185)),
	} {
		s.data.investments[investment.ID] = investment
	}

	firstWeight, secondWeight := 262.5, 281.0
	for _, entry := range []cyclesdomain.Log{
		{ID: "00000000-0000-4000-8000-000000000301", CycleID: DemoActiveCycleID, Date: day.AddDate(0, 0, -14), Weight: &firstWeight, FoodDetails: "علف مركز 14% وتبن", CreatedAt: now.Add(-14 * 24 * time.Hour)},
		{ID: "00000000-0000-4000-8000-000000000302", CycleID: DemoActiveCycleID, Date: day.AddDate(0, 0, -1), Weight: &secondWeight, FoodDetails: "علف مركز وسيلاج ذرة", CreatedAt: now.Add(-24 * time.Hour)},
	} {
		s.data.logs[entry.ID] = entry
	}
}

func demoUser(id, name, phone string, role usersdomain.Role, status usersdomain.Status, createdAt time.Time) usersdomain.User {
	return usersdomain.User{
		ID:                id,
		Name:              name,
		Phone:             phone,
		Role:              role,
		Status:            status,
		DocumentsVerified: status == usersdomain.StatusActive,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
}

func demoInvestment(id, cycleID string, amount decimal.Decimal, date time.Time) investmentsdomain.Investment {
	return investmentsdomain.Investment{
		ID:         id,
		InvestorID: DemoInvestorID,
		CycleID:    cycleID,
		Amount:     amount,
		Date:       date,
		Status:     investmentsdomain.StatusApproved,
		CreatedAt:  date,
	}
}
