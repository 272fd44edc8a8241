package cycles

import (
	"context"
	"errors"
	"testing"
	"time"

	usersdomain "livestock-invest-go/internal/domain/users"

	"github.com/shopspring/decimal"
)

type fakeCyclesRepo struct {
	cycles      map[string]*Cycle
	logs        map[string][]Log
	investments map[string]int64
}

func newFakeCyclesRepo() *fakeCyclesRepo {
	return &fakeCyclesRepo{
		cycles:      make(map[string]*Cycle),
		logs:        make(map[string][]Log),
		investments: make(map[string]int64),
	}
}

func (r *fakeCyclesRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeCyclesRepo) GetCycle(ctx context.Context, cycleID string) (*Cycle, error) {
	cycle, ok := r.cycles[cycleID]
	if !ok {
		return nil, ErrCycleNotFound
	}
	copied := *cycle
	return &copied, nil
}

func (r *fakeCyclesRepo) GetCycleForUpdate(ctx context.Context, cycleID string) (*Cycle, error) {
	return r.GetCycle(ctx, cycleID)
}

func (r *fakeCyclesRepo) ListCycles(ctx context.Context, filter ListFilter) ([]Cycle, error) {
	result := make([]Cycle, 0)
	for _, cycle := range r.cycles {
		if filter.Status != "" && cycle.Status != filter.Status {
			continue
		}
		if filter.BreederID != "" && cycle.BreederID != filter.BreederID {
			continue
		}
		result = append(result, *cycle)
	}
	return result, nil
}

func (r *fakeCyclesRepo) CreateCycle(ctx context.Context, cycle *Cycle) error {
	copied := *cycle
	r.cycles[cycle.ID] = &copied
	return nil
}

func (r *fakeCyclesRepo) UpdateCycle(ctx context.Context, cycle *Cycle) error {
	copied := *cycle
	r.cycles[cycle.ID] = &copied
	return nil
}

func (r *fakeCyclesRepo) DeleteCycle(ctx context.Context, cycleID string) error {
	delete(r.cycles, cycleID)
	delete(r.logs, cycleID)
	delete(r.investments, cycleID)
	return nil
}

func (r *fakeCyclesRepo) CreateLog(ctx context.Context, log *Log) error {
	r.logs[log.CycleID] = append(r.logs[log.CycleID], *log)
	return nil
}

func (r *fakeCyclesRepo) ListLogs(ctx context.Context, cycleID string) ([]Log, error) {
	return append([]Log(nil), r.logs[cycleID]...), nil
}

type fakeDirectory map[string]usersdomain.User

func (d fakeDirectory) Get(ctx context.Context, userID string) (*usersdomain.User, error) {
	user, ok := d[userID]
	if !ok {
		return nil, usersdomain.ErrUserNotFound
	}
	return &user, nil
}

type recordingWarmer struct {
	warmed []string
}

func (w *recordingWarmer) Warm(cycle Cycle) {
	w.warmed = append(w.warmed, cycle.ID)
}

func newDirectory() fakeDirectory {
	return fakeDirectory{
		"breeder-1": {ID: "breeder-1", Role: usersdomain.RoleBreeder, Status: usersdomain.StatusActive},
		"breeder-2": {ID: "breeder-2", Role: usersdomain.RoleBreeder, Status: usersdomain.StatusPending},
		"investor":  {ID: "investor", Role: usersdomain.RoleInvestor, Status: usersdomain.StatusActive},
	}
}

func validCreateInput() CreateInput {
	return CreateInput{
		BreederID:        "breeder-1",
		AnimalType:       " عجول بقري ",
		InitialWeight:    250,
		TargetWeight:     450,
		FundingGoal:      decimal.NewFromInt(30000),
		TotalHeads:       2,
		ExpectedDuration: 180,
	}
}

func TestCreateCyclePending(t *testing.T) {
	repo := newFakeCyclesRepo()
	warmer := &recordingWarmer{}
	svc := NewService(repo, newDirectory(), warmer)

	cycle, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cycle.Status != StatusPending {
		t.Fatalf("expected PENDING, got %s", cycle.Status)
	}
	if !cycle.CurrentFunding.IsZero() {
		t.Fatalf("expected zero funding, got %s", cycle.CurrentFunding)
	}
	if cycle.AnimalType != "عجول بقري" {
		t.Fatalf("expected trimmed animal type, got %q", cycle.AnimalType)
	}
	if cycle.FinalSalePrice.Valid {
		t.Fatalf("expected no final sale price on creation")
	}
	if len(warmer.warmed) != 1 || warmer.warmed[0] != cycle.ID {
		t.Fatalf("expected risk warm-up for new cycle, got %v", warmer.warmed)
	}
}

func TestCreateCycleValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateInput)
		want   error
	}{
		{"zero goal", func(in *CreateInput) { in.FundingGoal = decimal.Zero }, ErrInvalidFundingGoal},
		{"negative goal", func(in *CreateInput) { in.FundingGoal = decimal.NewFromInt(-5) }, ErrInvalidFundingGoal},
		{"target below initial", func(in *CreateInput) { in.TargetWeight = 100 }, ErrInvalidWeights},
		{"no animal", func(in *CreateInput) { in.AnimalType = "  " }, ErrInvalidAnimalType},
		{"no heads", func(in *CreateInput) { in.TotalHeads = 0 }, ErrInvalidHeads},
		{"no duration", func(in *CreateInput) { in.ExpectedDuration = 0 }, ErrInvalidDuration},
		{"pending breeder", func(in *CreateInput) { in.BreederID = "breeder-2" }, ErrBreederNotEligible},
		{"investor as breeder", func(in *CreateInput) { in.BreederID = "investor" }, ErrBreederNotEligible},
		{"unknown breeder", func(in *CreateInput) { in.BreederID = "ghost" }, usersdomain.ErrUserNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeCyclesRepo()
			svc := NewService(repo, newDirectory(), nil)
			input := validCreateInput()
			tc.mutate(&input)

			_, err := svc.Create(context.Background(), input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(repo.cycles) != 0 {
				t.Fatalf("expected nothing stored")
			}
		})
	}
}

func TestApproveRejectGate(t *testing.T) {
	repo := newFakeCyclesRepo()
	repo.cycles["c-1"] = &Cycle{ID: "c-1", Status: StatusPending}
	repo.cycles["c-2"] = &Cycle{ID: "c-2", Status: StatusPending}
	svc := NewService(repo, newDirectory(), nil)

	if _, err := svc.Approve(context.Background(), "c-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.cycles["c-1"].Status != StatusActive {
		t.Fatalf("expected ACTIVE")
	}
	if _, err := svc.Reject(context.Background(), "c-2"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.cycles["c-2"].Status != StatusRejected {
		t.Fatalf("expected REJECTED")
	}

	if _, err := svc.Approve(context.Background(), "c-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on active cycle, got %v", err)
	}
	if _, err := svc.Approve(context.Background(), "c-2"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on rejected cycle, got %v", err)
	}
	if repo.cycles["c-2"].Status != StatusRejected {
		t.Fatalf("expected rejected cycle unchanged")
	}
}

func TestSellCompletesCycle(t *testing.T) {
	repo := newFakeCyclesRepo()
	repo.cycles["c-1"] = &Cycle{
		ID:             "c-1",
		Status:         StatusActive,
		FundingGoal:    decimal.NewFromInt(30000),
		CurrentFunding: decimal.NewFromInt(30000),
	}
	svc := NewService(repo, newDirectory(), nil)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	sold, err := svc.Sell(context.Background(), "c-1", decimal.NewFromInt(45000))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sold.Status != StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", sold.Status)
	}
	if !sold.FinalSalePrice.Valid || !sold.FinalSalePrice.Decimal.Equal(decimal.NewFromInt(45000)) {
		t.Fatalf("expected final sale price 45000, got %+v", sold.FinalSalePrice)
	}
	if !sold.CurrentFunding.Equal(decimal.NewFromInt(30000)) {
		t.Fatalf("expected funding unchanged, got %s", sold.CurrentFunding)
	}
	if sold.ActualEndDate == nil || !sold.ActualEndDate.Equal(fixed) {
		t.Fatalf("expected actual end date set, got %v", sold.ActualEndDate)
	}
}

func TestSellRejectsBadInput(t *testing.T) {
	repo := newFakeCyclesRepo()
	repo.cycles["pending"] = &Cycle{ID: "pending", Status: StatusPending, FundingGoal: decimal.NewFromInt(10)}
	repo.cycles["active"] = &Cycle{ID: "active", Status: StatusActive, FundingGoal: decimal.NewFromInt(10)}
	svc := NewService(repo, newDirectory(), nil)

	if _, err := svc.Sell(context.Background(), "active", decimal.Zero); !errors.Is(err, ErrInvalidSalePrice) {
		t.Fatalf("expected ErrInvalidSalePrice, got %v", err)
	}
	if _, err := svc.Sell(context.Background(), "pending", decimal.NewFromInt(100)); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if repo.cycles["active"].Status != StatusActive || repo.cycles["active"].FinalSalePrice.Valid {
		t.Fatalf("expected active cycle untouched")
	}
}

func TestDeleteRules(t *testing.T) {
	repo := newFakeCyclesRepo()
	repo.cycles["pending"] = &Cycle{ID: "pending", Status: StatusPending}
	repo.cycles["funded"] = &Cycle{ID: "funded", Status: StatusActive}
	repo.cycles["empty"] = &Cycle{ID: "empty", Status: StatusActive}
	repo.cycles["done"] = &Cycle{ID: "done", Status: StatusCompleted}
	repo.investments["funded"] = 2
	repo.investments["done"] = 3
	svc := NewService(repo, newDirectory(), nil)

	if err := svc.Delete(context.Background(), "pending"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := svc.Delete(context.Background(), "funded"); err != nil {
		t.Fatalf("expected funded active cycle deleted, got %v", err)
	}
	if _, ok := repo.investments["funded"]; ok {
		t.Fatalf("expected investments of the active cycle removed")
	}
	if err := svc.Delete(context.Background(), "empty"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.Delete(context.Background(), "done"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.cycles["done"]; ok {
		t.Fatalf("expected completed cycle deleted")
	}
	if _, ok := repo.investments["done"]; ok {
		t.Fatalf("expected investments removed with cycle")
	}
	if err := svc.Delete(context.Background(), "ghost"); !errors.Is(err, ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound, got %v", err)
	}
}

func TestAddLogAndCurrentWeight(t *testing.T) {
	repo := newFakeCyclesRepo()
	repo.cycles["c-1"] = &Cycle{ID: "c-1", BreederID: "breeder-1", Status: StatusActive, InitialWeight: 250}
	svc := NewService(repo, newDirectory(), nil)

	day := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	weight := 280.0
	entry, err := svc.AddLog(context.Background(), AddLogInput{
		BreederID:   "breeder-1",
		CycleID:     "c-1",
		Weight:      &weight,
		FoodDetails: " علف مركز ١٠ كجم ",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !entry.Date.Equal(time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected date truncated to day, got %s", entry.Date)
	}

	_, err = svc.AddLog(context.Background(), AddLogInput{BreederID: "breeder-2", CycleID: "c-1", FoodDetails: "x"})
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	_, err = svc.AddLog(context.Background(), AddLogInput{BreederID: "breeder-1", CycleID: "c-1", FoodDetails: " "})
	if !errors.Is(err, ErrFoodDetailsRequired) {
		t.Fatalf("expected ErrFoodDetailsRequired, got %v", err)
	}

	cycle := *repo.cycles["c-1"]
	logs, err := svc.ListLogs(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := CurrentWeight(cycle, logs); got != 280 {
		t.Fatalf("expected current weight 280, got %v", got)
	}
}

func TestAddLogRequiresActiveCycle(t *testing.T) {
	repo := newFakeCyclesRepo()
	repo.cycles["c-1"] = &Cycle{ID: "c-1", BreederID: "breeder-1", Status: StatusCompleted}
	svc := NewService(repo, newDirectory(), nil)

	_, err := svc.AddLog(context.Background(), AddLogInput{BreederID: "breeder-1", CycleID: "c-1", FoodDetails: "hay"})
	if !errors.Is(err, ErrCycleNotActive) {
		t.Fatalf("expected ErrCycleNotActive, got %v", err)
	}
}

func TestCurrentWeightUsesDateNotInsertionOrder(t *testing.T) {
	cycle := Cycle{InitialWeight: 200}
	if got := CurrentWeight(cycle, nil); got != 200 {
		t.Fatalf("expected fallback to initial weight, got %v", got)
	}

	w1, w2 := 310.0, 290.0
	logs := []Log{
		{ID: "newer", Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Weight: &w1},
		{ID: "older", Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Weight: &w2},
		{ID: "no-weight", Date: time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC)},
	}
	if got := CurrentWeight(cycle, logs); got != 310 {
		t.Fatalf("expected weight of latest dated log, got %v", got)
	}

	SortLogs(logs)
	if logs[0].ID != "no-weight" || logs[2].ID != "older" {
		t.Fatalf("expected logs sorted by date desc, got %s,%s,%s", logs[0].ID, logs[1].ID, logs[2].ID)
	}
}

func TestFundingProgress(t *testing.T) {
	cycle := Cycle{FundingGoal: decimal.NewFromInt(6000), CurrentFunding: decimal.NewFromInt(2000)}
	if !cycle.Remaining().Equal(decimal.NewFromInt(4000)) {
		t.Fatalf("expected remaining 4000, got %s", cycle.Remaining())
	}
	if !cycle.FundingProgress().Equal(decimal.RequireFromString("33.33")) {
		t.Fatalf("expected progress 33.33, got %s", cycle.FundingProgress())
	}
}
