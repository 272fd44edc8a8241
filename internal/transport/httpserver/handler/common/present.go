package common

import (
	"time"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	usersdomain "livestock-invest-go/internal/domain/users"

	"github.com/shopspring/decimal"
)

type UserResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Role              string    `json:"role"`
	Status            string    `json:"status"`
	NationalID        *string   `json:"national_id"`
	BankIBAN          *string   `json:"bank_iban"`
	IDFrontRef        *string   `json:"id_front_ref"`
	IDBackRef         *string   `json:"id_back_ref"`
	DocumentsVerified bool      `json:"documents_verified"`
	CreatedAt         time.Time `json:"created_at"`
}

type CycleResponse struct {
	ID               string           `json:"id"`
	BreederID        string           `json:"breeder_id"`
	AnimalType       string           `json:"animal_type"`
	Description      string           `json:"description"`
	Insured          bool             `json:"insured"`
	InitialWeight    float64          `json:"initial_weight"`
	TargetWeight     float64          `json:"target_weight"`
	FundingGoal      decimal.Decimal  `json:"funding_goal"`
	CurrentFunding   decimal.Decimal  `json:"current_funding"`
	Remaining        decimal.Decimal  `json:"remaining"`
	FundingProgress  decimal.Decimal  `json:"funding_progress"`
	TotalHeads       int              `json:"total_heads"`
	StartDate        string           `json:"start_date"`
	ExpectedDuration int              `json:"expected_duration"`
	ExpectedEndDate  string           `json:"expected_end_date"`
	ImageRef         *string          `json:"image_ref"`
	Status           string           `json:"status"`
	FinalSalePrice   *decimal.Decimal `json:"final_sale_price"`
	ActualEndDate    *time.Time       `json:"actual_end_date"`
	CreatedAt        time.Time        `json:"created_at"`
}

type LogResponse struct {
	ID          string    `json:"id"`
	CycleID     string    `json:"cycle_id"`
	Date        string    `json:"date"`
	Weight      *float64  `json:"weight"`
	FoodDetails string    `json:"food_details"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToUserResponse(user usersdomain.User) UserResponse {
	return UserResponse{
		ID:                user.ID,
		Name:              user.Name,
		Phone:             user.Phone,
		Role:              string(user.Role),
		Status:            string(user.Status),
		NationalID:        user.NationalID,
		BankIBAN:          user.BankIBAN,
		IDFrontRef:        user.IDFrontRef,
		IDBackRef:         user.IDBackRef,
		DocumentsVerified: user.DocumentsVerified,
		CreatedAt:         user.CreatedAt,
	}
}

func ToUserListResponse(items []usersdomain.User) []UserResponse {
	result := make([]UserResponse, 0, len(items))
	for _, item := range items {
		result = append(result, ToUserResponse(item))
	}
	return result
}

func ToCycleResponse(cycle cyclesdomain.Cycle) CycleResponse {
	response := CycleResponse{
		ID:               cycle.ID,
		BreederID:        cycle.BreederID,
		AnimalType:       cycle.AnimalType,
		Description:      cycle.Description,
		Insured:          cycle.Insured,
		InitialWeight:    cycle.InitialWeight,
		TargetWeight:     cycle.TargetWeight,
		FundingGoal:      cycle.FundingGoal,
		CurrentFunding:   cycle.CurrentFunding,
		Remaining:        cycle.Remaining(),
		FundingProgress:  cycle.FundingProgress(),
		TotalHeads:       cycle.TotalHeads,
		StartDate:        cycle.StartDate.Format("2006-01-02"),
		ExpectedDuration: cycle.ExpectedDuration,
		ExpectedEndDate:  cycle.ExpectedEndDate().Format("2006-01-02"),
		ImageRef:         cycle.ImageRef,
		Status:           string(cycle.Status),
		ActualEndDate:    cycle.ActualEndDate,
		CreatedAt:        cycle.CreatedAt,
	}
	if cycle.FinalSalePrice.Valid {
		price := cycle.FinalSalePrice.Decimal
		response.FinalSalePrice = &price
	}
	return response
}

func ToCycleListResponse(items []cyclesdomain.Cycle) []CycleResponse {
	result := make([]CycleResponse, 0, len(items))
	for _, item := range items {
		result = append(result, ToCycleResponse(item))
	}
	return result
}

func ToLogResponse(entry cyclesdomain.Log) LogResponse {
	return LogResponse{
		ID:          entry.ID,
		CycleID:     entry.CycleID,
		Date:        entry.Date.Format("2006-01-02"),
		Weight:      entry.Weight,
		FoodDetails: entry.FoodDetails,
		Notes:       entry.Notes,
		CreatedAt:   entry.CreatedAt,
	}
}

// CanViewCycle hides pending and rejected cycles from everyone but admins and
// their breeder.
func CanViewCycle(user usersdomain.User, cycle cyclesdomain.Cycle) bool {
	if user.Role == usersdomain.RoleAdmin || cycle.BreederID == user.ID {
		return true
	}
	return cycle.Status == cyclesdomain.StatusActive || cycle.Status == cyclesdomain.StatusCompleted
}
