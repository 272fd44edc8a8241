package accounts

import (
	"net/http"

	dashboarddomain "livestock-invest-go/internal/domain/dashboard"
	usersdomain "livestock-invest-go/internal/domain/users"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"

	"github.com/shopspring/decimal"
)

type updateProfileRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	NationalID *string `json:"national_id"`
	BankIBAN   *string `json:"bank_iban"`
}

type breederCycleResponse struct {
	commonhandler.CycleResponse
	CurrentWeight float64 `json:"current_weight"`
}

type dashboardResponse struct {
	Role string `json:"role"`

	PendingUsers    *int `json:"pending_users,omitempty"`
	PendingCycles   *int `json:"pending_cycles,omitempty"`
	ActiveCycles    *int `json:"active_cycles,omitempty"`
	CompletedCycles *int `json:"completed_cycles,omitempty"`

	TotalFunded    *decimal.Decimal `json:"total_funded,omitempty"`
	TotalInvested  *decimal.Decimal `json:"total_invested,omitempty"`
	ActiveInvested *decimal.Decimal `json:"active_invested,omitempty"`
	RealizedValue  *decimal.Decimal `json:"realized_value,omitempty"`
	RealizedProfit *decimal.Decimal `json:"realized_profit,omitempty"`

	Cycles        []breederCycleResponse        `json:"cycles,omitempty"`
	Opportunities []commonhandler.CycleResponse `json:"opportunities,omitempty"`
	Holdings      *int                          `json:"holdings,omitempty"`
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	updated, err := h.Users.UpdateProfile(r.Context(), user.ID, usersdomain.ProfileInput{
		Name:       req.Name,
		Phone:      req.Phone,
		NationalID: req.NationalID,
		BankIBAN:   req.BankIBAN,
	})
	if err != nil {
		h.writeUserError(w, "profile.update", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, commonhandler.ToUserResponse(*updated))
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	result, err := h.Dashboards.Build(r.Context(), user)
	if err != nil {
		h.log.InternalError("dashboard.get: build failed", err, "user_id", user.ID, "role", user.Role)
		commonhandler.WriteInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, toDashboardResponse(result))
}

func toDashboardResponse(result dashboarddomain.Dashboard) dashboardResponse {
	response := dashboardResponse{Role: string(result.Role())}

	switch d := result.(type) {
	case dashboarddomain.AdminDashboard:
		response.PendingUsers = &d.PendingUsers
		response.PendingCycles = &d.PendingCycles
		response.ActiveCycles = &d.ActiveCycles
		response.CompletedCycles = &d.CompletedCycles
		response.TotalFunded = &d.TotalFunded
		response.RealizedProfit = &d.RealizedProfit
	case dashboarddomain.BreederDashboard:
		response.ActiveCycles = &d.ActiveCycles
		response.TotalFunded = &d.TotalFunded
		response.Cycles = make([]breederCycleResponse, 0, len(d.Cycles))
		for _, item := range d.Cycles {
			response.Cycles = append(response.Cycles, breederCycleResponse{
				CycleResponse: commonhandler.ToCycleResponse(item.Cycle),
				CurrentWeight: item.CurrentWeight,
			})
		}
	case dashboarddomain.InvestorDashboard:
		response.Opportunities = commonhandler.ToCycleListResponse(d.Opportunities)
		response.Holdings = &d.Holdings
		response.TotalInvested = &d.TotalInvested
		response.ActiveInvested = &d.ActiveInvested
		response.RealizedValue = &d.RealizedValue
		response.RealizedProfit = &d.RealizedProfit
	}

	return response
}
