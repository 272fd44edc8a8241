package investments

import (
	"encoding/json"
	"net/http"
	"time"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	investmentsdomain "livestock-invest-go/internal/domain/investments"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"

	"github.com/shopspring/decimal"
)

type investRequest struct {
	Amount     json.RawMessage `json:"amount"`
	ReceiptRef string          `json:"receipt_ref"`
}

type investmentResponse struct {
	ID         string          `json:"id"`
	InvestorID string          `json:"investor_id"`
	CycleID    string          `json:"cycle_id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Status     string          `json:"status"`
	ReceiptRef *string         `json:"receipt_ref,omitempty"`
}

type investResponse struct {
	Investment investmentResponse          `json:"investment"`
	Cycle      commonhandler.CycleResponse `json:"cycle"`
}

type investmentListResponse struct {
	Items []investmentResponse `json:"items"`
	Total int                  `json:"total"`
}

type payoutResponse struct {
	InvestmentID string          `json:"investment_id"`
	InvestorID   string          `json:"investor_id"`
	Amount       decimal.Decimal `json:"amount"`
	ShareRatio   decimal.Decimal `json:"share_ratio"`
	FinalValue   decimal.Decimal `json:"final_value"`
	Profit       decimal.Decimal `json:"profit"`
	ROI          decimal.Decimal `json:"roi"`
}

type holdingResponse struct {
	Investment investmentResponse          `json:"investment"`
	Cycle      commonhandler.CycleResponse `json:"cycle"`
	Payout     *payoutResponse             `json:"payout,omitempty"`
}

type portfolioResponse struct {
	Holdings       []holdingResponse `json:"holdings"`
	TotalInvested  decimal.Decimal   `json:"total_invested"`
	ActiveInvested decimal.Decimal   `json:"active_invested"`
	RealizedValue  decimal.Decimal   `json:"realized_value"`
	RealizedProfit decimal.Decimal   `json:"realized_profit"`
}

type previewResponse struct {
	CycleID        string          `json:"cycle_id"`
	Amount         decimal.Decimal `json:"amount"`
	Remaining      decimal.Decimal `json:"remaining"`
	Allowed        bool            `json:"allowed"`
	ShareRatio     decimal.Decimal `json:"share_ratio"`
	ProjectedValue decimal.Decimal `json:"projected_value"`
	ExpectedProfit decimal.Decimal `json:"expected_profit"`
}

func (h *Handlers) Invest(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	cycleID, ok := h.cycleID(w, r, "investments.invest")
	if !ok {
		return
	}

	var req investRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	amount, err := investmentsdomain.ParseAmount(commonhandler.DecimalText(req.Amount))
	if err != nil {
		h.recorder.ObserveInvestment("rejected", 0)
		h.writeInvestmentError(w, "investments.invest", err, "user_id", user.ID, "cycle_id", cycleID)
		return
	}

	result, err := h.Investments.Invest(r.Context(), investmentsdomain.InvestInput{
		InvestorID: user.ID,
		CycleID:    cycleID,
		Amount:     amount,
		ReceiptRef: req.ReceiptRef,
	})
	if err != nil {
		h.recorder.ObserveInvestment("rejected", 0)
		h.writeInvestmentError(w, "investments.invest", err, "user_id", user.ID, "cycle_id", cycleID, "amount", amount.String())
		return
	}

	h.recorder.ObserveInvestment("accepted", amountFloat(result.Investment.Amount))
	h.log.Info("investment recorded",
		"user_id", user.ID,
		"cycle_id", cycleID,
		"amount", result.Investment.Amount.String(),
		"funding", result.Cycle.CurrentFunding.String(),
	)
	writeJSON(w, http.StatusCreated, investResponse{
		Investment: toInvestmentResponse(result.Investment),
		Cycle:      commonhandler.ToCycleResponse(result.Cycle),
	})
}

func (h *Handlers) Portfolio(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	portfolio, err := h.Investments.Portfolio(r.Context(), user.ID)
	if err != nil {
		h.writeInvestmentError(w, "investments.portfolio", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toPortfolioResponse(*portfolio))
}

func (h *Handlers) Preview(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	cycleID, ok := h.cycleID(w, r, "investments.preview")
	if !ok {
		return
	}

	cycle, err := h.Cycles.Get(r.Context(), cycleID)
	if err == nil && !commonhandler.CanViewCycle(user, *cycle) {
		err = cyclesdomain.ErrCycleNotFound
	}
	if err != nil {
		h.writeInvestmentError(w, "investments.preview", err, "user_id", user.ID, "cycle_id", cycleID)
		return
	}

	query := r.URL.Query()
	amount, err := commonhandler.ParseDecimal(query.Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_amount", investmentsdomain.ErrInvalidAmount.Error())
		return
	}
	projected, err := commonhandler.ParseDecimal(query.Get("projected_price"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", investmentsdomain.ErrInvalidProjectedSale.Error())
		return
	}

	preview, err := h.Investments.Preview(r.Context(), cycleID, amount, projected)
	if err != nil {
		h.writeInvestmentError(w, "investments.preview", err, "user_id", user.ID, "cycle_id", cycleID)
		return
	}

	writeJSON(w, http.StatusOK, previewResponse{
		CycleID:        preview.CycleID,
		Amount:         preview.Amount,
		Remaining:      preview.Remaining,
		Allowed:        preview.Allowed,
		ShareRatio:     preview.ShareRatio,
		ProjectedValue: preview.ProjectedValue,
		ExpectedProfit: preview.ExpectedProfit,
	})
}

func (h *Handlers) ListByCycle(w http.ResponseWriter, r *http.Request) {
	cycleID, ok := h.cycleID(w, r, "admin.investments.list")
	if !ok {
		return
	}

	items, err := h.Investments.ListByCycle(r.Context(), cycleID)
	if err != nil {
		h.writeInvestmentError(w, "admin.investments.list", err, "cycle_id", cycleID)
		return
	}

	resp := investmentListResponse{Items: make([]investmentResponse, 0, len(items)), Total: len(items)}
	for _, item := range items {
		resp.Items = append(resp.Items, toInvestmentResponse(item))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toInvestmentResponse(item investmentsdomain.Investment) investmentResponse {
	return investmentResponse{
		ID:         item.ID,
		InvestorID: item.InvestorID,
		CycleID:    item.CycleID,
		Amount:     item.Amount,
		Date:       item.Date,
		Status:     string(item.Status),
		ReceiptRef: item.ReceiptRef,
	}
}

func toPayoutResponse(payout investmentsdomain.Payout) payoutResponse {
	return payoutResponse{
		InvestmentID: payout.InvestmentID,
		InvestorID:   payout.InvestorID,
		Amount:       payout.Amount,
		ShareRatio:   payout.ShareRatio,
		FinalValue:   payout.FinalValue,
		Profit:       payout.Profit,
		ROI:          payout.ROI,
	}
}

func toPortfolioResponse(portfolio investmentsdomain.Portfolio) portfolioResponse {
	resp := portfolioResponse{
		Holdings:       make([]holdingResponse, 0, len(portfolio.Holdings)),
		TotalInvested:  portfolio.TotalInvested,
		ActiveInvested: portfolio.ActiveInvested,
		RealizedValue:  portfolio.RealizedValue,
		RealizedProfit: portfolio.RealizedProfit,
	}
	for _, holding := range portfolio.Holdings {
		item := holdingResponse{
			Investment: toInvestmentResponse(holding.Investment),
			Cycle:      commonhandler.ToCycleResponse(holding.Cycle),
		}
		if holding.Payout != nil {
			payout := toPayoutResponse(*holding.Payout)
			item.Payout = &payout
		}
		resp.Holdings = append(resp.Holdings, item)
	}
	return resp
}
