package investments

import (
	"fmt"
	"net/http"

	investmentsdomain "livestock-invest-go/internal/domain/investments"
	usersdomain "livestock-invest-go/internal/domain/users"
	"livestock-invest-go/internal/reports"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"

	"github.com/shopspring/decimal"
)

type settlementResponse struct {
	Cycle          commonhandler.CycleResponse `json:"cycle"`
	Payouts        []payoutResponse            `json:"payouts"`
	TotalInvested  decimal.Decimal             `json:"total_invested"`
	TotalValue     decimal.Decimal             `json:"total_value"`
	TotalProfit    decimal.Decimal             `json:"total_profit"`
	UnfundedShare  decimal.Decimal             `json:"unfunded_share"`
	InvestorsCount int                         `json:"investors_count"`
}

func (h *Handlers) Settlement(w http.ResponseWriter, r *http.Request) {
	cycleID, ok := h.cycleID(w, r, "admin.settlement")
	if !ok {
		return
	}

	report, err := h.Investments.Settlement(r.Context(), cycleID)
	if err != nil {
		h.writeInvestmentError(w, "admin.settlement", err, "cycle_id", cycleID)
		return
	}

	writeJSON(w, http.StatusOK, toSettlementResponse(*report))
}

func (h *Handlers) SettlementXLSX(w http.ResponseWriter, r *http.Request) {
	cycleID, ok := h.cycleID(w, r, "admin.settlement_xlsx")
	if !ok {
		return
	}

	report, err := h.Investments.Settlement(r.Context(), cycleID)
	if err != nil {
		h.writeInvestmentError(w, "admin.settlement_xlsx", err, "cycle_id", cycleID)
		return
	}

	investors, err := h.Users.List(r.Context(), usersdomain.ListFilter{Role: usersdomain.RoleInvestor})
	if err != nil {
		h.log.InternalError("admin.settlement_xlsx: list investors failed", err, "cycle_id", cycleID)
		commonhandler.WriteInternalError(w)
		return
	}
	names := make(map[string]string, len(investors))
	for _, investor := range investors {
		names[investor.ID] = investor.Name
	}

	f, err := reports.SettlementWorkbook(report, names)
	if err != nil {
		h.log.InternalError("admin.settlement_xlsx: render failed", err, "cycle_id", cycleID)
		commonhandler.WriteInternalError(w)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", reports.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="settlement-%s.xlsx"`, cycleID))
	w.WriteHeader(http.StatusOK)
	if err := f.Write(w); err != nil {
		h.log.InternalError("admin.settlement_xlsx: write failed", err, "cycle_id", cycleID)
	}
}

func toSettlementResponse(report investmentsdomain.SettlementReport) settlementResponse {
	resp := settlementResponse{
		Cycle:          commonhandler.ToCycleResponse(report.Cycle),
		Payouts:        make([]payoutResponse, 0, len(report.Payouts)),
		TotalInvested:  report.TotalInvested,
		TotalValue:     report.TotalValue,
		TotalProfit:    report.TotalProfit,
		UnfundedShare:  report.UnfundedShare,
		InvestorsCount: report.InvestorsCount,
	}
	for _, payout := range report.Payouts {
		resp.Payouts = append(resp.Payouts, toPayoutResponse(payout))
	}
	return resp
}
