package cycles

import (
	"encoding/json"
	"net/http"
	"strings"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"
)

type sellCycleRequest struct {
	FinalSalePrice json.RawMessage `json:"final_sale_price"`
}

func (h *Handlers) ListAdminCycles(w http.ResponseWriter, r *http.Request) {
	var filter cyclesdomain.ListFilter
	if value := strings.TrimSpace(r.URL.Query().Get("status")); value != "" {
		status, ok := cyclesdomain.ParseStatus(strings.ToUpper(value))
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid status")
			return
		}
		filter.Status = status
	}
	filter.BreederID = strings.TrimSpace(r.URL.Query().Get("breeder_id"))

	items, err := h.Cycles.List(r.Context(), filter)
	if err != nil {
		h.log.InternalError("admin.cycles.list: list failed", err)
		commonhandler.WriteInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, cycleListResponse{Items: commonhandler.ToCycleListResponse(items), Total: len(items)})
}

func (h *Handlers) ApproveCycle(w http.ResponseWriter, r *http.Request) {
	cycleID, ok := h.cycleID(w, r, "admin.cycles.approve")
	if !ok {
		return
	}
	cycle, err := h.Cycles.Approve(r.Context(), cycleID)
	if err != nil {
		h.writeCycleError(w, "admin.cycles.approve", err, "cycle_id", cycleID)
		return
	}
	h.recorder.ObserveCycleTransition(string(cycle.Status))
	writeJSON(w, http.StatusOK, commonhandler.ToCycleResponse(*cycle))
}

func (h *Handlers) RejectCycle(w http.ResponseWriter, r *http.Request) {
	cycleID, ok := h.cycleID(w, r, "admin.cycles.reject")
	if !ok {
		return
	}
	cycle, err := h.Cycles.Reject(r.Context(), cycleID)
	if err != nil {
		h.writeCycleError(w, "admin.cycles.reject", err, "cycle_id", cycleID)
		return
	}
	h.recorder.ObserveCycleTransition(string(cycle.Status))
	writeJSON(w, http.StatusOK, commonhandler.ToCycleResponse(*cycle))
}

func (h *Handlers) SellCycle(w http.ResponseWriter, r *http.Request) {
	cycleID, ok := h.cycleID(w, r, "admin.cycles.sell")
	if !ok {
		return
	}

	var req sellCycleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	price, err := commonhandler.ParseDecimal(commonhandler.DecimalText(req.FinalSalePrice))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", cyclesdomain.ErrInvalidSalePrice.Error())
		return
	}

	cycle, err := h.Cycles.Sell(r.Context(), cycleID, price)
	if err != nil {
		h.writeCycleError(w, "admin.cycles.sell", err, "cycle_id", cycleID)
		return
	}
	h.recorder.ObserveCycleTransition(string(cycle.Status))
	writeJSON(w, http.StatusOK, commonhandler.ToCycleResponse(*cycle))
}

func (h *Handlers) DeleteCycle(w http.ResponseWriter, r *http.Request) {
	cycleID, ok := h.cycleID(w, r, "admin.cycles.delete")
	if !ok {
		return
	}
	if err := h.Cycles.Delete(r.Context(), cycleID); err != nil {
		h.writeCycleError(w, "admin.cycles.delete", err, "cycle_id", cycleID)
		return
	}
	h.Risk.Invalidate(r.Context(), cycleID)
	w.WriteHeader(http.StatusNoContent)
}
