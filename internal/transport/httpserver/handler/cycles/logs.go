package cycles

import (
	"net/http"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"
)

type addLogRequest struct {
	Weight      *float64 `json:"weight"`
	FoodDetails string   `json:"food_details"`
	Notes       string   `json:"notes"`
}

type logListResponse struct {
	Items         []commonhandler.LogResponse `json:"items"`
	Total         int                         `json:"total"`
	CurrentWeight float64                     `json:"current_weight"`
}

func (h *Handlers) AddLog(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	cycleID, ok := h.cycleID(w, r, "cycles.add_log")
	if !ok {
		return
	}

	var req addLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	entry, err := h.Cycles.AddLog(r.Context(), cyclesdomain.AddLogInput{
		BreederID:   user.ID,
		CycleID:     cycleID,
		Weight:      req.Weight,
		FoodDetails: req.FoodDetails,
		Notes:       req.Notes,
	})
	if err != nil {
		h.writeCycleError(w, "cycles.add_log", err, "user_id", user.ID, "cycle_id", cycleID)
		return
	}

	writeJSON(w, http.StatusCreated, commonhandler.ToLogResponse(*entry))
}

func (h *Handlers) ListLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	cycleID, ok := h.cycleID(w, r, "cycles.list_logs")
	if !ok {
		return
	}

	cycle, err := h.Cycles.Get(r.Context(), cycleID)
	if err == nil && !canView(user, *cycle) {
		err = cyclesdomain.ErrCycleNotFound
	}
	if err != nil {
		h.writeCycleError(w, "cycles.list_logs", err, "user_id", user.ID, "cycle_id", cycleID)
		return
	}

	logs, err := h.Cycles.ListLogs(r.Context(), cycleID)
	if err != nil {
		h.writeCycleError(w, "cycles.list_logs", err, "user_id", user.ID, "cycle_id", cycleID)
		return
	}

	items := make([]commonhandler.LogResponse, 0, len(logs))
	for _, entry := range logs {
		items = append(items, commonhandler.ToLogResponse(entry))
	}
	writeJSON(w, http.StatusOK, logListResponse{
		Items:         items,
		Total:         len(items),
		CurrentWeight: cyclesdomain.CurrentWeight(*cycle, logs),
	})
}
