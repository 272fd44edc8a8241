package cycles

import (
	"encoding/json"
	"net/http"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"
)

type createCycleRequest struct {
	AnimalType       string          `json:"animal_type"`
	Description      string          `json:"description"`
	Insured          bool            `json:"insured"`
	InitialWeight    float64         `json:"initial_weight"`
	TargetWeight     float64         `json:"target_weight"`
	FundingGoal      json.RawMessage `json:"funding_goal"`
	TotalHeads       int             `json:"total_heads"`
	StartDate        string          `json:"start_date"`
	ExpectedDuration int             `json:"expected_duration"`
	ImageRef         string          `json:"image_ref"`
}

type cycleDetailResponse struct {
	commonhandler.CycleResponse
	CurrentWeight float64 `json:"current_weight"`
}

type cycleListResponse struct {
	Items []commonhandler.CycleResponse `json:"items"`
	Total int                           `json:"total"`
}

type riskSummaryResponse struct {
	CycleID  string `json:"cycle_id"`
	Summary  string `json:"summary"`
	Fallback bool   `json:"fallback"`
	Cached   bool   `json:"cached"`
}

// ListCycles returns the open investment opportunities.
func (h *Handlers) ListCycles(w http.ResponseWriter, r *http.Request) {
	items, err := h.Cycles.ListOpportunities(r.Context())
	if err != nil {
		h.log.InternalError("cycles.list: list failed", err)
		commonhandler.WriteInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, cycleListResponse{Items: commonhandler.ToCycleListResponse(items), Total: len(items)})
}

func (h *Handlers) ListBreederCycles(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	items, err := h.Cycles.ListByBreeder(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("cycles.list_breeder: list failed", err, "user_id", user.ID)
		commonhandler.WriteInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, cycleListResponse{Items: commonhandler.ToCycleListResponse(items), Total: len(items)})
}

func (h *Handlers) GetCycle(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	cycleID, ok := h.cycleID(w, r, "cycles.get")
	if !ok {
		return
	}

	cycle, err := h.Cycles.Get(r.Context(), cycleID)
	if err == nil && !canView(user, *cycle) {
		err = cyclesdomain.ErrCycleNotFound
	}
	if err != nil {
		h.writeCycleError(w, "cycles.get", err, "user_id", user.ID, "cycle_id", cycleID)
		return
	}

	logs, err := h.Cycles.ListLogs(r.Context(), cycle.ID)
	if err != nil {
		h.writeCycleError(w, "cycles.get", err, "user_id", user.ID, "cycle_id", cycleID)
		return
	}

	writeJSON(w, http.StatusOK, cycleDetailResponse{
		CycleResponse: commonhandler.ToCycleResponse(*cycle),
		CurrentWeight: cyclesdomain.CurrentWeight(*cycle, logs),
	})
}

func (h *Handlers) CreateCycle(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createCycleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	goal, err := commonhandler.ParseDecimal(commonhandler.DecimalText(req.FundingGoal))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", cyclesdomain.ErrInvalidFundingGoal.Error())
		return
	}
	startDate, err := commonhandler.ParseDateParam(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}

	cycle, err := h.Cycles.Create(r.Context(), cyclesdomain.CreateInput{
		BreederID:        user.ID,
		AnimalType:       req.AnimalType,
		Description:      req.Description,
		Insured:          req.Insured,
		InitialWeight:    req.InitialWeight,
		TargetWeight:     req.TargetWeight,
		FundingGoal:      goal,
		TotalHeads:       req.TotalHeads,
		StartDate:        startDate,
		ExpectedDuration: req.ExpectedDuration,
		ImageRef:         req.ImageRef,
	})
	if err != nil {
		h.writeCycleError(w, "cycles.create", err, "user_id", user.ID)
		return
	}

	h.recorder.ObserveCycleTransition(string(cycle.Status))
	writeJSON(w, http.StatusCreated, commonhandler.ToCycleResponse(*cycle))
}

func (h *Handlers) RiskSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	cycleID, ok := h.cycleID(w, r, "cycles.risk_summary")
	if !ok {
		return
	}

	cycle, err := h.Cycles.Get(r.Context(), cycleID)
	if err == nil && !canView(user, *cycle) {
		err = cyclesdomain.ErrCycleNotFound
	}
	if err != nil {
		h.writeCycleError(w, "cycles.risk_summary", err, "user_id", user.ID, "cycle_id", cycleID)
		return
	}

	summary := h.Risk.Summary(r.Context(), *cycle)
	writeJSON(w, http.StatusOK, riskSummaryResponse{
		CycleID:  cycle.ID,
		Summary:  summary.Text,
		Fallback: summary.Fallback,
		Cached:   summary.Cached,
	})
}
