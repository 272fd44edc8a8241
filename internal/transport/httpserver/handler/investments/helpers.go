package investments

import (
	"errors"
	"net/http"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	investmentsdomain "livestock-invest-go/internal/domain/investments"
	usersdomain "livestock-invest-go/internal/domain/users"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"
	"livestock-invest-go/internal/transport/httpserver/middleware"

	"github.com/shopspring/decimal"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}

func currentUser(w http.ResponseWriter, r *http.Request) (usersdomain.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
	}
	return user, ok
}

func amountFloat(value decimal.Decimal) float64 {
	f, _ := value.Float64()
	return f
}

func (h *Handlers) cycleID(w http.ResponseWriter, r *http.Request, op string) (string, bool) {
	id, ok := commonhandler.PathID(r)
	if !ok {
		h.writeInvestmentError(w, op, cyclesdomain.ErrCycleNotFound, "cycle_id", id)
	}
	return id, ok
}

func (h *Handlers) writeInvestmentError(w http.ResponseWriter, op string, err error, args ...any) {
	switch {
	case errors.Is(err, investmentsdomain.ErrInvalidAmount):
		h.log.BusinessError(op+": invalid amount", err, args...)
		writeError(w, http.StatusBadRequest, "invalid_amount", err.Error())
	case errors.Is(err, investmentsdomain.ErrInvalidProjectedSale):
		h.log.BusinessError(op+": invalid projected price", err, args...)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, investmentsdomain.ErrExceedsRemaining):
		h.log.BusinessError(op+": exceeds remaining", err, args...)
		writeError(w, http.StatusConflict, "exceeds_remaining", err.Error())
	case errors.Is(err, investmentsdomain.ErrCycleFullyFunded):
		h.log.BusinessError(op+": fully funded", err, args...)
		writeError(w, http.StatusConflict, "cycle_fully_funded", err.Error())
	case errors.Is(err, investmentsdomain.ErrCycleNotCompleted):
		h.log.BusinessError(op+": cycle not completed", err, args...)
		writeError(w, http.StatusConflict, "cycle_not_completed", err.Error())
	case errors.Is(err, investmentsdomain.ErrInvestorNotEligible):
		h.log.BusinessError(op+": investor not eligible", err, args...)
		writeError(w, http.StatusForbidden, "investor_not_eligible", err.Error())
	case errors.Is(err, cyclesdomain.ErrCycleNotActive):
		h.log.BusinessError(op+": cycle not active", err, args...)
		writeError(w, http.StatusConflict, "cycle_not_active", err.Error())
	case errors.Is(err, cyclesdomain.ErrInvalidFundingGoal):
		h.log.BusinessError(op+": invalid funding goal", err, args...)
		writeError(w, http.StatusConflict, "invalid_funding_goal", err.Error())
	case errors.Is(err, cyclesdomain.ErrCycleNotFound):
		h.log.BusinessError(op+": cycle not found", err, args...)
		writeError(w, http.StatusNotFound, "cycle_not_found", "cycle not found")
	case errors.Is(err, usersdomain.ErrUserNotFound):
		h.log.BusinessError(op+": user not found", err, args...)
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
	default:
		h.log.InternalError(op+": failed", err, args...)
		commonhandler.WriteInternalError(w)
	}
}
