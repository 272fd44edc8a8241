package cycles

import (
	"errors"
	"net/http"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	usersdomain "livestock-invest-go/internal/domain/users"
	commonhandler "livestock-invest-go/internal/transport/httpserver/handler/common"
	"livestock-invest-go/internal/transport/httpserver/middleware"
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

func canView(user usersdomain.User, cycle cyclesdomain.Cycle) bool {
	return commonhandler.CanViewCycle(user, cycle)
}

// cycleID reads the cycle id from the path. Malformed ids are answered as an
// unknown cycle.
func (h *Handlers) cycleID(w http.ResponseWriter, r *http.Request, op string) (string, bool) {
	id, ok := commonhandler.PathID(r)
	if !ok {
		h.writeCycleError(w, op, cyclesdomain.ErrCycleNotFound, "cycle_id", id)
	}
	return id, ok
}

func (h *Handlers) writeCycleError(w http.ResponseWriter, op string, err error, args ...any) {
	switch {
	case errors.Is(err, cyclesdomain.ErrCycleNotFound):
		h.log.BusinessError(op+": cycle not found", err, args...)
		writeError(w, http.StatusNotFound, "cycle_not_found", "cycle not found")
	case errors.Is(err, cyclesdomain.ErrNotOwner):
		h.log.BusinessError(op+": not owner", err, args...)
		writeError(w, http.StatusForbidden, "forbidden", "cycle belongs to another breeder")
	case errors.Is(err, cyclesdomain.ErrBreederNotEligible):
		h.log.BusinessError(op+": breeder not eligible", err, args...)
		writeError(w, http.StatusForbidden, "breeder_not_eligible", err.Error())
	case errors.Is(err, cyclesdomain.ErrInvalidTransition):
		h.log.BusinessError(op+": invalid transition", err, args...)
		writeError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, cyclesdomain.ErrCycleNotActive):
		h.log.BusinessError(op+": cycle not active", err, args...)
		writeError(w, http.StatusConflict, "cycle_not_active", err.Error())
	case cyclesdomain.IsValidation(err):
		h.log.BusinessError(op+": invalid input", err, args...)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, usersdomain.ErrUserNotFound):
		h.log.BusinessError(op+": user not found", err, args...)
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
	default:
		h.log.InternalError(op+": failed", err, args...)
		commonhandler.WriteInternalError(w)
	}
}
