package accounts

import (
	"errors"
	"net/http"

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

func (h *Handlers) userID(w http.ResponseWriter, r *http.Request, op string) (string, bool) {
	id, ok := commonhandler.PathID(r)
	if !ok {
		h.writeUserError(w, op, usersdomain.ErrUserNotFound, "target_user_id", id)
	}
	return id, ok
}

// writeUserError maps users domain errors to responses.
func (h *Handlers) writeUserError(w http.ResponseWriter, op string, err error, args ...any) {
	switch {
	case errors.Is(err, usersdomain.ErrUserNotFound):
		h.log.BusinessError(op+": user not found", err, args...)
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
	case errors.Is(err, usersdomain.ErrPhoneTaken):
		h.log.BusinessError(op+": phone taken", err, args...)
		writeError(w, http.StatusConflict, "phone_taken", "phone already registered")
	case errors.Is(err, usersdomain.ErrInvalidPhone):
		h.log.BusinessError(op+": invalid phone", err, args...)
		writeError(w, http.StatusBadRequest, "invalid_phone", "phone must be 11 digits")
	case errors.Is(err, usersdomain.ErrInvalidName):
		h.log.BusinessError(op+": invalid name", err, args...)
		writeError(w, http.StatusBadRequest, "invalid_name", "name is invalid")
	case errors.Is(err, usersdomain.ErrInvalidRole):
		h.log.BusinessError(op+": invalid role", err, args...)
		writeError(w, http.StatusBadRequest, "invalid_role", "role is invalid")
	case errors.Is(err, usersdomain.ErrInvalidTransition):
		h.log.BusinessError(op+": user not pending", err, args...)
		writeError(w, http.StatusConflict, "invalid_transition", "user is not pending")
	default:
		h.log.InternalError(op+": failed", err, args...)
		commonhandler.WriteInternalError(w)
	}
}
