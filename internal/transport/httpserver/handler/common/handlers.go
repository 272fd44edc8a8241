package common

import (
	"net/http"

	"livestock-invest-go/internal/transport/httpserver/middleware"
	"livestock-invest-go/pkg/logger"
)

// Recorder receives domain events worth counting.
type Recorder interface {
	ObserveInvestment(outcome string, amount float64)
	ObserveCycleTransition(status string)
	ObserveLogin(outcome string)
}

type NopRecorder struct{}

func (NopRecorder) ObserveInvestment(string, float64) {}
func (NopRecorder) ObserveCycleTransition(string)     {}
func (NopRecorder) ObserveLogin(string)               {}

type Handlers struct {
	log logger.Logger
}

func New(log logger.Logger) *Handlers {
	return &Handlers{log: log}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w)
		return
	}

	writeJSON(w, http.StatusOK, ToUserResponse(user))
}
