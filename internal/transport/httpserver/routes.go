package httpserver

import (
	"net/http"
	"time"

	"livestock-invest-go/internal/config"
	usersdomain "livestock-invest-go/internal/domain/users"
	"livestock-invest-go/internal/metrics"
	"livestock-invest-go/internal/transport/httpserver/handler"
	authmw "livestock-invest-go/internal/transport/httpserver/middleware"
	"livestock-invest-go/pkg/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the API. m may be nil, in which case /metrics is not served.
func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.TokenAuth, m *metrics.Metrics, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)
		r.Post("/auth/register", handlers.Accounts.Register)
		r.Post("/auth/login", handlers.Accounts.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Common.AuthMe)
			r.Patch("/profile", handlers.Accounts.UpdateProfile)
			r.Get("/dashboard", handlers.Accounts.Dashboard)

			r.Get("/cycles", handlers.Cycles.ListCycles)
			r.Get("/cycles/{id}", handlers.Cycles.GetCycle)
			r.Get("/cycles/{id}/logs", handlers.Cycles.ListLogs)
			r.Get("/cycles/{id}/risk-summary", handlers.Cycles.RiskSummary)
			r.Get("/cycles/{id}/preview", handlers.Investments.Preview)

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireRole(usersdomain.RoleBreeder))

				r.Post("/cycles", handlers.Cycles.CreateCycle)
				r.Get("/breeder/cycles", handlers.Cycles.ListBreederCycles)
				r.Post("/cycles/{id}/logs", handlers.Cycles.AddLog)
			})

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireRole(usersdomain.RoleInvestor))

				r.Post("/cycles/{id}/investments", handlers.Investments.Invest)
				r.Get("/investor/portfolio", handlers.Investments.Portfolio)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(authmw.RequireRole(usersdomain.RoleAdmin))

				r.Get("/users", handlers.Accounts.ListUsers)
				r.Post("/users", handlers.Accounts.CreateUser)
				r.Post("/users/{id}/approve", handlers.Accounts.ApproveUser)
				r.Post("/users/{id}/reject", handlers.Accounts.RejectUser)

				r.Get("/cycles", handlers.Cycles.ListAdminCycles)
				r.Post("/cycles/{id}/approve", handlers.Cycles.ApproveCycle)
				r.Post("/cycles/{id}/reject", handlers.Cycles.RejectCycle)
				r.Post("/cycles/{id}/sell", handlers.Cycles.SellCycle)
				r.Delete("/cycles/{id}", handlers.Cycles.DeleteCycle)
				r.Get("/cycles/{id}/investments", handlers.Investments.ListByCycle)
				r.Get("/cycles/{id}/settlement", handlers.Investments.Settlement)
				r.Get("/cycles/{id}/settlement.xlsx", handlers.Investments.SettlementXLSX)
			})
		})
	})

	return r
}
