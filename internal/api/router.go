package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fastprodman/wagerhouse/internal/metrics"
)

// NewRouter constructs a chi router with all API endpoints registered. m may
// be nil, in which case no metrics are recorded or served.
func NewRouter(svc Service, m *metrics.Metrics) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	if m != nil {
		r.Use(m.Middleware)
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/user/{userId}", func(r chi.Router) {
		r.Get("/balance", h.GetBalanceHandler)
		r.Get("/stats", h.GetStatsHandler)
		r.Post("/transaction", h.ProcessTransactionHandler)
		r.Post("/games/{game}", h.PlayHandler)
		r.Get("/rounds", h.ListRoundsHandler)
		r.Get("/rounds/{roundId}", h.GetRoundHandler)
		r.Post("/rounds/{roundId}/hit", h.HitHandler)
		r.Post("/rounds/{roundId}/stand", h.StandHandler)
	})

	return r
}
