// Package metrics exposes wagering and HTTP metrics for Prometheus.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fastprodman/wagerhouse/internal/wager"
)

// Metrics is a wager.ResultReporter that counts settled rounds.
type Metrics struct {
	gatherer prometheus.Gatherer

	rounds     *prometheus.CounterVec
	staked     *prometheus.CounterVec
	paidOut    *prometheus.CounterVec
	stakeSize  *prometheus.HistogramVec
	failures   *prometheus.CounterVec
	httpTotal  *prometheus.CounterVec
	httpMillis *prometheus.HistogramVec
}

var _ wager.ResultReporter = (*Metrics)(nil)

// New registers the collectors on reg. Passing a fresh registry keeps tests
// isolated from the process-wide default.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		rounds: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wager_rounds_total",
				Help: "Settled rounds by game and outcome",
			},
			[]string{"game", "outcome"},
		),
		staked: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wager_staked_points_total",
				Help: "Points staked on settled rounds by game",
			},
			[]string{"game"},
		),
		paidOut: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wager_paid_out_points_total",
				Help: "Points credited at settlement by game",
			},
			[]string{"game"},
		),
		stakeSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wager_stake_points",
				Help:    "Stake size per settled round",
				Buckets: prometheus.ExponentialBuckets(10, 2, 10),
			},
			[]string{"game"},
		),
		failures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wager_failures_total",
				Help: "Rejected or failed plays by game and reason",
			},
			[]string{"game", "reason"},
		),
		httpTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		httpMillis: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_ms",
				Help:    "HTTP request duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(5, 2, 10),
			},
			[]string{"route", "method"},
		),
	}
}

func (m *Metrics) Report(_ context.Context, res wager.Result) error {
	game := string(res.Kind)

	m.rounds.WithLabelValues(game, string(res.Outcome)).Inc()
	m.staked.WithLabelValues(game).Add(float64(res.Stake))
	m.paidOut.WithLabelValues(game).Add(float64(res.Payout))
	m.stakeSize.WithLabelValues(game).Observe(float64(res.Stake))

	return nil
}

// Failure counts a play that did not settle; reason is a short fixed label.
func (m *Metrics) Failure(kind wager.Kind, reason string) {
	m.failures.WithLabelValues(string(kind), reason).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency under the matched chi route
// pattern so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.httpMillis.WithLabelValues(route, r.Method).Observe(float64(time.Since(start).Milliseconds()))
	})
}
