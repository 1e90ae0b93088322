package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fastprodman/wagerhouse/internal/metrics"
)

// NewServer creates and returns a configured *http.Server for the casino API.
func NewServer(port uint16, svc Service, m *metrics.Metrics) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewRouter(svc, m),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
