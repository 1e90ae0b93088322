package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/fastprodman/wagerhouse/internal/api"
	"github.com/fastprodman/wagerhouse/internal/config"
	"github.com/fastprodman/wagerhouse/internal/infra/logging"
	"github.com/fastprodman/wagerhouse/internal/infra/pgutils"
	"github.com/fastprodman/wagerhouse/internal/metrics"
	"github.com/fastprodman/wagerhouse/internal/services/casino"
	"github.com/fastprodman/wagerhouse/internal/wager"
	"github.com/fastprodman/wagerhouse/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v\n", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg := new(apiConfig)

	err := config.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	shutdownqueue.Add("postgres", func(context.Context) error {
		slog.Info("Close database")
		return db.Close()
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "wagerhouse"),
	)

	m := metrics.New(reg)

	src := wager.NewSource()
	if cfg.Games.Seed != 0 {
		slog.Warn("Random source is seeded; outcomes are reproducible", "seed", cfg.Games.Seed)
		src = wager.NewSeededSource(cfg.Games.Seed)
	}

	casinoSrv, err := casino.New(db, cfg.Games, src,
		casino.WithObservers(m, logging.NewReporter(nil)),
		casino.WithFailureRecorder(m),
	)
	if err != nil {
		return fmt.Errorf("init casino: %w", err)
	}

	if cfg.BlackjackIdleTimeout > 0 {
		sweepCtx, stopSweep := context.WithCancel(context.Background())
		go casinoSrv.SweepIdle(sweepCtx, cfg.BlackjackIdleTimeout/2, cfg.BlackjackIdleTimeout)

		shutdownqueue.Add("blackjack sweeper", func(context.Context) error {
			stopSweep()
			return nil
		})
	}

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, casinoSrv, m)

	shutdownqueue.Add("http", func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port)

	select {
	case <-ctx.Done():
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
