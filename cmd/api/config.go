package main

import (
	"log/slog"
	"time"

	"github.com/fastprodman/wagerhouse/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT" envDefault:"8080"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Open blackjack rounds untouched this long are stood; 0 disables it.
	BlackjackIdleTimeout time.Duration `env:"APP_BLACKJACK_IDLE_TIMEOUT" envDefault:"10m"`

	Postgres config.PostgresConfig
	Games    config.GamesConfig
}
