package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fastprodman/wagerhouse/internal/wager"
)

// SetupJSON sets slog's default logger to use JSON output at the given level.
func SetupJSON(level slog.Level) {
	slog.SetDefault(NewJSON(os.Stdout, level))
}

func NewJSON(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Reporter logs every settled round at info level.
type Reporter struct {
	log *slog.Logger
}

var _ wager.ResultReporter = (*Reporter)(nil)

// NewReporter logs through l, or slog.Default when l is nil.
func NewReporter(l *slog.Logger) *Reporter {
	return &Reporter{log: l}
}

func (r *Reporter) Report(ctx context.Context, res wager.Result) error {
	l := r.log
	if l == nil {
		l = slog.Default()
	}

	l.InfoContext(ctx, "round settled",
		"session_id", res.SessionID,
		"game", res.Kind,
		"outcome", res.Outcome,
		"stake", res.Stake,
		"multiplier", res.Multiplier.String(),
		"payout", res.Payout,
		"delta", res.Delta,
		"new_balance", res.NewBalance,
	)

	return nil
}
