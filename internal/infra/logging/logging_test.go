package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastprodman/wagerhouse/internal/wager"
)

func TestReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	r := NewReporter(NewJSON(&buf, slog.LevelInfo))

	err := r.Report(context.Background(), wager.Result{
		SessionID:  "s-1",
		Kind:       wager.KindRoulette,
		Outcome:    wager.OutcomeWin,
		Multiplier: decimal.NewFromInt(2),
		Stake:      50,
		Payout:     100,
		Delta:      50,
		NewBalance: 550,
	})
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "round settled", line["msg"])
	assert.Equal(t, "s-1", line["session_id"])
	assert.Equal(t, "roulette", line["game"])
	assert.Equal(t, "2", line["multiplier"])
	assert.InDelta(t, 550, line["new_balance"], 0)
}

func TestReporterBelowLevelIsSilent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	r := NewReporter(NewJSON(&buf, slog.LevelWarn))
	require.NoError(t, r.Report(context.Background(), wager.Result{Kind: wager.KindDice}))
	assert.Zero(t, buf.Len())
}
