package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fastprodman/wagerhouse/internal/games/blackjack"
	"github.com/fastprodman/wagerhouse/internal/repos/rounds"
	"github.com/fastprodman/wagerhouse/internal/repos/transactions"
	"github.com/fastprodman/wagerhouse/internal/repos/users"
	"github.com/fastprodman/wagerhouse/internal/services/casino"
	"github.com/fastprodman/wagerhouse/internal/wager"
)

// Service is what the handlers need from the casino.
type Service interface {
	GetBalance(ctx context.Context, userID uint64) (int64, error)
	GetStats(ctx context.Context, userID uint64) (users.Stats, error)
	ProcessTransaction(ctx context.Context, t transactions.Transaction) (int64, error)
	Play(ctx context.Context, req casino.PlayRequest) (casino.Play, error)
	StartBlackjack(ctx context.Context, userID uint64, stake int64) (blackjack.View, error)
	Hit(ctx context.Context, userID uint64, roundID string) (blackjack.View, error)
	Stand(ctx context.Context, userID uint64, roundID string) (blackjack.View, error)
	GetRound(ctx context.Context, userID uint64, roundID string) (rounds.Round, error)
	ListRounds(ctx context.Context, userID uint64, limit int) ([]rounds.Round, error)
}

var _ Service = (*casino.CasinoService)(nil)

// HandlerProvider wraps a Service and exposes HTTP handlers.
type HandlerProvider struct {
	svc Service
}

// NewHandler returns a new Handler provider.
func NewHandler(svc Service) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		// headers are already sent; the client sees a truncated body
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain sentinels to status codes. Anything unknown
// is logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, wager.ErrInvalidStake):
		writeError(w, http.StatusBadRequest, "invalid stake")
	case errors.Is(err, wager.ErrInvalidBet):
		writeError(w, http.StatusBadRequest, "invalid bet")
	case errors.Is(err, casino.ErrUnknownGame), errors.Is(err, wager.ErrUnknownKind):
		writeError(w, http.StatusBadRequest, "unknown game")
	case errors.Is(err, casino.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "amount must be > 0")
	case errors.Is(err, casino.ErrInvalidKind):
		writeError(w, http.StatusBadRequest, "invalid state")
	case errors.Is(err, users.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, rounds.ErrRoundNotFound):
		writeError(w, http.StatusNotFound, "round not found")
	case errors.Is(err, wager.ErrInsufficientFunds), errors.Is(err, users.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, "insufficient funds")
	case errors.Is(err, transactions.ErrDuplicateTransaction):
		writeError(w, http.StatusConflict, "duplicate transaction")
	case errors.Is(err, rounds.ErrRoundAlreadySettled):
		writeError(w, http.StatusConflict, "round already settled")
	case errors.Is(err, wager.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "move not allowed in the current state")
	case errors.Is(err, wager.ErrRandomSource):
		slog.ErrorContext(r.Context(), "random source failure", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusServiceUnavailable, "game temporarily unavailable")
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseUserIDFromPath reads `{userId}` from chi routes like:
//
//	GET  /user/{userId}/balance
//	POST /user/{userId}/games/{game}
func parseUserIDFromPath(r *http.Request) (uint64, error) {
	idStr := chi.URLParam(r, "userId")
	if idStr == "" {
		return 0, fmt.Errorf("missing userId")
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid userId: %w", err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid userId: must be positive")
	}

	return id, nil
}

// decodeBody limits the body size and disallows unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	//nolint:errcheck
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body")
		}

		return fmt.Errorf("invalid JSON")
	}

	return nil
}

// --- Handlers ---

// GetBalanceHandler handles GET /user/{userId}/balance
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	bal, err := h.svc.GetBalance(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{UserID: userID, Balance: bal})
}

// GetStatsHandler handles GET /user/{userId}/stats
func (h *HandlerProvider) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	st, err := h.svc.GetStats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		UserID:      userID,
		GamesPlayed: st.GamesPlayed,
		Wins:        st.Wins,
		Losses:      st.Losses,
	})
}

// ProcessTransactionHandler handles POST /user/{userId}/transaction
func (h *HandlerProvider) ProcessTransactionHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	var req txRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	kind, err := parseTxState(req.State)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid state")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be > 0")
		return
	}
	if req.TransactionID == "" {
		writeError(w, http.StatusBadRequest, "transactionId required")
		return
	}

	bal, err := h.svc.ProcessTransaction(r.Context(), transactions.Transaction{
		ID:     req.TransactionID,
		UserID: userID,
		Kind:   kind,
		Amount: req.Amount,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{UserID: userID, Balance: bal})
}
