package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fastprodman/wagerhouse/internal/games/blackjack"
	"github.com/fastprodman/wagerhouse/internal/games/roulette"
	"github.com/fastprodman/wagerhouse/internal/services/casino"
	"github.com/fastprodman/wagerhouse/internal/wager"
)

// PlayHandler handles POST /user/{userId}/games/{game}. Blackjack opens a
// round; every other game settles in the same request.
func (h *HandlerProvider) PlayHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	kind, err := wager.ParseKind(chi.URLParam(r, "game"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown game")
		return
	}

	var req playRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if kind == wager.KindBlackjack {
		view, err := h.svc.StartBlackjack(r.Context(), userID, req.Stake)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newBlackjackResponse(view))
		return
	}

	play := casino.PlayRequest{UserID: userID, Kind: kind, Stake: req.Stake}

	if kind == wager.KindRoulette {
		if req.Bet == nil {
			writeError(w, http.StatusBadRequest, "bet required")
			return
		}

		t, err := roulette.ParseBetType(req.Bet.Type)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid bet")
			return
		}

		play.Bet = roulette.Bet{Type: t, Number: req.Bet.Number}
	}

	out, err := h.svc.Play(r.Context(), play)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newPlayResponse(out))
}

type moveFunc func(ctx context.Context, userID uint64, roundID string) (blackjack.View, error)

// HitHandler handles POST /user/{userId}/rounds/{roundId}/hit
func (h *HandlerProvider) HitHandler(w http.ResponseWriter, r *http.Request) {
	h.blackjackMove(w, r, h.svc.Hit)
}

// StandHandler handles POST /user/{userId}/rounds/{roundId}/stand
func (h *HandlerProvider) StandHandler(w http.ResponseWriter, r *http.Request) {
	h.blackjackMove(w, r, h.svc.Stand)
}

func (h *HandlerProvider) blackjackMove(w http.ResponseWriter, r *http.Request, move moveFunc) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	view, err := move(r.Context(), userID, chi.URLParam(r, "roundId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newBlackjackResponse(view))
}

// ListRoundsHandler handles GET /user/{userId}/rounds?limit=n
func (h *HandlerProvider) ListRoundsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	limit := 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	list, err := h.svc.ListRounds(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]roundResponse, 0, len(list))
	for _, rnd := range list {
		out = append(out, newRoundResponse(rnd))
	}

	writeJSON(w, http.StatusOK, out)
}

// GetRoundHandler handles GET /user/{userId}/rounds/{roundId}
func (h *HandlerProvider) GetRoundHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	rnd, err := h.svc.GetRound(r.Context(), userID, chi.URLParam(r, "roundId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newRoundResponse(rnd))
}
