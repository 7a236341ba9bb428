package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-sim-service/internal/affinity"
	"github.com/preston-bernstein/nba-sim-service/internal/archive"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
	"github.com/preston-bernstein/nba-sim-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-sim-service/internal/league"
	"github.com/preston-bernstein/nba-sim-service/internal/logging"
	"github.com/preston-bernstein/nba-sim-service/internal/playoffs"
	"github.com/preston-bernstein/nba-sim-service/internal/sim"
	"github.com/preston-bernstein/nba-sim-service/internal/store"
)

const maxBodyBytes = 1 << 16

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeDomainError maps league errors onto status codes. Anything unrecognised is a 500 and
// its detail stays in the log.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logging.Error(logger, "request failed", err)
		msg = "internal error"
	}
	writeError(w, r, status, msg, logger)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, league.ErrTeamNotFound),
		errors.Is(err, league.ErrPlayerNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, archive.ErrNotArchived):
		return http.StatusNotFound
	case errors.Is(err, league.ErrSeasonComplete),
		errors.Is(err, league.ErrSeasonInProgress),
		errors.Is(err, league.ErrNotInPlayoffs):
		return http.StatusConflict
	case errors.Is(err, affinity.ErrUnknownArchetype),
		errors.Is(err, players.ErrArchetypePosition),
		errors.Is(err, sim.ErrSameTeam):
		return http.StatusBadRequest
	case errors.Is(err, playoffs.ErrUnknownConference),
		errors.Is(err, playoffs.ErrConferenceTooLarge):
		return http.StatusUnprocessableEntity
	case errors.Is(err, league.ErrGameTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, dest any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
