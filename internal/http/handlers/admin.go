package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/nba-sim-service/internal/league"
	"github.com/preston-bernstein/nba-sim-service/internal/logging"
	"github.com/preston-bernstein/nba-sim-service/internal/sim"
)

// AdminHandler exposes the mutating endpoints. The router guards them with the admin token.
type AdminHandler struct {
	league *league.League
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(l *league.League, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{league: l, logger: logger}
}

// AdvanceDay simulates the next league day.
func (h *AdminHandler) AdvanceDay(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	report, err := h.league.AdvanceDay(r.Context())
	if err != nil {
		logging.Warn(logger, "admin advance failed", "error", err)
		writeDomainError(w, r, err, logger)
		return
	}
	logging.Info(logger, "admin advanced day",
		logging.FieldSeason, report.Season,
		logging.FieldDay, report.Day,
		logging.FieldCount, len(report.Games),
	)
	writeJSON(w, http.StatusOK, report, logger)
}

// NewSeason starts the next season once a champion has been crowned.
func (h *AdminHandler) NewSeason(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	status, err := h.league.StartNewSeason(r.Context())
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, status, logger)
}

// ExhibitionRequest is the body of POST /exhibitions.
type ExhibitionRequest struct {
	HomeID string `json:"homeId"`
	AwayID string `json:"awayId"`
	Seed   int64  `json:"seed,omitempty"`
}

// Exhibition plays a one-off game that does not count toward the season.
func (h *AdminHandler) Exhibition(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var req ExhibitionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	req.HomeID = strings.TrimSpace(req.HomeID)
	req.AwayID = strings.TrimSpace(req.AwayID)
	if req.HomeID == "" || req.AwayID == "" {
		writeError(w, r, http.StatusBadRequest, "homeId and awayId are required", logger)
		return
	}
	if req.HomeID == req.AwayID {
		writeError(w, r, http.StatusBadRequest, sim.ErrSameTeam.Error(), logger)
		return
	}
	game, err := h.league.Exhibition(r.Context(), req.HomeID, req.AwayID, req.Seed)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, game, logger)
}

// ArchetypeRequest is the body of PUT /players/{id}/archetype.
type ArchetypeRequest struct {
	Archetype string `json:"archetype"`
}

// AssignArchetype changes a player's role.
func (h *AdminHandler) AssignArchetype(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var req ArchetypeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	p, err := h.league.AssignArchetype(r.PathValue("id"), strings.TrimSpace(req.Archetype))
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	logging.Info(logger, "archetype assigned", "player_id", p.ID, "archetype", p.Archetype)
	writeJSON(w, http.StatusOK, p, logger)
}

// StrategyRequest is the body of PUT /teams/{id}/strategy.
type StrategyRequest struct {
	Strategy string `json:"strategy"`
}

var errUnknownStrategy = errors.New("unknown strategy: use balanced, pace_and_space, inside or defensive")

// SetStrategy changes a team's coaching strategy.
func (h *AdminHandler) SetStrategy(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var req StrategyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	strategy, ok := sim.ParseStrategy(strings.TrimSpace(req.Strategy))
	if !ok {
		writeError(w, r, http.StatusBadRequest, errUnknownStrategy.Error(), logger)
		return
	}
	id := r.PathValue("id")
	if err := h.league.SetStrategy(id, strategy); err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	logging.Info(logger, "strategy set", logging.FieldTeamID, id, "strategy", strategy)
	writeJSON(w, http.StatusOK, map[string]any{"teamId": id, "strategy": strategy}, logger)
}
