package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nba-sim-service/internal/affinity"
	"github.com/preston-bernstein/nba-sim-service/internal/archive"
	"github.com/preston-bernstein/nba-sim-service/internal/autoplay"
	"github.com/preston-bernstein/nba-sim-service/internal/boxscore"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/games"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-sim-service/internal/http/requestutil"
	"github.com/preston-bernstein/nba-sim-service/internal/league"
	"github.com/preston-bernstein/nba-sim-service/internal/logging"
	"github.com/preston-bernstein/nba-sim-service/internal/sim"
)

const (
	defaultLeaders = 10
	maxLeaders     = 50
)

// Handler serves the read side of the league.
type Handler struct {
	league   *league.League
	seasons  archive.Store
	logger   *slog.Logger
	statusFn func() autoplay.Status
}

// NewHandler constructs a Handler. seasons and statusFn may be nil.
func NewHandler(l *league.League, seasons archive.Store, logger *slog.Logger, statusFn func() autoplay.Status) *Handler {
	return &Handler{
		league:   l,
		seasons:  seasons,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic. With autoplay on, the league must have advanced at least once
// and not be failing repeatedly.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// LeagueStatus returns the season position plus the autoplay state when present.
func (h *Handler) LeagueStatus(w nethttp.ResponseWriter, r *nethttp.Request) {
	resp := struct {
		league.Status
		Autoplay *autoplay.Status `json:"autoplay,omitempty"`
	}{Status: h.league.Status()}
	if h.statusFn != nil {
		st := h.statusFn()
		resp.Autoplay = &st
	}
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// Teams lists every team.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]any{"teams": h.league.Teams()}, h.logger)
}

// TeamDetail is a team with its roster and coaching strategy.
type TeamDetail struct {
	Team       teams.Team       `json:"team"`
	Strategy   sim.Strategy     `json:"strategy"`
	Eliminated *bool            `json:"eliminated,omitempty"`
	Roster     []players.Player `json:"roster"`
}

// TeamByID returns a team, its roster ordered by overall rating, and its strategy.
func (h *Handler) TeamByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	id := r.PathValue("id")
	team, err := h.league.Team(id)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	roster, err := h.league.Roster(id)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	strategy, err := h.league.Strategy(id)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	detail := TeamDetail{Team: team, Strategy: strategy, Roster: roster}
	if out, err := h.league.Eliminated(id); err == nil {
		detail.Eliminated = &out
	}
	writeJSON(w, nethttp.StatusOK, detail, logger)
}

// PlayerDetail is a player with ratings, role fits and accumulated stats.
type PlayerDetail struct {
	Player           players.Player               `json:"player"`
	Overall          float64                      `json:"overall"`
	Archetype        *affinity.Archetype          `json:"archetype,omitempty"`
	RoleFits         []affinity.RoleScore         `json:"roleFits"`
	PositionAffinity map[players.Position]float64 `json:"positionAffinity"`
	SeasonStats      stats.PlayerSeasonStats      `json:"seasonStats"`
	PlayoffStats     stats.PlayerSeasonStats      `json:"playoffStats"`
}

// PlayerByID returns a player's profile.
func (h *Handler) PlayerByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	p, err := h.league.Player(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	season, err := h.league.SeasonStats(p.ID)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	post, err := h.league.PlayoffStats(p.ID)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	detail := PlayerDetail{
		Player:           p,
		Overall:          p.Overall(),
		RoleFits:         affinity.RankRoles(p.Attributes, p.Position),
		PositionAffinity: affinity.PositionAffinity(p.Attributes, p.HeightInches),
		SeasonStats:      season,
		PlayoffStats:     post,
	}
	if arch, ok := affinity.Lookup(p.Archetype); ok {
		detail.Archetype = &arch
	}
	writeJSON(w, nethttp.StatusOK, detail, logger)
}

// Archetypes lists the role catalog, optionally filtered by ?position=PG.
func (h *Handler) Archetypes(w nethttp.ResponseWriter, r *nethttp.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("position"))
	if raw == "" {
		writeJSON(w, nethttp.StatusOK, map[string]any{"archetypes": affinity.Archetypes()}, h.logger)
		return
	}
	pos, err := players.ParsePosition(raw)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid position", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"archetypes": affinity.ArchetypesFor(pos)}, h.logger)
}

// Standings returns each conference's table.
func (h *Handler) Standings(w nethttp.ResponseWriter, r *nethttp.Request) {
	table, err := h.league.Standings()
	if err != nil {
		writeDomainError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	st := h.league.Status()
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"season":      st.Season,
		"day":         st.Day,
		"conferences": table,
	}, h.logger)
}

// Seeding returns the current or projected playoff seeding.
func (h *Handler) Seeding(w nethttp.ResponseWriter, r *nethttp.Request) {
	seeding, err := h.league.Seeding()
	if err != nil {
		writeDomainError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"season":      h.league.Status().Season,
		"conferences": seeding,
	}, h.logger)
}

// Playoffs returns the bracket once the regular season is over.
func (h *Handler) Playoffs(w nethttp.ResponseWriter, r *nethttp.Request) {
	view, ok := h.league.Bracket()
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "playoffs have not started", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, view, h.logger)
}

// Games returns one day of the current season (?day=N, default the latest day played), or every
// stored game of a season with ?season=YYYY.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	st := h.league.Status()

	season, err := requestutil.QueryInt(r, "season", 0)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
		return
	}
	if season != 0 {
		list, err := h.league.SeasonGames(r.Context(), season)
		if err != nil {
			writeDomainError(w, r, err, logger)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"season": season, "games": list}, logger)
		return
	}

	day, err := requestutil.QueryInt(r, "day", st.Day)
	if err != nil || day < 0 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid day", logger)
		return
	}
	list := h.league.Games(day)
	if list == nil {
		list = []games.Game{}
	}
	logging.Info(logger, "served games", logging.FieldSeason, st.Season, logging.FieldDay, day, logging.FieldCount, len(list))
	writeJSON(w, nethttp.StatusOK, games.NewDayResponse(st.Season, day, list), logger)
}

// GameByID returns a stored game with its box score.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	id := r.PathValue("id")
	if id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", logger)
		return
	}
	game, err := h.league.Game(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, game, logger)
}

// Leaders returns per-game leaders: ?stat=points&n=10&playoffs=false.
func (h *Handler) Leaders(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	rawStat := r.URL.Query().Get("stat")
	if rawStat == "" {
		rawStat = string(boxscore.StatPoints)
	}
	stat, ok := boxscore.ParseStat(rawStat)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid stat", logger)
		return
	}
	n, err := requestutil.QueryInt(r, "n", defaultLeaders)
	if err != nil || n <= 0 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid n", logger)
		return
	}
	if n > maxLeaders {
		n = maxLeaders
	}
	postseason, err := requestutil.QueryBool(r, "playoffs", false)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
		return
	}
	leaders := h.league.Leaders(stat, n, postseason)
	if leaders == nil {
		leaders = []stats.PlayerSeasonStats{}
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"stat":     stat,
		"playoffs": postseason,
		"leaders":  leaders,
	}, logger)
}

// Seasons lists archived season years.
func (h *Handler) Seasons(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.seasons == nil {
		writeJSON(w, nethttp.StatusOK, map[string]any{"seasons": []int{}}, h.logger)
		return
	}
	years, err := h.seasons.Seasons()
	if err != nil {
		writeDomainError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	if years == nil {
		years = []int{}
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"seasons": years}, h.logger)
}

// SeasonByYear returns an archived season.
func (h *Handler) SeasonByYear(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year <= 0 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid season", logger)
		return
	}
	if h.seasons == nil {
		writeError(w, r, nethttp.StatusNotFound, "season not archived", logger)
		return
	}
	season, err := h.seasons.LoadSeason(year)
	if err != nil {
		if errors.Is(err, archive.ErrNotArchived) {
			writeError(w, r, nethttp.StatusNotFound, "season not archived", logger)
			return
		}
		writeDomainError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, season, logger)
}
