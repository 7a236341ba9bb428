// Package league runs one basketball league: the regular season schedule, standings,
// the playoff bracket and the stat ledgers. All mutations are serialized by the League.
package league

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-sim-service/internal/affinity"
	"github.com/preston-bernstein/nba-sim-service/internal/boxscore"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/games"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-sim-service/internal/logging"
	"github.com/preston-bernstein/nba-sim-service/internal/metrics"
	"github.com/preston-bernstein/nba-sim-service/internal/playoffs"
	"github.com/preston-bernstein/nba-sim-service/internal/sim"
	"github.com/preston-bernstein/nba-sim-service/internal/store"
)

var (
	ErrSeasonComplete   = errors.New("season complete")
	ErrSeasonInProgress = errors.New("season still in progress")
	ErrTeamNotFound     = errors.New("team not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNoTeams          = errors.New("league needs at least two teams")
	ErrGameTimeout      = errors.New("game simulation timed out")
	ErrNotInPlayoffs    = errors.New("league is not in the playoffs")
)

// Phase is the coarse position of the league within a season.
type Phase string

const (
	PhaseRegularSeason Phase = "regular_season"
	PhasePlayoffs      Phase = "playoffs"
	PhaseComplete      Phase = "complete"
)

// Config tunes a league. Zero values fall back to defaults.
type Config struct {
	Seed         int64
	GamesPerTeam int
	LineupSize   int
	Possessions  int
	Workers      int
	GameTimeout  time.Duration
	StartYear    int

	// RegularSeasonOnly skips the playoffs. Without it every conference needs
	// enough teams to fill seeds 1 to 10.
	RegularSeasonOnly bool
}

const (
	defaultGamesPerTeam = 82
	defaultLineupSize   = 8
	defaultWorkers      = 4
	defaultGameTimeout  = 3 * time.Second
	defaultStartYear    = 2025
	// A game still tied after the overtime cap is replayed with a fresh seed.
	maxGameAttempts = 3
	// Seeds 7 to 10 meet in the play-in.
	playoffSeeds = 10
)

func (c Config) withDefaults() Config {
	if c.GamesPerTeam <= 0 {
		c.GamesPerTeam = defaultGamesPerTeam
	}
	if c.LineupSize <= 0 {
		c.LineupSize = defaultLineupSize
	}
	if c.Possessions <= 0 {
		c.Possessions = sim.DefaultPossessions
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.GameTimeout <= 0 {
		c.GameTimeout = defaultGameTimeout
	}
	if c.StartYear <= 0 {
		c.StartYear = defaultStartYear
	}
	return c
}

// Option customizes a League.
type Option func(*League)

// WithLogger sets the league logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *League) { l.logger = logger }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(l *League) { l.metrics = recorder }
}

// WithStore sets where final games are persisted. Defaults to a MemoryStore.
func WithStore(s store.Store) Option {
	return func(l *League) { l.store = s }
}

// WithListener registers a listener for game and champion events.
func WithListener(listener Listener) Option {
	return func(l *League) { l.listeners = append(l.listeners, listener) }
}

// WithClock overrides time.Now, used for archive timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *League) { l.now = now }
}

// League is the single owner of season state.
type League struct {
	mu sync.RWMutex

	cfg       Config
	logger    *slog.Logger
	metrics   *metrics.Recorder
	store     store.Store
	listeners []Listener
	now       func() time.Time

	teams      []teams.Team
	teamByID   map[string]teams.Team
	players    map[string]*players.Player
	rosters    map[string][]string
	strategies map[string]sim.Strategy

	season   int
	day      int
	schedule [][]Matchup
	ordinal  int64

	regular    []games.Game
	byDay      map[int][]games.Game
	seasonLog  *boxscore.Ledger
	playoffLog *boxscore.Ledger
	bracket    *playoffs.Bracket
	// finished marks a regular-season-only season whose schedule is exhausted.
	finished bool
}

// New builds a league from teams and players and schedules the first season.
// Players whose team is not in ts are ignored.
func New(cfg Config, ts []teams.Team, ps []players.Player, opts ...Option) (*League, error) {
	if len(ts) < 2 {
		return nil, ErrNoTeams
	}
	l := &League{
		cfg:        cfg.withDefaults(),
		now:        time.Now,
		teamByID:   make(map[string]teams.Team, len(ts)),
		players:    make(map[string]*players.Player, len(ps)),
		rosters:    make(map[string][]string, len(ts)),
		strategies: make(map[string]sim.Strategy, len(ts)),
		seasonLog:  boxscore.NewLedger(),
		playoffLog: boxscore.NewLedger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.store == nil {
		l.store = store.NewMemoryStore()
	}

	for _, t := range ts {
		if _, dup := l.teamByID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate team id %q", t.ID)
		}
		if _, ok := teams.ParseConference(string(t.Conference)); !ok {
			return nil, fmt.Errorf("team %s: %w", t.ID, playoffs.ErrUnknownConference)
		}
		l.teamByID[t.ID] = t
		l.teams = append(l.teams, t)
		l.strategies[t.ID] = sim.Balanced
	}
	sort.Slice(l.teams, func(i, j int) bool { return l.teams[i].ID < l.teams[j].ID })
	if !l.cfg.RegularSeasonOnly {
		if err := checkPlayoffField(l.teams); err != nil {
			return nil, err
		}
	}

	for i := range ps {
		p := ps[i]
		if _, ok := l.teamByID[p.TeamID]; !ok {
			continue
		}
		if err := affinity.Validate(p); err != nil {
			return nil, err
		}
		p.Attributes = p.Attributes.Clamp()
		l.players[p.ID] = &p
		l.rosters[p.TeamID] = append(l.rosters[p.TeamID], p.ID)
	}
	for _, t := range l.teams {
		if len(l.rosters[t.ID]) == 0 {
			return nil, fmt.Errorf("team %s: %w", t.ID, sim.ErrEmptyLineup)
		}
	}

	l.startSeason(l.cfg.StartYear)
	return l, nil
}

func checkPlayoffField(ts []teams.Team) error {
	counts := make(map[teams.Conference]int, len(teams.Conferences))
	for _, t := range ts {
		counts[t.Conference]++
	}
	for _, conf := range teams.Conferences {
		switch n := counts[conf]; {
		case n == 0:
			return fmt.Errorf("%w: %s has no teams", playoffs.ErrMissingConference, conf)
		case n < playoffSeeds:
			return fmt.Errorf("%w: %s has %d teams, need %d", playoffs.ErrMissingSeed, conf, n, playoffSeeds)
		}
	}
	return nil
}

func (l *League) startSeason(year int) {
	ids := make([]string, len(l.teams))
	for i, t := range l.teams {
		ids[i] = t.ID
	}
	l.season = year
	l.day = 0
	l.ordinal = 0
	l.schedule = BuildSchedule(ids, l.cfg.GamesPerTeam)
	l.regular = nil
	l.byDay = make(map[int][]games.Game)
	l.seasonLog.Reset()
	l.playoffLog.Reset()
	l.bracket = nil
	l.finished = false
}

// StartNewSeason resets standings, ledgers and the bracket and schedules the next year.
// It fails with ErrSeasonInProgress until a champion has been crowned.
func (l *League) StartNewSeason(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Status{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.phase() != PhaseComplete {
		return l.status(), ErrSeasonInProgress
	}
	l.startSeason(l.season + 1)
	logging.Info(l.logger, "new season started", logging.FieldSeason, l.season, logging.FieldCount, len(l.schedule))
	return l.status(), nil
}

func (l *League) phase() Phase {
	switch {
	case l.finished:
		return PhaseComplete
	case l.bracket == nil:
		return PhaseRegularSeason
	case l.bracket.Stage() == playoffs.StageChampionDetermined:
		return PhaseComplete
	default:
		return PhasePlayoffs
	}
}

// Status summarizes where the league is.
type Status struct {
	Season    int               `json:"season"`
	Day       int               `json:"day"`
	TotalDays int               `json:"totalDays"`
	Phase     Phase             `json:"phase"`
	Stage     string            `json:"stage,omitempty"`
	Champion  *playoffs.Entrant `json:"champion,omitempty"`
	Games     int               `json:"gamesPlayed"`
}

// Status reports the current season position.
func (l *League) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status()
}

func (l *League) status() Status {
	st := Status{
		Season:    l.season,
		Day:       l.day,
		TotalDays: len(l.schedule),
		Phase:     l.phase(),
		Games:     len(l.regular) + l.playoffLog.Games(),
	}
	if l.bracket != nil {
		st.Stage = l.bracket.Stage().String()
		if c, ok := l.bracket.Champion(); ok {
			st.Champion = &c
		}
	}
	return st
}

// Teams returns every team ordered by id.
func (l *League) Teams() []teams.Team {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]teams.Team(nil), l.teams...)
}

// Team returns one team.
func (l *League) Team(id string) (teams.Team, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.teamByID[id]
	if !ok {
		return teams.Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, id)
	}
	return t, nil
}

// Roster returns a team's players ordered by overall rating, best first.
func (l *League) Roster(teamID string) ([]players.Player, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, ok := l.teamByID[teamID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	return l.roster(teamID), nil
}

func (l *League) roster(teamID string) []players.Player {
	ids := l.rosters[teamID]
	out := make([]players.Player, 0, len(ids))
	for _, id := range ids {
		out = append(out, *l.players[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := out[i].Overall(), out[j].Overall()
		if oi != oj {
			return oi > oj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// lineup is the top LineupSize players by overall rating.
func (l *League) lineup(teamID string) sim.Lineup {
	r := l.roster(teamID)
	if len(r) > l.cfg.LineupSize {
		r = r[:l.cfg.LineupSize]
	}
	return sim.Lineup{TeamID: teamID, Players: r, Strategy: l.strategies[teamID]}
}

// Player returns one player.
func (l *League) Player(id string) (players.Player, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.players[id]
	if !ok {
		return players.Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	return *p, nil
}

// AssignArchetype sets a player's role archetype; it applies from the next simulated game.
func (l *League) AssignArchetype(playerID, archetypeID string) (players.Player, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.players[playerID]
	if !ok {
		return players.Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	updated := *p
	if err := affinity.AssignArchetype(&updated, archetypeID); err != nil {
		return *p, err
	}
	*p = updated
	return updated, nil
}

// Strategy returns a team's coaching strategy.
func (l *League) Strategy(teamID string) (sim.Strategy, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.strategies[teamID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	return s, nil
}

// SetStrategy changes a team's coaching strategy from the next simulated game.
func (l *League) SetStrategy(teamID string, s sim.Strategy) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.teamByID[teamID]; !ok {
		return fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	l.strategies[teamID] = s
	return nil
}

// Standing is one team's row in the standings table.
type Standing struct {
	Team   teams.Team      `json:"team"`
	Record playoffs.Record `json:"record"`
	WinPct float64         `json:"winPct"`
	Seed   int             `json:"seed"`
}

// Standings returns each conference's table in seed order.
func (l *League) Standings() (map[teams.Conference][]Standing, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	seeding, err := playoffs.Seed(l.teams, l.regular)
	if err != nil {
		return nil, err
	}
	out := make(map[teams.Conference][]Standing, len(seeding))
	for conf, entrants := range seeding {
		rows := make([]Standing, 0, len(entrants))
		for _, e := range entrants {
			rows = append(rows, Standing{Team: e.Team, Record: e.Record, WinPct: e.Record.WinPct(), Seed: e.Seed})
		}
		out[conf] = rows
	}
	return out, nil
}

// Seeding returns the bracket's seeding once the playoffs started, else the projected seeding.
func (l *League) Seeding() (playoffs.Seeding, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.bracket != nil {
		return l.bracket.Seeding(), nil
	}
	return playoffs.Seed(l.teams, l.regular)
}

// Bracket returns the playoff bracket view once the regular season is over.
func (l *League) Bracket() (playoffs.View, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.bracket == nil {
		return playoffs.View{}, false
	}
	return l.bracket.View(), true
}

// Eliminated reports whether a team is out of the current postseason.
func (l *League) Eliminated(teamID string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.bracket == nil {
		return false, ErrNotInPlayoffs
	}
	return l.bracket.Eliminated(teamID), nil
}

// SeasonStats returns a player's regular-season totals.
func (l *League) SeasonStats(playerID string) (stats.PlayerSeasonStats, error) {
	return l.ledgerStats(playerID, false)
}

// PlayoffStats returns a player's postseason totals.
func (l *League) PlayoffStats(playerID string) (stats.PlayerSeasonStats, error) {
	return l.ledgerStats(playerID, true)
}

func (l *League) ledgerStats(playerID string, postseason bool) (stats.PlayerSeasonStats, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.players[playerID]
	if !ok {
		return stats.PlayerSeasonStats{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	s, _ := l.ledger(postseason).Player(playerID)
	if s.TeamID == "" {
		s.TeamID = p.TeamID
	}
	return s, nil
}

func (l *League) ledger(postseason bool) *boxscore.Ledger {
	if postseason {
		return l.playoffLog
	}
	return l.seasonLog
}

// Leaders returns the top n players by per-game average of stat.
func (l *League) Leaders(stat boxscore.Stat, n int, postseason bool) []stats.PlayerSeasonStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ledger(postseason).Leaders(stat, n)
}

// Games returns the games played on a day of the current season (1-based).
func (l *League) Games(day int) []games.Game {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]games.Game(nil), l.byDay[day]...)
}

// Game loads any stored game by id, including past seasons.
func (l *League) Game(ctx context.Context, id string) (games.Game, error) {
	return l.store.GetGame(ctx, id)
}

// SeasonGames lists stored games for a season.
func (l *League) SeasonGames(ctx context.Context, season int) ([]games.Game, error) {
	return l.store.ListGames(ctx, season)
}
