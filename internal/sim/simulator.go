// Package sim runs a single game possession by possession.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/preston-bernstein/nba-sim-service/internal/affinity"
	"github.com/preston-bernstein/nba-sim-service/internal/boxscore"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-sim-service/internal/probability"
)

const (
	DefaultPossessions         = 200
	DefaultOvertimePossessions = 10
	MaxOvertimes               = 50
	maxShotsPerPossession      = 3
)

var (
	ErrEmptyLineup   = errors.New("lineup has no players")
	ErrSameTeam      = errors.New("home and away lineups are the same team")
	ErrNotStarted    = errors.New("game has not been played")
	ErrAlreadyRun    = errors.New("game already played")
	ErrUnresolvedTie = errors.New("game still tied after maximum overtimes")
)

// State is the simulator lifecycle.
type State int

const (
	NotStarted State = iota
	Running
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Lineup is the set of players a team puts on the floor for a game.
type Lineup struct {
	TeamID   string
	Players  []players.Player
	Strategy Strategy
}

// Options tune a run. Zero values fall back to defaults.
type Options struct {
	Possessions         int
	OvertimePossessions int
	Pipeline            probability.Pipeline
	// Rand drives every roll. Inject a seeded source for reproducible games.
	Rand *rand.Rand
}

// Result is the outcome of a completed game.
type Result struct {
	HomeTeamID  string
	AwayTeamID  string
	HomeScore   int
	AwayScore   int
	Home        map[string]stats.PlayerGameStats
	Away        map[string]stats.PlayerGameStats
	Possessions int
	Overtimes   int
}

// WinnerID returns the team id with more points.
func (r Result) WinnerID() string {
	if r.HomeScore > r.AwayScore {
		return r.HomeTeamID
	}
	return r.AwayTeamID
}

// BoxScore merges both teams' lines keyed by player id.
func (r Result) BoxScore() map[string]stats.PlayerGameStats {
	out := make(map[string]stats.PlayerGameStats, len(r.Home)+len(r.Away))
	for id, l := range r.Home {
		out[id] = l
	}
	for id, l := range r.Away {
		out[id] = l
	}
	return out
}

type participant struct {
	player players.Player
	ctx    probability.Context
}

func (p *participant) attrs() players.Attributes { return p.player.Attributes }

type side struct {
	teamID  string
	players []*participant
}

// Simulator plays one game. An instance is single use and not safe for concurrent use.
type Simulator struct {
	home, away side
	pipeline   probability.Pipeline
	rng        *rand.Rand
	acc        *boxscore.Accumulator
	opts       Options

	state       State
	result      Result
	err         error
	possessions int
}

// New validates both lineups and prepares a simulator in the NotStarted state.
func New(home, away Lineup, opts Options) (*Simulator, error) {
	if len(home.Players) == 0 {
		return nil, fmt.Errorf("home %q: %w", home.TeamID, ErrEmptyLineup)
	}
	if len(away.Players) == 0 {
		return nil, fmt.Errorf("away %q: %w", away.TeamID, ErrEmptyLineup)
	}
	if home.TeamID == away.TeamID {
		return nil, fmt.Errorf("%q: %w", home.TeamID, ErrSameTeam)
	}
	for _, l := range []Lineup{home, away} {
		for _, p := range l.Players {
			if err := affinity.Validate(p); err != nil {
				return nil, fmt.Errorf("team %q: %w", l.TeamID, err)
			}
		}
	}
	if opts.Possessions <= 0 {
		opts.Possessions = DefaultPossessions
	}
	if opts.OvertimePossessions <= 0 {
		opts.OvertimePossessions = DefaultOvertimePossessions
	}
	if opts.Pipeline == nil {
		opts.Pipeline = probability.Default
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	roster := make(map[string]string, len(home.Players)+len(away.Players))
	for _, p := range home.Players {
		roster[p.ID] = home.TeamID
	}
	for _, p := range away.Players {
		roster[p.ID] = away.TeamID
	}

	return &Simulator{
		home:     newSide(home),
		away:     newSide(away),
		pipeline: opts.Pipeline,
		rng:      opts.Rand,
		acc:      boxscore.NewAccumulator(roster),
		opts:     opts,
		state:    NotStarted,
	}, nil
}

func newSide(l Lineup) side {
	s := side{teamID: l.TeamID, players: make([]*participant, 0, len(l.Players))}
	strategy := l.Strategy.Modifiers()
	for _, p := range l.Players {
		p.Attributes = p.Attributes.Clamp()
		s.players = append(s.players, &participant{
			player: p,
			ctx: probability.Context{
				Position: p.Position,
				Role:     affinity.RoleModifiers(p.Archetype),
				Strategy: strategy,
			},
		})
	}
	return s
}

// State reports where the simulator is in its lifecycle.
func (s *Simulator) State() State {
	return s.state
}

// Result returns the finished game or ErrNotStarted.
func (s *Simulator) Result() (Result, error) {
	if s.state != Completed {
		return Result{}, ErrNotStarted
	}
	if s.err != nil {
		return Result{}, s.err
	}
	return s.result, nil
}

// Run plays regulation plus any overtime. It checks ctx between possessions.
func (s *Simulator) Run(ctx context.Context) (Result, error) {
	if s.state != NotStarted {
		return Result{}, ErrAlreadyRun
	}
	s.state = Running
	res, err := s.run(ctx)
	s.state = Completed
	s.result, s.err = res, err
	return res, err
}

func (s *Simulator) run(ctx context.Context) (Result, error) {
	if err := s.play(ctx, s.opts.Possessions); err != nil {
		return Result{}, err
	}

	overtimes := 0
	for s.acc.Points(s.home.teamID) == s.acc.Points(s.away.teamID) {
		if overtimes == MaxOvertimes {
			return Result{}, ErrUnresolvedTie
		}
		overtimes++
		if err := s.play(ctx, s.opts.OvertimePossessions); err != nil {
			return Result{}, err
		}
	}

	lines := s.acc.Finalize()
	res := Result{
		HomeTeamID:  s.home.teamID,
		AwayTeamID:  s.away.teamID,
		Home:        boxscore.Split(lines, s.home.teamID),
		Away:        boxscore.Split(lines, s.away.teamID),
		Possessions: s.possessions,
		Overtimes:   overtimes,
	}
	res.HomeScore = boxscore.TotalPoints(res.Home)
	res.AwayScore = boxscore.TotalPoints(res.Away)
	return res, nil
}

func (s *Simulator) play(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("possession %d: %w", s.possessions, err)
		}
		if s.possessions%2 == 0 {
			s.possession(&s.home, &s.away)
		} else {
			s.possession(&s.away, &s.home)
		}
		s.possessions++
	}
	return nil
}
