package playoffs

import (
	"errors"
	"fmt"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
)

var (
	ErrSeriesComplete  = errors.New("series already complete")
	ErrTeamNotInSeries = errors.New("team is not in series")
)

// Round labels a series.
type Round string

const (
	RoundPlayIn           Round = "play_in"
	RoundFirst            Round = "first_round"
	RoundConferenceSemis  Round = "conference_semis"
	RoundConferenceFinals Round = "conference_finals"
	RoundFinals           Round = "finals"
)

// SeriesState is the lifecycle of a single series.
type SeriesState string

const (
	SeriesNotStarted SeriesState = "not_started"
	SeriesInProgress SeriesState = "in_progress"
	SeriesComplete   SeriesState = "complete"
)

// Series is a head-to-head matchup. High holds home court.
type Series struct {
	ID         string           `json:"id"`
	Round      Round            `json:"round"`
	Conference teams.Conference `json:"conference,omitempty"`
	High       Entrant          `json:"high"`
	Low        Entrant          `json:"low"`
	HighWins   int              `json:"highWins"`
	LowWins    int              `json:"lowWins"`
	BestOf     int              `json:"bestOf"`
}

func newSeries(id string, round Round, conf teams.Conference, high, low Entrant, bestOf int) *Series {
	return &Series{ID: id, Round: round, Conference: conf, High: high, Low: low, BestOf: bestOf}
}

// WinsNeeded is a majority of BestOf.
func (s Series) WinsNeeded() int {
	return s.BestOf/2 + 1
}

// State derives the series state from the win counts.
func (s Series) State() SeriesState {
	switch {
	case s.HighWins >= s.WinsNeeded() || s.LowWins >= s.WinsNeeded():
		return SeriesComplete
	case s.HighWins+s.LowWins == 0:
		return SeriesNotStarted
	default:
		return SeriesInProgress
	}
}

// Complete reports whether either side has clinched.
func (s Series) Complete() bool {
	return s.State() == SeriesComplete
}

// Includes reports whether a team plays in the series.
func (s Series) Includes(teamID string) bool {
	return s.High.Team.ID == teamID || s.Low.Team.ID == teamID
}

// RecordWin credits one game to teamID.
func (s *Series) RecordWin(teamID string) error {
	if s.Complete() {
		return fmt.Errorf("%s: %w", s.ID, ErrSeriesComplete)
	}
	switch teamID {
	case s.High.Team.ID:
		s.HighWins++
	case s.Low.Team.ID:
		s.LowWins++
	default:
		return fmt.Errorf("%s: %w: %s", s.ID, ErrTeamNotInSeries, teamID)
	}
	return nil
}

// Winner returns the clinching side.
func (s Series) Winner() (Entrant, bool) {
	if !s.Complete() {
		return Entrant{}, false
	}
	if s.HighWins > s.LowWins {
		return s.High, true
	}
	return s.Low, true
}

// Loser returns the eliminated side.
func (s Series) Loser() (Entrant, bool) {
	if !s.Complete() {
		return Entrant{}, false
	}
	if s.HighWins > s.LowWins {
		return s.Low, true
	}
	return s.High, true
}

// NextGame is the 1-based number of the next game to play.
func (s Series) NextGame() int {
	return s.HighWins + s.LowWins + 1
}

// HomeTeamForGame uses the 2-2-1-1-1 format: the high seed hosts games 1, 2, 5 and 7.
func (s Series) HomeTeamForGame(n int) teams.Team {
	switch n {
	case 3, 4, 6:
		return s.Low.Team
	default:
		return s.High.Team
	}
}

// AwayTeamForGame is the opponent of HomeTeamForGame.
func (s Series) AwayTeamForGame(n int) teams.Team {
	if s.HomeTeamForGame(n).ID == s.High.Team.ID {
		return s.Low.Team
	}
	return s.High.Team
}
