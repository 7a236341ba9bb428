// Package boxscore collects per-possession events into per-player game lines and folds
// finished games into season totals.
package boxscore

import (
	"errors"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/stats"
)

// ErrFinalized is returned when events are recorded after the accumulator has been finalized.
var ErrFinalized = errors.New("box score already finalized")

// Accumulator is the mutable box score for one game run. It is owned by exactly one
// simulation until Finalize; it is not safe for concurrent use.
type Accumulator struct {
	lines     map[string]*stats.PlayerGameStats
	finalized bool
}

// NewAccumulator registers every player that may appear so they get a zero line even without events.
func NewAccumulator(roster map[string]string) *Accumulator {
	acc := &Accumulator{lines: make(map[string]*stats.PlayerGameStats, len(roster))}
	for playerID, teamID := range roster {
		acc.ensure(playerID, teamID)
	}
	return acc
}

func (a *Accumulator) ensure(playerID, teamID string) *stats.PlayerGameStats {
	line, ok := a.lines[playerID]
	if !ok {
		line = &stats.PlayerGameStats{PlayerID: playerID, TeamID: teamID}
		a.lines[playerID] = line
	}
	return line
}

func (a *Accumulator) line(playerID string) *stats.PlayerGameStats {
	if a.finalized {
		panic(ErrFinalized)
	}
	return a.ensure(playerID, "")
}

// FieldGoal records a field goal attempt and, when made, its points.
func (a *Accumulator) FieldGoal(playerID string, three, made bool) int {
	l := a.line(playerID)
	l.FieldGoalsAttempted++
	if three {
		l.ThreePointersAttempted++
	}
	if !made {
		return 0
	}
	l.FieldGoalsMade++
	points := 2
	if three {
		l.ThreePointersMade++
		points = 3
	}
	l.Points += points
	return points
}

// FreeThrow records one free throw attempt.
func (a *Accumulator) FreeThrow(playerID string, made bool) int {
	l := a.line(playerID)
	l.FreeThrowsAttempted++
	if !made {
		return 0
	}
	l.FreeThrowsMade++
	l.Points++
	return 1
}

func (a *Accumulator) Assist(playerID string) { a.line(playerID).Assists++ }

// Rebound credits a rebound; offensive rebounds are also tallied separately.
func (a *Accumulator) Rebound(playerID string, offensive bool) {
	l := a.line(playerID)
	l.Rebounds++
	if offensive {
		l.OffensiveRebounds++
	}
}

func (a *Accumulator) Steal(playerID string)    { a.line(playerID).Steals++ }
func (a *Accumulator) Turnover(playerID string) { a.line(playerID).Turnovers++ }
func (a *Accumulator) Block(playerID string)    { a.line(playerID).Blocks++ }
func (a *Accumulator) Foul(playerID string)     { a.line(playerID).Fouls++ }

// Points returns the running points total for a team.
func (a *Accumulator) Points(teamID string) int {
	total := 0
	for _, l := range a.lines {
		if l.TeamID == teamID {
			total += l.Points
		}
	}
	return total
}

// Finalize freezes the accumulator and returns an independent copy of every line keyed by player id.
func (a *Accumulator) Finalize() map[string]stats.PlayerGameStats {
	a.finalized = true
	return a.Snapshot()
}

// Snapshot copies the current lines without freezing.
func (a *Accumulator) Snapshot() map[string]stats.PlayerGameStats {
	out := make(map[string]stats.PlayerGameStats, len(a.lines))
	for id, l := range a.lines {
		out[id] = *l
	}
	return out
}

// Finalized reports whether Finalize has been called.
func (a *Accumulator) Finalized() bool {
	return a.finalized
}

// Split partitions a finished box score by team id.
func Split(lines map[string]stats.PlayerGameStats, teamID string) map[string]stats.PlayerGameStats {
	out := make(map[string]stats.PlayerGameStats)
	for id, l := range lines {
		if l.TeamID == teamID {
			out[id] = l
		}
	}
	return out
}

// TotalPoints sums points across a box score.
func TotalPoints(lines map[string]stats.PlayerGameStats) int {
	total := 0
	for _, l := range lines {
		total += l.Points
	}
	return total
}
