package games

import (
	"github.com/preston-bernstein/nba-sim-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
)

// GameStatus mirrors the lifecycle of a scheduled game.
type GameStatus string

const (
	StatusScheduled GameStatus = "SCHEDULED"
	StatusFinal     GameStatus = "FINAL"
)

// Kind separates regular season games from postseason ones.
type Kind string

const (
	KindRegular    Kind = "regular"
	KindPlayIn     Kind = "play_in"
	KindPlayoff    Kind = "playoff"
	KindExhibition Kind = "exhibition"
)

// Postseason reports whether stats from this kind of game feed the playoff accumulator.
func (k Kind) Postseason() bool {
	return k == KindPlayIn || k == KindPlayoff
}

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// GameMeta stores simulation metadata for a game.
type GameMeta struct {
	Season      int    `json:"season"`
	Day         int    `json:"day"`
	SeriesID    string `json:"seriesId,omitempty"`
	GameNumber  int    `json:"gameNumber,omitempty"`
	Possessions int    `json:"possessions"`
	Overtimes   int    `json:"overtimes,omitempty"`
	Seed        int64  `json:"seed"`
}

// Game is the canonical record of a simulated game. BoxScore is keyed by player id and is
// immutable once the game is final.
type Game struct {
	ID       string                           `json:"id"`
	Kind     Kind                             `json:"kind"`
	HomeTeam teams.Team                       `json:"homeTeam"`
	AwayTeam teams.Team                       `json:"awayTeam"`
	Status   GameStatus                       `json:"status"`
	Score    Score                            `json:"score"`
	BoxScore map[string]stats.PlayerGameStats `json:"boxScore,omitempty"`
	Meta     GameMeta                         `json:"meta"`
}

// Final reports whether the game has been played.
func (g Game) Final() bool {
	return g.Status == StatusFinal
}

// WinnerID returns the winning team id, or "" for an unplayed or tied game.
func (g Game) WinnerID() string {
	if !g.Final() || g.Score.Home == g.Score.Away {
		return ""
	}
	if g.Score.Home > g.Score.Away {
		return g.HomeTeam.ID
	}
	return g.AwayTeam.ID
}

// LoserID returns the losing team id, or "" for an unplayed or tied game.
func (g Game) LoserID() string {
	switch g.WinnerID() {
	case "":
		return ""
	case g.HomeTeam.ID:
		return g.AwayTeam.ID
	default:
		return g.HomeTeam.ID
	}
}

// DayResponse is the payload returned by /games?day=N.
type DayResponse struct {
	Season int    `json:"season"`
	Day    int    `json:"day"`
	Games  []Game `json:"games"`
}

// NewDayResponse builds a DayResponse payload.
func NewDayResponse(season, day int, games []Game) DayResponse {
	return DayResponse{
		Season: season,
		Day:    day,
		Games:  games,
	}
}
