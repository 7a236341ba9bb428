package testutil

import (
	"github.com/preston-bernstein/nba-sim-service/internal/domain/games"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
)

// SampleTeam returns a team fixture in the East.
func SampleTeam(id string) teams.Team {
	return teams.Team{
		ID:           id,
		Name:         "Team " + id,
		FullName:     "Sample Team " + id,
		Abbreviation: id,
		City:         "Boston",
		Conference:   teams.East,
		Division:     "Atlantic",
	}
}

// SampleTeams returns one team per conference.
func SampleTeams() []teams.Team {
	west := SampleTeam("away")
	west.City = "Denver"
	west.Conference = teams.West
	west.Division = "Northwest"
	return []teams.Team{SampleTeam("home"), west}
}

// SampleGame returns a final regular-season game with a two-player box score.
func SampleGame(id string) games.Game {
	return games.Game{
		ID:       id,
		Kind:     games.KindRegular,
		HomeTeam: SampleTeam("home"),
		AwayTeam: SampleTeam("away"),
		Status:   games.StatusFinal,
		Score:    games.Score{Home: 4, Away: 2},
		BoxScore: map[string]stats.PlayerGameStats{
			"home-p01": {PlayerID: "home-p01", TeamID: "home", Points: 4},
			"away-p01": {PlayerID: "away-p01", TeamID: "away", Points: 2},
		},
		Meta: games.GameMeta{Season: 2030, Day: 1, Possessions: 60, Seed: 1},
	}
}
