// Package archive writes completed seasons to disk as JSON and reads them back.
package archive

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-sim-service/internal/playoffs"
)

// Season is the archived record of one finished season.
type Season struct {
	Season       int                       `json:"season"`
	ArchivedAt   time.Time                 `json:"archivedAt"`
	Champion     *playoffs.Entrant         `json:"champion,omitempty"`
	Teams        []teams.Team              `json:"teams"`
	Standings    []playoffs.Record         `json:"standings"`
	Bracket      playoffs.View             `json:"bracket"`
	SeasonStats  []stats.PlayerSeasonStats `json:"seasonStats"`
	PlayoffStats []stats.PlayerSeasonStats `json:"playoffStats"`
	GamesPlayed  int                       `json:"gamesPlayed"`
}

// SeasonPath builds the path to a season archive.
func SeasonPath(basePath string, season int) string {
	return filepath.Join(basePath, "seasons", fmt.Sprintf("%d.json", season))
}
