package stats

// PlayerGameStats is one player's box score line for a single completed game.
type PlayerGameStats struct {
	PlayerID               string `json:"playerId"`
	TeamID                 string `json:"teamId"`
	Points                 int    `json:"points"`
	Rebounds               int    `json:"rebounds"`
	OffensiveRebounds      int    `json:"offensiveRebounds"`
	Assists                int    `json:"assists"`
	FieldGoalsMade         int    `json:"fieldGoalsMade"`
	FieldGoalsAttempted    int    `json:"fieldGoalsAttempted"`
	ThreePointersMade      int    `json:"threePointersMade"`
	ThreePointersAttempted int    `json:"threePointersAttempted"`
	FreeThrowsMade         int    `json:"freeThrowsMade"`
	FreeThrowsAttempted    int    `json:"freeThrowsAttempted"`
	Turnovers              int    `json:"turnovers"`
	Steals                 int    `json:"steals"`
	Blocks                 int    `json:"blocks"`
	Fouls                  int    `json:"fouls"`
}

// FieldGoalPercentage returns made/attempted, 0 when nothing was attempted.
func (s PlayerGameStats) FieldGoalPercentage() float64 {
	return percentage(s.FieldGoalsMade, s.FieldGoalsAttempted)
}

// ThreePointPercentage returns made/attempted threes, 0 when nothing was attempted.
func (s PlayerGameStats) ThreePointPercentage() float64 {
	return percentage(s.ThreePointersMade, s.ThreePointersAttempted)
}

// FreeThrowPercentage returns made/attempted free throws, 0 when nothing was attempted.
func (s PlayerGameStats) FreeThrowPercentage() float64 {
	return percentage(s.FreeThrowsMade, s.FreeThrowsAttempted)
}

// PlayerSeasonStats accumulates game lines for one player across a season (or a postseason).
type PlayerSeasonStats struct {
	PlayerID               string `json:"playerId"`
	TeamID                 string `json:"teamId"`
	GamesPlayed            int    `json:"gamesPlayed"`
	Points                 int    `json:"points"`
	Rebounds               int    `json:"rebounds"`
	OffensiveRebounds      int    `json:"offensiveRebounds"`
	Assists                int    `json:"assists"`
	FieldGoalsMade         int    `json:"fieldGoalsMade"`
	FieldGoalsAttempted    int    `json:"fieldGoalsAttempted"`
	ThreePointersMade      int    `json:"threePointersMade"`
	ThreePointersAttempted int    `json:"threePointersAttempted"`
	FreeThrowsMade         int    `json:"freeThrowsMade"`
	FreeThrowsAttempted    int    `json:"freeThrowsAttempted"`
	Turnovers              int    `json:"turnovers"`
	Steals                 int    `json:"steals"`
	Blocks                 int    `json:"blocks"`
	Fouls                  int    `json:"fouls"`
}

// AddGameStats folds one game into the totals and counts the game as played.
// A nil line is skipped. Not idempotent: each completed game must be folded exactly once.
func (s *PlayerSeasonStats) AddGameStats(g *PlayerGameStats) {
	if g == nil {
		return
	}
	if s.PlayerID == "" {
		s.PlayerID = g.PlayerID
	}
	if g.TeamID != "" {
		s.TeamID = g.TeamID
	}
	s.GamesPlayed++
	s.Points += g.Points
	s.Rebounds += g.Rebounds
	s.OffensiveRebounds += g.OffensiveRebounds
	s.Assists += g.Assists
	s.FieldGoalsMade += g.FieldGoalsMade
	s.FieldGoalsAttempted += g.FieldGoalsAttempted
	s.ThreePointersMade += g.ThreePointersMade
	s.ThreePointersAttempted += g.ThreePointersAttempted
	s.FreeThrowsMade += g.FreeThrowsMade
	s.FreeThrowsAttempted += g.FreeThrowsAttempted
	s.Turnovers += g.Turnovers
	s.Steals += g.Steals
	s.Blocks += g.Blocks
	s.Fouls += g.Fouls
}

func (s PlayerSeasonStats) FieldGoalPercentage() float64 {
	return percentage(s.FieldGoalsMade, s.FieldGoalsAttempted)
}

func (s PlayerSeasonStats) ThreePointPercentage() float64 {
	return percentage(s.ThreePointersMade, s.ThreePointersAttempted)
}

func (s PlayerSeasonStats) FreeThrowPercentage() float64 {
	return percentage(s.FreeThrowsMade, s.FreeThrowsAttempted)
}

func (s PlayerSeasonStats) PointsPerGame() float64   { return s.perGame(s.Points) }
func (s PlayerSeasonStats) ReboundsPerGame() float64 { return s.perGame(s.Rebounds) }
func (s PlayerSeasonStats) AssistsPerGame() float64  { return s.perGame(s.Assists) }
func (s PlayerSeasonStats) StealsPerGame() float64   { return s.perGame(s.Steals) }
func (s PlayerSeasonStats) BlocksPerGame() float64   { return s.perGame(s.Blocks) }
func (s PlayerSeasonStats) TurnoversPerGame() float64 {
	return s.perGame(s.Turnovers)
}

func (s PlayerSeasonStats) perGame(total int) float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(total) / float64(s.GamesPlayed)
}

func percentage(made, attempted int) float64 {
	if attempted == 0 {
		return 0
	}
	return float64(made) / float64(attempted)
}
