package boxscore

import (
	"sort"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/stats"
)

// Stat names a sortable season total for leaderboards.
type Stat string

const (
	StatPoints    Stat = "points"
	StatRebounds  Stat = "rebounds"
	StatAssists   Stat = "assists"
	StatSteals    Stat = "steals"
	StatBlocks    Stat = "blocks"
	StatTurnovers Stat = "turnovers"
	StatThrees    Stat = "threes"
)

// ParseStat validates a leaderboard stat name.
func ParseStat(raw string) (Stat, bool) {
	switch s := Stat(raw); s {
	case StatPoints, StatRebounds, StatAssists, StatSteals, StatBlocks, StatTurnovers, StatThrees:
		return s, true
	default:
		return "", false
	}
}

// Ledger holds cumulative stats per player for one season or postseason.
// FoldGame is the only mutation besides Reset; callers serialize writes.
type Ledger struct {
	players map[string]*stats.PlayerSeasonStats
	games   int
}

// NewLedger constructs an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{players: make(map[string]*stats.PlayerSeasonStats)}
}

// FoldGame adds every line of a completed game. Each game must be folded at most once.
func (l *Ledger) FoldGame(lines map[string]stats.PlayerGameStats) {
	for id := range lines {
		line := lines[id]
		season, ok := l.players[id]
		if !ok {
			season = &stats.PlayerSeasonStats{PlayerID: id}
			l.players[id] = season
		}
		season.AddGameStats(&line)
	}
	l.games++
}

// Reset clears all totals, e.g. at the start of a new season.
func (l *Ledger) Reset() {
	l.players = make(map[string]*stats.PlayerSeasonStats)
	l.games = 0
}

// Games returns how many games have been folded.
func (l *Ledger) Games() int {
	return l.games
}

// Player returns a copy of a player's totals; missing players read as zero.
func (l *Ledger) Player(id string) (stats.PlayerSeasonStats, bool) {
	s, ok := l.players[id]
	if !ok {
		return stats.PlayerSeasonStats{PlayerID: id}, false
	}
	return *s, true
}

// All returns copies of every player's totals sorted by player id.
func (l *Ledger) All() []stats.PlayerSeasonStats {
	out := make([]stats.PlayerSeasonStats, 0, len(l.players))
	for _, s := range l.players {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

// Leaders returns the top n players by per-game average of stat; ties break by total then id.
func (l *Ledger) Leaders(stat Stat, n int) []stats.PlayerSeasonStats {
	all := l.All()
	sort.SliceStable(all, func(i, j int) bool {
		ai, aj := perGame(all[i], stat), perGame(all[j], stat)
		if ai != aj {
			return ai > aj
		}
		ti, tj := total(all[i], stat), total(all[j], stat)
		if ti != tj {
			return ti > tj
		}
		return all[i].PlayerID < all[j].PlayerID
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

func total(s stats.PlayerSeasonStats, stat Stat) int {
	switch stat {
	case StatPoints:
		return s.Points
	case StatRebounds:
		return s.Rebounds
	case StatAssists:
		return s.Assists
	case StatSteals:
		return s.Steals
	case StatBlocks:
		return s.Blocks
	case StatTurnovers:
		return s.Turnovers
	case StatThrees:
		return s.ThreePointersMade
	default:
		return 0
	}
}

func perGame(s stats.PlayerSeasonStats, stat Stat) float64 {
	switch stat {
	case StatPoints:
		return s.PointsPerGame()
	case StatRebounds:
		return s.ReboundsPerGame()
	case StatAssists:
		return s.AssistsPerGame()
	case StatSteals:
		return s.StealsPerGame()
	case StatBlocks:
		return s.BlocksPerGame()
	case StatTurnovers:
		return s.TurnoversPerGame()
	}
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(total(s, stat)) / float64(s.GamesPlayed)
}
