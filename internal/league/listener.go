package league

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/nba-sim-service/internal/archive"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/games"
	"github.com/preston-bernstein/nba-sim-service/internal/logging"
	"github.com/preston-bernstein/nba-sim-service/internal/playoffs"
)

// GameEvent is emitted for every final game. Series is set for postseason games and
// reflects the series after the game was recorded.
type GameEvent struct {
	Game   games.Game       `json:"game"`
	Series *playoffs.Series `json:"series,omitempty"`
}

// ChampionEvent is emitted once per season when the finals end.
type ChampionEvent struct {
	Season   int              `json:"season"`
	Champion playoffs.Entrant `json:"champion"`
	Archive  archive.Season   `json:"-"`
}

// Listener receives league events after the league lock is released, in the order they happened.
type Listener interface {
	OnGame(ctx context.Context, ev GameEvent)
	OnChampion(ctx context.Context, ev ChampionEvent)
}

// ArchiveListener writes the finished season to disk when a champion is crowned.
type ArchiveListener struct {
	writer *archive.Writer
	logger *slog.Logger
}

// NewArchiveListener wraps an archive writer.
func NewArchiveListener(writer *archive.Writer, logger *slog.Logger) *ArchiveListener {
	return &ArchiveListener{writer: writer, logger: logger}
}

func (a *ArchiveListener) OnGame(context.Context, GameEvent) {}

func (a *ArchiveListener) OnChampion(ctx context.Context, ev ChampionEvent) {
	logger := logging.FromContext(ctx, a.logger)
	if err := a.writer.WriteSeason(ev.Archive); err != nil {
		logging.Error(logger, "season archive failed", err, logging.FieldSeason, ev.Season)
		return
	}
	logging.Info(logger, "season archived", logging.FieldSeason, ev.Season, logging.FieldTeamID, ev.Champion.Team.ID)
}

type events struct {
	games    []GameEvent
	champion *ChampionEvent
}

func (l *League) dispatch(ctx context.Context, ev events) {
	for _, listener := range l.listeners {
		for _, g := range ev.games {
			listener.OnGame(ctx, g)
		}
		if ev.champion != nil {
			listener.OnChampion(ctx, *ev.champion)
		}
	}
}
