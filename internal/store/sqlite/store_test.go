package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/games"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-sim-service/internal/store"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "league.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleGame(id string, season, day int) games.Game {
	return games.Game{
		ID:       id,
		Kind:     games.KindPlayoff,
		HomeTeam: teams.Team{ID: "bos", Name: "Celtics", Conference: teams.East},
		AwayTeam: teams.Team{ID: "mia", Name: "Heat", Conference: teams.East},
		Status:   games.StatusFinal,
		Score:    games.Score{Home: 110, Away: 104},
		BoxScore: map[string]stats.PlayerGameStats{
			"bos-p01": {PlayerID: "bos-p01", TeamID: "bos", Points: 31, Assists: 7},
		},
		Meta: games.GameMeta{Season: season, Day: day, SeriesID: "east-first_round-1v8", GameNumber: 2, Possessions: 200, Seed: 99},
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestSaveGetRoundTrip(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()
	in := sampleGame("g1", 2025, 90)

	if err := s.SaveGame(ctx, in); err != nil {
		t.Fatalf("save game: %v", err)
	}
	got, err := s.GetGame(ctx, "g1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.Score != in.Score || got.Meta != in.Meta || got.HomeTeam != in.HomeTeam {
		t.Fatalf("game = %+v, want %+v", got, in)
	}
	if got.BoxScore["bos-p01"].Points != 31 {
		t.Fatalf("box score not preserved: %+v", got.BoxScore)
	}
}

func TestSaveGameUpserts(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()
	g := sampleGame("g1", 2025, 1)
	_ = s.SaveGame(ctx, g)
	g.Score.Home = 120
	if err := s.SaveGame(ctx, g); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, _ := s.GetGame(ctx, "g1")
	if got.Score.Home != 120 {
		t.Fatalf("expected updated score, got %d", got.Score.Home)
	}
}

func TestGetGameNotFound(t *testing.T) {
	s := openTempStore(t)
	if _, err := s.GetGame(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListGamesBySeason(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()
	for _, g := range []games.Game{sampleGame("b", 2025, 3), sampleGame("a", 2025, 3), sampleGame("c", 2025, 1), sampleGame("z", 2024, 1)} {
		if err := s.SaveGame(ctx, g); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	list, err := s.ListGames(ctx, 2025)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != "c" || list[1].ID != "a" || list[2].ID != "b" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestReopenKeepsDataAndSkipsAppliedMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "league.db")
	ctx := context.Background()
	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = s.SaveGame(ctx, sampleGame("g1", 2025, 1))
	_ = s.Close()

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.GetGame(ctx, "g1"); err != nil {
		t.Fatalf("expected game after reopen: %v", err)
	}
}

func TestExtractUp(t *testing.T) {
	got := extractUp("-- +migrate Up\nCREATE TABLE x (id INT);\n-- +migrate Down\nDROP TABLE x;")
	if got != "\nCREATE TABLE x (id INT);\n" {
		t.Fatalf("unexpected up section %q", got)
	}
	if extractUp("SELECT 1;") != "SELECT 1;" {
		t.Fatalf("expected whole content without markers")
	}
}
