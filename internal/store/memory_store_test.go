package store

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/games"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/stats"
)

func game(id string, season, day int) games.Game {
	return games.Game{
		ID:     id,
		Kind:   games.KindRegular,
		Status: games.StatusFinal,
		Score:  games.Score{Home: 101, Away: 99},
		BoxScore: map[string]stats.PlayerGameStats{
			"p1": {PlayerID: "p1", Points: 20},
		},
		Meta: games.GameMeta{Season: season, Day: day},
	}
}

func TestMemoryStoreSaveAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.SaveGame(ctx, game("g1", 2025, 1)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.GetGame(ctx, "g1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Score.Home != 101 || got.BoxScore["p1"].Points != 20 {
		t.Fatalf("unexpected game %+v", got)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.GetGame(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreRejectsEmptyID(t *testing.T) {
	if err := NewMemoryStore().SaveGame(context.Background(), games.Game{}); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestMemoryStoreListFiltersAndOrders(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	for _, g := range []games.Game{game("b", 2025, 2), game("a", 2025, 2), game("c", 2025, 1), game("old", 2024, 1)} {
		if err := s.SaveGame(ctx, g); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	list, err := s.ListGames(ctx, 2025)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 games, got %d", len(list))
	}
	if list[0].ID != "c" || list[1].ID != "a" || list[2].ID != "b" {
		t.Fatalf("unexpected order %s %s %s", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	g := game("copy", 2025, 1)
	_ = s.SaveGame(ctx, g)
	g.BoxScore["p1"] = stats.PlayerGameStats{PlayerID: "p1", Points: 99}

	got, _ := s.GetGame(ctx, "copy")
	if got.BoxScore["p1"].Points != 20 {
		t.Fatalf("expected stored box score to be isolated from caller")
	}
	got.BoxScore["p1"] = stats.PlayerGameStats{}
	again, _ := s.GetGame(ctx, "copy")
	if again.BoxScore["p1"].Points != 20 {
		t.Fatalf("expected returned box score to be a copy")
	}
}

func TestMemoryStoreHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewMemoryStore().SaveGame(ctx, game("x", 1, 1)); err == nil {
		t.Fatalf("expected context error")
	}
}
