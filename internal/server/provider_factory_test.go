package server

import (
	"context"
	"testing"

	"github.com/preston-bernstein/nba-sim-service/internal/config"
	"github.com/preston-bernstein/nba-sim-service/internal/metrics"
)

func TestProviderFactoryBuildsFixtureLeague(t *testing.T) {
	rec := metrics.NewRecorder()
	cfg := config.Config{League: config.LeagueConfig{Provider: config.ProviderFixture, Seed: 3, RosterSize: 9}}
	prov := newProviderFactory(nil, rec).build(cfg)
	if prov == nil {
		t.Fatalf("expected provider")
	}

	ts, err := prov.FetchTeams(context.Background())
	if err != nil || len(ts) == 0 {
		t.Fatalf("expected fixture teams, got %d err=%v", len(ts), err)
	}
	ps, err := prov.FetchPlayers(context.Background(), ts)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(ps) != len(ts)*9 {
		t.Fatalf("expected 9 players per team, got %d", len(ps))
	}
	if rec.ProviderCalls("fixture") != 2 {
		t.Fatalf("expected two recorded provider calls, got %d", rec.ProviderCalls("fixture"))
	}
}

func TestStorageFactoryFallsBackToMemory(t *testing.T) {
	st, err := openStore(context.Background(), config.StorageConfig{Driver: "postgres"}, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	defer st.Close()
	if _, err := st.ListGames(context.Background(), 2030); err != nil {
		t.Fatalf("expected usable memory store, got %v", err)
	}
}

func TestStorageFactoryReportsSQLiteErrors(t *testing.T) {
	if _, err := openStore(context.Background(), config.StorageConfig{Driver: config.StorageSQLite, SQLitePath: " "}, nil); err == nil {
		t.Fatalf("expected error for blank sqlite path")
	}
}

func TestBuildArchiveSharesBasePath(t *testing.T) {
	dir := t.TempDir()
	arch := buildArchive(config.ArchiveConfig{Path: dir, Retention: 2})
	if arch.writer.BasePath() != dir {
		t.Fatalf("expected writer rooted at %s, got %s", dir, arch.writer.BasePath())
	}
	seasons, err := arch.store.Seasons()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(seasons) != 0 {
		t.Fatalf("expected empty archive, got %v", seasons)
	}
}
