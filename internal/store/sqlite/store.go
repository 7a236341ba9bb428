// Package sqlite provides a SQLite-backed game store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/games"
	"github.com/preston-bernstein/nba-sim-service/internal/store"
	"github.com/preston-bernstein/nba-sim-service/internal/store/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists games in SQLite. Box scores are stored as JSON alongside indexed columns.
type Store struct {
	sqlDB *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open opens a SQLite game store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveGame inserts or replaces a game.
func (s *Store) SaveGame(ctx context.Context, g games.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("game id is required")
	}
	payload, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.ID, err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO games (
		   id, season, day, kind, home_team_id, away_team_id, home_score, away_score, payload, saved_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   season = excluded.season,
		   day = excluded.day,
		   kind = excluded.kind,
		   home_team_id = excluded.home_team_id,
		   away_team_id = excluded.away_team_id,
		   home_score = excluded.home_score,
		   away_score = excluded.away_score,
		   payload = excluded.payload,
		   saved_at = excluded.saved_at`,
		g.ID,
		g.Meta.Season,
		g.Meta.Day,
		string(g.Kind),
		g.HomeTeam.ID,
		g.AwayTeam.ID,
		g.Score.Home,
		g.Score.Away,
		string(payload),
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}
	return nil
}

// GetGame returns one game by id.
func (s *Store) GetGame(ctx context.Context, id string) (games.Game, error) {
	if err := ctx.Err(); err != nil {
		return games.Game{}, err
	}
	if s == nil || s.sqlDB == nil {
		return games.Game{}, fmt.Errorf("storage is not configured")
	}
	var payload string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT payload FROM games WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return games.Game{}, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	if err != nil {
		return games.Game{}, fmt.Errorf("get game %s: %w", id, err)
	}
	return decodeGame(payload)
}

// ListGames returns a season's games ordered by day, then id.
func (s *Store) ListGames(ctx context.Context, season int) ([]games.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT payload FROM games WHERE season = ? ORDER BY day, id`, season)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	out := make([]games.Game, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g, err := decodeGame(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return out, nil
}

func decodeGame(payload string) (games.Game, error) {
	var g games.Game
	if err := json.Unmarshal([]byte(payload), &g); err != nil {
		return games.Game{}, fmt.Errorf("decode game: %w", err)
	}
	return g, nil
}
