package testutil

import (
	"testing"
	"time"

	"github.com/preston-bernstein/nba-sim-service/internal/archive"
)

// NewTempArchive returns an archive writer rooted in a temp dir.
func NewTempArchive(t *testing.T, retention int) *archive.Writer {
	t.Helper()
	return archive.NewWriter(t.TempDir(), retention)
}

// WriteSeason archives a minimal season, failing the test on error.
func WriteSeason(t *testing.T, w *archive.Writer, season int) {
	t.Helper()
	if err := w.WriteSeason(archive.Season{
		Season:      season,
		ArchivedAt:  time.Date(season, 6, 30, 0, 0, 0, 0, time.UTC),
		GamesPlayed: 1,
	}); err != nil {
		t.Fatalf("failed to write season %d: %v", season, err)
	}
}
