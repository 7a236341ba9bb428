package testutil

import (
	"testing"

	"github.com/preston-bernstein/nba-sim-service/internal/metrics"
)

// AssertGamesSimulated fails unless the recorder counted exactly want games of kind.
func AssertGamesSimulated(t *testing.T, rec *metrics.Recorder, kind string, want int) {
	t.Helper()
	snap := rec.Sim()
	if got := snap.GamesByKind[kind]; got != want {
		t.Fatalf("expected %d %s games simulated, got %d (all=%v)", want, kind, got, snap.GamesByKind)
	}
	if want > 0 && snap.Possessions == 0 {
		t.Fatalf("expected possessions recorded alongside %d games", want)
	}
}
