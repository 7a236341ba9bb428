package probability

import (
	"math"
	"testing"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBaseRates(t *testing.T) {
	a := players.Attributes{
		Shooting: 100, ThreePoint: 50, Rebounding: 100, BallHandling: 100,
		Passing: 50, Blocks: 100, Defense: 100, Steals: 100,
	}
	cases := []struct {
		event Event
		ctx   Context
		want  float64
	}{
		{TwoPointMake, Context{}, 0.60},
		{ThreePointMake, Context{}, 0.40},
		{OffensiveRebound, Context{}, 0.40},
		{DefensiveRebound, Context{}, 0.60},
		{Turnover, Context{}, 0.05},
		{Assist, Context{}, 0.60},
		{Block, Context{}, 0.15},
		{Foul, Context{}, 0.06},
		{FreeThrow, Context{}, 0.90},
		{ThreePointAttempt, Context{}, 0.45 * 0.25},
		{Steal, Context{}, 0.10},
		{Steal, Context{Holder: &players.Attributes{BallHandling: 100}}, 0.06},
	}
	for _, tc := range cases {
		if got := Base(tc.event, a, tc.ctx); !approx(got, tc.want) {
			t.Fatalf("%s expected %.4f, got %.4f", tc.event, tc.want, got)
		}
	}
}

func TestBaseRatesAtZeroRatings(t *testing.T) {
	var a players.Attributes
	if got := Base(TwoPointMake, a, Context{}); !approx(got, 0.45) {
		t.Fatalf("expected 0.45 floor for two-point makes, got %v", got)
	}
	if got := Base(Turnover, a, Context{}); !approx(got, 0.15) {
		t.Fatalf("expected 0.15 turnover ceiling, got %v", got)
	}
	if got := Base(ThreePointAttempt, a, Context{}); got != 0 {
		t.Fatalf("expected no threes from a zero rated shooter, got %v", got)
	}
	if got := Base(Event("nope"), a, Context{}); got != 0 {
		t.Fatalf("expected unknown event to be 0, got %v", got)
	}
}

func TestBaseClampsOutOfRangeRatings(t *testing.T) {
	over := players.Attributes{Shooting: 250}
	if got := Base(TwoPointMake, over, Context{}); !approx(got, 0.60) {
		t.Fatalf("expected ratings above 100 to clamp, got %v", got)
	}
}

func TestPositionModifiers(t *testing.T) {
	a := players.Attributes{Passing: 100, Rebounding: 0, Blocks: 100, ThreePoint: 100}
	cases := []struct {
		pos   players.Position
		event Event
		want  float64
	}{
		{players.PointGuard, Assist, 0.70 * 1.15},
		{players.ShootingGuard, ThreePointAttempt, 0.45 * 1.20},
		{players.PowerForward, OffensiveRebound, 0.25 * 1.15},
		{players.Center, OffensiveRebound, 0.25 * 1.25},
		{players.Center, Block, 0.15 * 1.20},
		{players.SmallForward, Assist, 0.70},
	}
	for _, tc := range cases {
		got := Default.Rate(tc.event, a, Context{Position: tc.pos})
		if !approx(got, tc.want) {
			t.Fatalf("%s %s expected %.4f, got %.4f", tc.pos, tc.event, tc.want, got)
		}
	}
}

func TestStackingOrderAndClamp(t *testing.T) {
	a := players.Attributes{Passing: 100}
	ctx := Context{
		Position: players.PointGuard,
		Role:     Modifiers{Assist: 1.20},
		Strategy: Modifiers{Assist: 2.0},
	}
	trace := Default.Trace(Assist, a, ctx)
	if len(trace) != 4 {
		t.Fatalf("expected base + 3 stages, got %d", len(trace))
	}
	if !approx(trace[0], 0.70) || !approx(trace[1], 0.805) || !approx(trace[2], 0.966) {
		t.Fatalf("unexpected intermediate rates %v", trace)
	}
	if trace[3] != 1 {
		t.Fatalf("expected strategy stage to clamp at 1, got %v", trace[3])
	}
	if got := Default.Rate(Assist, a, ctx); got != 1 {
		t.Fatalf("expected clamped rate 1, got %v", got)
	}
}

func TestNegativeModifierClampsToZero(t *testing.T) {
	a := players.Attributes{Shooting: 50}
	got := Default.Rate(TwoPointMake, a, Context{Role: Modifiers{TwoPointMake: -3}})
	if got != 0 {
		t.Fatalf("expected negative stacking to clamp to 0, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(math.NaN()) != 0 || Clamp(-0.1) != 0 || Clamp(1.5) != 1 || Clamp(0.3) != 0.3 {
		t.Fatalf("unexpected clamp behavior")
	}
}

func TestWeightIsNotCappedAtOne(t *testing.T) {
	got := Default.Weight(ShotSelection, 150, Context{Role: Modifiers{ShotSelection: 1.2}})
	if !approx(got, 180) {
		t.Fatalf("expected weight 180, got %v", got)
	}
	if w := Default.Weight(ShotSelection, -4, Context{}); w != 0 {
		t.Fatalf("expected negative weights floored to 0, got %v", w)
	}
}

func TestPositionModifiersReturnsCopy(t *testing.T) {
	mods := PositionModifiers(players.Center)
	mods[Block] = 9
	if PositionModifiers(players.Center)[Block] != 1.20 {
		t.Fatalf("expected position table to be immutable")
	}
}
