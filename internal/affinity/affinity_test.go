package affinity

import (
	"errors"
	"math"
	"testing"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
	"github.com/preston-bernstein/nba-sim-service/internal/probability"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPositionFormulas(t *testing.T) {
	a := players.Attributes{
		Shooting: 80, ThreePoint: 70, Defense: 60, Speed: 90, Stamina: 70,
		Passing: 85, Rebounding: 40, BallHandling: 88, Blocks: 20, Steals: 50,
	}
	cases := []struct {
		pos    players.Position
		height int
		want   float64
	}{
		// 34 + 26.4 + 18 - 1.5
		{players.PointGuard, 75, 76.9},
		// 28 + 24.5 + 18 + 10
		{players.ShootingGuard, 75, 80.5},
		// 20 + 15 + 20 + 25
		{players.SmallForward, 78, 80},
		// 14 + 15 + 16 + 2
		{players.PowerForward, 78, 47},
		// 14 + 6 + 15 + 3
		{players.Center, 80, 38},
	}
	for _, tc := range cases {
		if got := ForPosition(tc.pos, a, tc.height); !approx(got, tc.want) {
			t.Fatalf("%s at %d expected %.2f, got %.2f", tc.pos, tc.height, tc.want, got)
		}
	}
}

func TestHeightBonusWindows(t *testing.T) {
	a := players.Attributes{Shooting: 50, ThreePoint: 50, Speed: 50, Defense: 50, Stamina: 50}
	if ShootingGuardAffinity(a, 78)-ShootingGuardAffinity(a, 79) != 10 {
		t.Fatalf("expected 10 point SG bonus to stop after 78 inches")
	}
	if SmallForwardAffinity(a, 76)-SmallForwardAffinity(a, 75) != 25 {
		t.Fatalf("expected 25 point SF bonus to start at 76 inches")
	}
	if PointGuardAffinity(a, 70) <= PointGuardAffinity(a, 80) {
		t.Fatalf("expected taller point guards to be penalized")
	}
}

func TestAffinityClamped(t *testing.T) {
	maxed := players.Attributes{Rebounding: 100, Blocks: 100, Defense: 100}
	if got := CenterAffinity(maxed, 90); got != 100 {
		t.Fatalf("expected clamp at 100, got %v", got)
	}
	var zero players.Attributes
	if got := PointGuardAffinity(zero, 86); got != 0 {
		t.Fatalf("expected clamp at 0, got %v", got)
	}
	if got := ForPosition(players.Position("QB"), maxed, 80); got != 0 {
		t.Fatalf("expected unknown position to score 0, got %v", got)
	}
}

func TestPositionAffinityIsDeterministic(t *testing.T) {
	a := players.Attributes{Shooting: 61, ThreePoint: 44, Defense: 72, Speed: 55, Stamina: 63, Passing: 30, Rebounding: 81, BallHandling: 35, Blocks: 77, Steals: 40}
	first := PositionAffinity(a, 83)
	second := PositionAffinity(a, 83)
	if len(first) != 5 {
		t.Fatalf("expected 5 positions, got %d", len(first))
	}
	for pos, score := range first {
		if second[pos] != score {
			t.Fatalf("expected identical scores for %s", pos)
		}
		if score < 0 || score > 100 {
			t.Fatalf("score out of range for %s: %v", pos, score)
		}
	}
	if got := BestPosition(a, 83); got != players.Center {
		t.Fatalf("expected a tall rebounder to fit C, got %s", got)
	}
}

func TestBestPositionTieOrder(t *testing.T) {
	var zero players.Attributes
	// Every score clamps to zero; PG wins the tie by order.
	if got := BestPosition(zero, 72); got != players.PointGuard {
		t.Fatalf("expected PG on ties, got %s", got)
	}
}

func TestCatalogShape(t *testing.T) {
	all := Archetypes()
	if len(all) != 16 {
		t.Fatalf("expected 16 archetypes, got %d", len(all))
	}
	seen := map[string]bool{}
	for _, pos := range players.Positions {
		roles := ArchetypesFor(pos)
		if len(roles) < 3 || len(roles) > 4 {
			t.Fatalf("expected 3-4 archetypes for %s, got %d", pos, len(roles))
		}
		for _, r := range roles {
			if seen[r.ID] {
				t.Fatalf("duplicate archetype id %s", r.ID)
			}
			seen[r.ID] = true
			sum := 0.0
			for _, w := range r.Weights {
				sum += w
			}
			if math.Abs(sum-1) > 0.001 {
				t.Fatalf("weights for %s sum to %v", r.ID, sum)
			}
			if len(r.Modifiers) == 0 {
				t.Fatalf("archetype %s has no gameplay modifiers", r.ID)
			}
		}
	}
}

func TestCatalogIsReadOnly(t *testing.T) {
	arch, ok := Lookup("floor_general")
	if !ok {
		t.Fatalf("expected floor_general in catalog")
	}
	arch.Modifiers[probability.Assist] = 99
	arch.Weights[players.Passing] = 99

	again, _ := Lookup("floor_general")
	if again.Modifiers[probability.Assist] != 1.20 || again.Weights[players.Passing] != 0.5 {
		t.Fatalf("expected catalog to be unaffected by caller mutation")
	}
	if RoleModifiers("floor_general").Factor(probability.Assist) != 1.20 {
		t.Fatalf("expected role modifiers from catalog")
	}
	if RoleModifiers("") != nil {
		t.Fatalf("expected no modifiers without an archetype")
	}
}

func TestRoleFitAndRanking(t *testing.T) {
	a := players.Attributes{Passing: 90, BallHandling: 80, Speed: 70, Shooting: 40, ThreePoint: 30, Steals: 20, Defense: 20}
	floor, _ := Lookup("floor_general")
	if got := RoleFit(a, floor); !approx(got, 45+24+14) {
		t.Fatalf("expected floor general fit 83, got %v", got)
	}
	ranked := RankRoles(a, players.PointGuard)
	if len(ranked) != 3 || ranked[0].ArchetypeID != "floor_general" {
		t.Fatalf("expected floor_general to rank first, got %+v", ranked)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Fit > ranked[i-1].Fit {
			t.Fatalf("expected descending fits, got %+v", ranked)
		}
	}
	if got := BestRole(players.Player{Position: players.PointGuard, Attributes: a}); got != "floor_general" {
		t.Fatalf("expected best role floor_general, got %s", got)
	}
}

func TestRankRolesTieBreaksByID(t *testing.T) {
	var zero players.Attributes
	ranked := RankRoles(zero, players.Center)
	for i := 1; i < len(ranked); i++ {
		if ranked[i].ArchetypeID < ranked[i-1].ArchetypeID {
			t.Fatalf("expected id order on ties, got %+v", ranked)
		}
	}
}

func TestAssignArchetype(t *testing.T) {
	p := players.Player{ID: "p1", Position: players.Center}
	if err := AssignArchetype(&p, "sharpshooter"); !errors.Is(err, players.ErrArchetypePosition) {
		t.Fatalf("expected position mismatch, got %v", err)
	}
	if err := AssignArchetype(&p, "nope"); !errors.Is(err, ErrUnknownArchetype) {
		t.Fatalf("expected unknown archetype, got %v", err)
	}
	if err := AssignArchetype(&p, "rim_protector"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if p.Archetype != "rim_protector" {
		t.Fatalf("expected archetype assigned, got %s", p.Archetype)
	}
	if err := AssignArchetype(&p, ""); err != nil {
		t.Fatalf("expected empty id to clear, got %v", err)
	}
	if p.Archetype != "" {
		t.Fatalf("expected archetype cleared, got %s", p.Archetype)
	}
}

func TestValidateArchetype(t *testing.T) {
	cases := []struct {
		name   string
		player players.Player
		want   error
	}{
		{"none", players.Player{ID: "a", Position: players.PointGuard}, nil},
		{"matching", players.Player{ID: "b", Position: players.Center, Archetype: "rim_protector"}, nil},
		{"other position", players.Player{ID: "c", Position: players.PointGuard, Archetype: "sharpshooter"}, players.ErrArchetypePosition},
		{"unknown", players.Player{ID: "d", Position: players.PointGuard, Archetype: "no_such_role"}, ErrUnknownArchetype},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.player)
			if tc.want == nil && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
