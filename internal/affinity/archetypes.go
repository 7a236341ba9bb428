package affinity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
	"github.com/preston-bernstein/nba-sim-service/internal/probability"
)

// ErrUnknownArchetype is returned when an archetype id is not in the catalog.
var ErrUnknownArchetype = errors.New("unknown archetype")

// Archetype is a named specialization of a position.
type Archetype struct {
	ID          string                        `json:"id"`
	Name        string                        `json:"name"`
	Position    players.Position              `json:"position"`
	Description string                        `json:"description"`
	Weights     map[players.Attribute]float64 `json:"weights"`
	Modifiers   probability.Modifiers         `json:"modifiers"`
}

// catalog is built once at init and never mutated afterwards; readers get copies.
var (
	catalog     []Archetype
	catalogByID map[string]Archetype
)

func init() {
	catalog = []Archetype{
		{
			ID: "floor_general", Name: "Floor General", Position: players.PointGuard,
			Description: "Pass-first organizer who protects the ball.",
			Weights:     map[players.Attribute]float64{players.Passing: 0.5, players.BallHandling: 0.3, players.Speed: 0.2},
			Modifiers:   probability.Modifiers{probability.Assist: 1.20, probability.Turnover: 0.85},
		},
		{
			ID: "scoring_point", Name: "Scoring Point Guard", Position: players.PointGuard,
			Description: "Looks for a shot before the pass.",
			Weights:     map[players.Attribute]float64{players.Shooting: 0.4, players.ThreePoint: 0.3, players.BallHandling: 0.3},
			Modifiers:   probability.Modifiers{probability.ShotSelection: 1.20, probability.ThreePointAttempt: 1.15, probability.Assist: 0.90},
		},
		{
			ID: "defensive_pest", Name: "Defensive Pest", Position: players.PointGuard,
			Description: "Pressures ball handlers full court.",
			Weights:     map[players.Attribute]float64{players.Steals: 0.4, players.Defense: 0.4, players.Speed: 0.2},
			Modifiers:   probability.Modifiers{probability.Steal: 1.25, probability.Foul: 1.10},
		},
		{
			ID: "sharpshooter", Name: "Sharpshooter", Position: players.ShootingGuard,
			Description: "Spots up beyond the arc.",
			Weights:     map[players.Attribute]float64{players.ThreePoint: 0.6, players.Shooting: 0.4},
			Modifiers:   probability.Modifiers{probability.ThreePointAttempt: 1.30, probability.ThreePointMake: 1.08},
		},
		{
			ID: "slasher", Name: "Slasher", Position: players.ShootingGuard,
			Description: "Attacks the rim and draws contact.",
			Weights:     map[players.Attribute]float64{players.Speed: 0.4, players.Shooting: 0.3, players.BallHandling: 0.3},
			Modifiers:   probability.Modifiers{probability.TwoPointMake: 1.06, probability.ThreePointAttempt: 0.70},
		},
		{
			ID: "three_and_d", Name: "3-and-D Wing", Position: players.ShootingGuard,
			Description: "Hits open threes and guards the best perimeter scorer.",
			Weights:     map[players.Attribute]float64{players.ThreePoint: 0.5, players.Defense: 0.5},
			Modifiers:   probability.Modifiers{probability.ThreePointMake: 1.04, probability.Steal: 1.10},
		},
		{
			ID: "combo_guard", Name: "Combo Guard", Position: players.ShootingGuard,
			Description: "Can run the offense in spells.",
			Weights:     map[players.Attribute]float64{players.Passing: 0.35, players.BallHandling: 0.35, players.Shooting: 0.3},
			Modifiers:   probability.Modifiers{probability.Assist: 1.10, probability.Turnover: 0.95},
		},
		{
			ID: "point_forward", Name: "Point Forward", Position: players.SmallForward,
			Description: "Initiates offense from the wing.",
			Weights:     map[players.Attribute]float64{players.Passing: 0.4, players.BallHandling: 0.3, players.Rebounding: 0.3},
			Modifiers:   probability.Modifiers{probability.Assist: 1.15},
		},
		{
			ID: "wing_stopper", Name: "Wing Stopper", Position: players.SmallForward,
			Description: "Locks down opposing wings.",
			Weights:     map[players.Attribute]float64{players.Defense: 0.5, players.Steals: 0.3, players.Speed: 0.2},
			Modifiers:   probability.Modifiers{probability.Steal: 1.15, probability.Block: 1.10},
		},
		{
			ID: "two_way_wing", Name: "Two-Way Wing", Position: players.SmallForward,
			Description: "Balanced contributor on both ends.",
			Weights:     map[players.Attribute]float64{players.Shooting: 0.3, players.Defense: 0.3, players.Stamina: 0.2, players.Speed: 0.2},
			Modifiers:   probability.Modifiers{probability.TwoPointMake: 1.03, probability.Steal: 1.05},
		},
		{
			ID: "stretch_four", Name: "Stretch Four", Position: players.PowerForward,
			Description: "Pulls bigs out to the perimeter.",
			Weights:     map[players.Attribute]float64{players.ThreePoint: 0.5, players.Shooting: 0.3, players.Rebounding: 0.2},
			Modifiers:   probability.Modifiers{probability.ThreePointAttempt: 1.25, probability.OffensiveRebound: 0.90},
		},
		{
			ID: "post_scorer", Name: "Post Scorer", Position: players.PowerForward,
			Description: "Scores with back to the basket.",
			Weights:     map[players.Attribute]float64{players.Shooting: 0.5, players.Rebounding: 0.3, players.Stamina: 0.2},
			Modifiers:   probability.Modifiers{probability.TwoPointMake: 1.05, probability.ShotSelection: 1.10},
		},
		{
			ID: "glass_cleaner", Name: "Glass Cleaner", Position: players.PowerForward,
			Description: "Owns the boards on both ends.",
			Weights:     map[players.Attribute]float64{players.Rebounding: 0.6, players.Defense: 0.2, players.Stamina: 0.2},
			Modifiers:   probability.Modifiers{probability.OffensiveRebound: 1.20, probability.DefensiveRebound: 1.20},
		},
		{
			ID: "rim_protector", Name: "Rim Protector", Position: players.Center,
			Description: "Erases shots at the basket.",
			Weights:     map[players.Attribute]float64{players.Blocks: 0.5, players.Defense: 0.3, players.Rebounding: 0.2},
			Modifiers:   probability.Modifiers{probability.Block: 1.25, probability.Foul: 1.05},
		},
		{
			ID: "post_anchor", Name: "Post Anchor", Position: players.Center,
			Description: "Interior scorer and rebounder.",
			Weights:     map[players.Attribute]float64{players.Rebounding: 0.4, players.Shooting: 0.35, players.Stamina: 0.25},
			Modifiers:   probability.Modifiers{probability.TwoPointMake: 1.04, probability.OffensiveRebound: 1.10},
		},
		{
			ID: "stretch_big", Name: "Stretch Big", Position: players.Center,
			Description: "Center who spaces the floor.",
			Weights:     map[players.Attribute]float64{players.ThreePoint: 0.4, players.Shooting: 0.3, players.Rebounding: 0.3},
			Modifiers:   probability.Modifiers{probability.ThreePointAttempt: 1.30, probability.Block: 0.90},
		},
	}

	catalogByID = make(map[string]Archetype, len(catalog))
	for _, a := range catalog {
		catalogByID[a.ID] = a
	}
}

func (a Archetype) clone() Archetype {
	out := a
	out.Weights = make(map[players.Attribute]float64, len(a.Weights))
	for k, v := range a.Weights {
		out.Weights[k] = v
	}
	out.Modifiers = make(probability.Modifiers, len(a.Modifiers))
	for k, v := range a.Modifiers {
		out.Modifiers[k] = v
	}
	return out
}

// Archetypes returns every archetype in catalog order.
func Archetypes() []Archetype {
	out := make([]Archetype, 0, len(catalog))
	for _, a := range catalog {
		out = append(out, a.clone())
	}
	return out
}

// ArchetypesFor returns the archetypes belonging to a position.
func ArchetypesFor(pos players.Position) []Archetype {
	var out []Archetype
	for _, a := range catalog {
		if a.Position == pos {
			out = append(out, a.clone())
		}
	}
	return out
}

// Lookup finds an archetype by id.
func Lookup(id string) (Archetype, bool) {
	a, ok := catalogByID[id]
	if !ok {
		return Archetype{}, false
	}
	return a.clone(), true
}

// RoleModifiers returns the gameplay modifiers of an archetype id; unknown or empty ids yield none.
// The returned map is shared and must not be mutated.
func RoleModifiers(id string) probability.Modifiers {
	if a, ok := catalogByID[id]; ok {
		return a.Modifiers
	}
	return nil
}

// RoleFit is the weighted sum of the archetype's attributes, clamped to [0,100].
func RoleFit(a players.Attributes, arch Archetype) float64 {
	sum := 0.0
	for attr, w := range arch.Weights {
		sum += w * float64(a.Value(attr))
	}
	return clampScore(sum)
}

// RoleScore pairs an archetype id with a fit score.
type RoleScore struct {
	ArchetypeID string  `json:"archetypeId"`
	Name        string  `json:"name"`
	Fit         float64 `json:"fit"`
}

// RankRoles scores every archetype of a position, best first; ties break by id.
func RankRoles(a players.Attributes, pos players.Position) []RoleScore {
	var out []RoleScore
	for _, arch := range catalog {
		if arch.Position != pos {
			continue
		}
		out = append(out, RoleScore{ArchetypeID: arch.ID, Name: arch.Name, Fit: RoleFit(a, arch)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Fit != out[j].Fit {
			return out[i].Fit > out[j].Fit
		}
		return out[i].ArchetypeID < out[j].ArchetypeID
	})
	return out
}

// BestRole returns the best-fitting archetype id for the player's position.
func BestRole(p players.Player) string {
	ranked := RankRoles(p.Attributes, p.Position)
	if len(ranked) == 0 {
		return ""
	}
	return ranked[0].ArchetypeID
}

// AssignArchetype validates and sets an archetype on a player. An empty id clears it.
func AssignArchetype(p *players.Player, id string) error {
	if id == "" {
		p.Archetype = ""
		return nil
	}
	arch, ok := catalogByID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownArchetype, id)
	}
	return p.AssignArchetype(arch.ID, arch.Position)
}

// Validate checks that a player's archetype, when set, exists and belongs to their position.
func Validate(p players.Player) error {
	if p.Archetype == "" {
		return nil
	}
	arch, ok := catalogByID[p.Archetype]
	if !ok {
		return fmt.Errorf("player %s: %w: %q", p.ID, ErrUnknownArchetype, p.Archetype)
	}
	if arch.Position != p.Position {
		return fmt.Errorf("%w: %s is a %s archetype, player %s plays %s", players.ErrArchetypePosition, arch.ID, arch.Position, p.ID, p.Position)
	}
	return nil
}
