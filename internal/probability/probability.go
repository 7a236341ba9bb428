// Package probability turns player ratings and context into event probabilities.
//
// Every rate is computed as a base formula over the player's ratings and then passed through
// an ordered Pipeline of multiplicative stages: position, role archetype, team strategy.
// Each stage clamps its output to [0,1]; stacking never produces an error.
package probability

import (
	"math"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
)

// Event identifies a rate the simulator can ask for.
type Event string

const (
	TwoPointMake      Event = "two_point_make"
	ThreePointMake    Event = "three_point_make"
	ThreePointAttempt Event = "three_point_attempt"
	OffensiveRebound  Event = "offensive_rebound"
	DefensiveRebound  Event = "defensive_rebound"
	Turnover          Event = "turnover"
	Assist            Event = "assist"
	Block             Event = "block"
	Steal             Event = "steal"
	Foul              Event = "foul"
	FreeThrow         Event = "free_throw"
	ShotSelection     Event = "shot_selection"
)

// Modifiers maps events to multiplicative factors. Missing events mean x1.0.
type Modifiers map[Event]float64

// Factor returns the multiplier for the event.
func (m Modifiers) Factor(e Event) float64 {
	if f, ok := m[e]; ok {
		return f
	}
	return 1
}

// Context is what a rate depends on beyond the acting player's own ratings.
type Context struct {
	Position players.Position
	Role     Modifiers
	Strategy Modifiers
	// Holder is the ball handler's ratings when the acting player is the defender (steals).
	Holder *players.Attributes
}

// Clamp bounds a probability to [0,1]; NaN becomes 0.
func Clamp(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func norm(v int) float64 {
	return float64(players.ClampRating(v)) / 100
}

// Base returns the unmodified rate for an event.
func Base(e Event, a players.Attributes, ctx Context) float64 {
	switch e {
	case TwoPointMake:
		return 0.45 + 0.15*norm(a.Shooting)
	case ThreePointMake:
		return 0.35 + 0.10*norm(a.ThreePoint)
	case ThreePointAttempt:
		tp := norm(a.ThreePoint)
		return 0.45 * tp * tp
	case OffensiveRebound:
		return 0.25 + 0.15*norm(a.Rebounding)
	case DefensiveRebound:
		return 1 - (0.25 + 0.15*norm(a.Rebounding))
	case Turnover:
		return math.Max(0, 0.15-0.10*norm(a.BallHandling))
	case Assist:
		return 0.50 + 0.20*norm(a.Passing)
	case Block:
		return 0.15 * norm(a.Blocks)
	case Steal:
		holder := 0.0
		if ctx.Holder != nil {
			holder = norm(ctx.Holder.BallHandling)
		}
		return 0.02 + 0.08*(norm(a.Defense)+norm(a.Steals))/2 - 0.04*holder
	case Foul:
		return 0.10 - 0.04*norm(a.Defense)
	case FreeThrow:
		return 0.60 + 0.30*norm(a.Shooting)
	default:
		return 0
	}
}
