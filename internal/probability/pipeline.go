package probability

import (
	"math"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
)

// Stage transforms a rate. Stages never see rates outside [0,1] when run by a Pipeline.
type Stage struct {
	Name  string
	Apply func(e Event, rate float64, ctx Context) float64
}

// Pipeline is an ordered list of stages applied after the base formula.
type Pipeline []Stage

var positionModifiers = map[players.Position]Modifiers{
	players.PointGuard:    {Assist: 1.15},
	players.ShootingGuard: {ThreePointAttempt: 1.20},
	players.SmallForward:  {},
	players.PowerForward:  {OffensiveRebound: 1.15, DefensiveRebound: 1.15},
	players.Center:        {OffensiveRebound: 1.25, DefensiveRebound: 1.25, Block: 1.20},
}

// PositionModifiers returns a copy of the modifiers for a position.
func PositionModifiers(pos players.Position) Modifiers {
	out := Modifiers{}
	for e, f := range positionModifiers[pos] {
		out[e] = f
	}
	return out
}

// PositionStage multiplies by the acting player's position factor.
var PositionStage = Stage{
	Name: "position",
	Apply: func(e Event, rate float64, ctx Context) float64 {
		return rate * positionModifiers[ctx.Position].Factor(e)
	},
}

// RoleStage multiplies by the player's chosen archetype factor.
var RoleStage = Stage{
	Name: "role",
	Apply: func(e Event, rate float64, ctx Context) float64 {
		return rate * ctx.Role.Factor(e)
	},
}

// StrategyStage multiplies by the team's coaching strategy factor.
var StrategyStage = Stage{
	Name: "strategy",
	Apply: func(e Event, rate float64, ctx Context) float64 {
		return rate * ctx.Strategy.Factor(e)
	},
}

// Default applies base -> position -> role -> strategy.
var Default = Pipeline{PositionStage, RoleStage, StrategyStage}

// Rate computes the clamped probability of an event.
func (p Pipeline) Rate(e Event, a players.Attributes, ctx Context) float64 {
	rate := Clamp(Base(e, a, ctx))
	for _, stage := range p {
		rate = Clamp(stage.Apply(e, rate, ctx))
	}
	return rate
}

// Trace returns the rate after the base formula and after each stage, for debugging and tests.
func (p Pipeline) Trace(e Event, a players.Attributes, ctx Context) []float64 {
	out := make([]float64, 0, len(p)+1)
	rate := Clamp(Base(e, a, ctx))
	out = append(out, rate)
	for _, stage := range p {
		rate = Clamp(stage.Apply(e, rate, ctx))
		out = append(out, rate)
	}
	return out
}

// Weight scales a non-probability selection weight through the same stages.
// Weights are floored at 0 but not capped at 1.
func (p Pipeline) Weight(e Event, base float64, ctx Context) float64 {
	w := math.Max(0, base)
	for _, stage := range p {
		w = math.Max(0, stage.Apply(e, w, ctx))
	}
	if math.IsNaN(w) {
		return 0
	}
	return w
}
