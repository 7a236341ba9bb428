package sim

import "github.com/preston-bernstein/nba-sim-service/internal/probability"

// Strategy is a team-wide coaching style applied as the last probability stage.
type Strategy string

const (
	Balanced     Strategy = "balanced"
	PaceAndSpace Strategy = "pace_and_space"
	Inside       Strategy = "inside"
	Defensive    Strategy = "defensive"
)

// Strategies lists every supported strategy.
var Strategies = []Strategy{Balanced, PaceAndSpace, Inside, Defensive}

var strategyModifiers = map[Strategy]probability.Modifiers{
	Balanced: {},
	PaceAndSpace: {
		probability.ThreePointAttempt: 1.25,
		probability.ThreePointMake:    1.02,
		probability.OffensiveRebound:  0.90,
	},
	Inside: {
		probability.ThreePointAttempt: 0.70,
		probability.TwoPointMake:      1.03,
		probability.OffensiveRebound:  1.10,
	},
	Defensive: {
		probability.Steal:    1.10,
		probability.Block:    1.10,
		probability.Foul:     1.05,
		probability.Turnover: 0.95,
	},
}

// ParseStrategy validates a strategy name; empty input means Balanced.
func ParseStrategy(raw string) (Strategy, bool) {
	if raw == "" {
		return Balanced, true
	}
	s := Strategy(raw)
	_, ok := strategyModifiers[s]
	return s, ok
}

// Modifiers returns the strategy's factors. Unknown strategies behave as Balanced.
// The returned map is shared and must not be mutated.
func (s Strategy) Modifiers() probability.Modifiers {
	return strategyModifiers[s]
}
