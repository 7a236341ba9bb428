// Package affinity scores how well a player's ratings and height fit each position and role archetype.
package affinity

import (
	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
)

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func between(h, lo, hi int) bool {
	return h >= lo && h <= hi
}

// PointGuardAffinity favors passing and handling; every inch over 6'0" costs half a point.
func PointGuardAffinity(a players.Attributes, height int) float64 {
	return clampScore(0.40*float64(a.Passing) + 0.30*float64(a.BallHandling) + 0.20*float64(a.Speed) - 0.5*float64(height-72))
}

func ShootingGuardAffinity(a players.Attributes, height int) float64 {
	bonus := 0.0
	if between(height, 73, 78) {
		bonus = 10
	}
	return clampScore(0.35*float64(a.Shooting) + 0.35*float64(a.ThreePoint) + 0.20*float64(a.Speed) + bonus)
}

func SmallForwardAffinity(a players.Attributes, height int) float64 {
	bonus := 0.0
	if between(height, 76, 80) {
		bonus = 25
	}
	athleticism := float64(a.Speed+a.Stamina) / 2
	return clampScore(0.25*float64(a.Shooting) + 0.25*float64(a.Defense) + 0.25*athleticism + bonus)
}

func PowerForwardAffinity(a players.Attributes, height int) float64 {
	return clampScore(0.35*float64(a.Rebounding) + 0.25*float64(a.Defense) + 0.20*float64(a.Shooting) + 1.0*float64(height-76))
}

func CenterAffinity(a players.Attributes, height int) float64 {
	return clampScore(0.35*float64(a.Rebounding) + 0.30*float64(a.Blocks) + 0.25*float64(a.Defense) + 1.5*float64(height-78))
}

// ForPosition scores a single position.
func ForPosition(pos players.Position, a players.Attributes, height int) float64 {
	switch pos {
	case players.PointGuard:
		return PointGuardAffinity(a, height)
	case players.ShootingGuard:
		return ShootingGuardAffinity(a, height)
	case players.SmallForward:
		return SmallForwardAffinity(a, height)
	case players.PowerForward:
		return PowerForwardAffinity(a, height)
	case players.Center:
		return CenterAffinity(a, height)
	default:
		return 0
	}
}

// PositionAffinity scores every position. The result is derived, never stored as authoritative state.
func PositionAffinity(a players.Attributes, height int) map[players.Position]float64 {
	out := make(map[players.Position]float64, len(players.Positions))
	for _, pos := range players.Positions {
		out[pos] = ForPosition(pos, a, height)
	}
	return out
}

// BestPosition returns the highest scoring position; ties resolve in PG, SG, SF, PF, C order.
func BestPosition(a players.Attributes, height int) players.Position {
	best := players.Positions[0]
	bestScore := ForPosition(best, a, height)
	for _, pos := range players.Positions[1:] {
		if score := ForPosition(pos, a, height); score > bestScore {
			best, bestScore = pos, score
		}
	}
	return best
}
