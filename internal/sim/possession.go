package sim

import (
	"github.com/preston-bernstein/nba-sim-service/internal/probability"
)

// possession plays one trip for off against def and records every event in the box score.
func (s *Simulator) possession(off, def *side) {
	holder := s.pick(off.players, func(p *participant) float64 {
		return float64(p.attrs().BallHandling + 1)
	})

	stealer := s.pick(def.players, func(p *participant) float64 {
		return float64(p.attrs().Steals + p.attrs().Defense + 1)
	})
	stealCtx := stealer.ctx
	holderAttrs := holder.attrs()
	stealCtx.Holder = &holderAttrs
	if s.roll(s.pipeline.Rate(probability.Steal, stealer.attrs(), stealCtx)) {
		s.acc.Steal(stealer.player.ID)
		s.acc.Turnover(holder.player.ID)
		return
	}
	if s.roll(s.rate(probability.Turnover, holder)) {
		s.acc.Turnover(holder.player.ID)
		return
	}

	for shot := 1; shot <= maxShotsPerPossession; shot++ {
		if !s.shoot(off, def, shot < maxShotsPerPossession) {
			return
		}
	}
}

// shoot plays one shot attempt. It reports true when the offense keeps the ball on an offensive rebound.
func (s *Simulator) shoot(off, def *side, canOffensiveRebound bool) bool {
	shooter := s.pick(off.players, func(p *participant) float64 {
		return s.pipeline.Weight(probability.ShotSelection, float64(p.attrs().Shooting+p.attrs().ThreePoint+1), p.ctx)
	})
	three := s.roll(s.rate(probability.ThreePointAttempt, shooter))
	defender := s.matchup(def, shooter)

	if s.roll(s.rate(probability.Foul, defender)) {
		s.acc.Foul(defender.player.ID)
		attempts := 2
		if three {
			attempts = 3
		}
		ft := s.rate(probability.FreeThrow, shooter)
		for i := 0; i < attempts; i++ {
			s.acc.FreeThrow(shooter.player.ID, s.roll(ft))
		}
		return false
	}

	blocker := s.pick(def.players, func(p *participant) float64 {
		return float64(p.attrs().Blocks + 1)
	})
	if s.roll(s.rate(probability.Block, blocker)) {
		s.acc.FieldGoal(shooter.player.ID, three, false)
		s.acc.Block(blocker.player.ID)
		s.defensiveRebound(def)
		return false
	}

	event := probability.TwoPointMake
	if three {
		event = probability.ThreePointMake
	}
	if made := s.roll(s.rate(event, shooter)); made {
		s.acc.FieldGoal(shooter.player.ID, three, true)
		s.assist(off, shooter)
		return false
	}
	s.acc.FieldGoal(shooter.player.ID, three, false)

	if canOffensiveRebound {
		crasher := s.pick(off.players, func(p *participant) float64 {
			return s.pipeline.Weight(probability.OffensiveRebound, float64(p.attrs().Rebounding+1), p.ctx)
		})
		if s.roll(s.rate(probability.OffensiveRebound, crasher)) {
			s.acc.Rebound(crasher.player.ID, true)
			return true
		}
	}
	s.defensiveRebound(def)
	return false
}

func (s *Simulator) assist(off *side, shooter *participant) {
	var mates []*participant
	for _, p := range off.players {
		if p != shooter {
			mates = append(mates, p)
		}
	}
	if len(mates) == 0 {
		return
	}
	passer := s.pick(mates, func(p *participant) float64 {
		return float64(p.attrs().Passing + 1)
	})
	if s.roll(s.rate(probability.Assist, passer)) {
		s.acc.Assist(passer.player.ID)
	}
}

func (s *Simulator) defensiveRebound(def *side) {
	rebounder := s.pick(def.players, func(p *participant) float64 {
		return s.pipeline.Weight(probability.DefensiveRebound, float64(p.attrs().Rebounding+1), p.ctx)
	})
	s.acc.Rebound(rebounder.player.ID, false)
}

// matchup picks the defender guarding the shooter: same position when available, otherwise weighted by defense.
func (s *Simulator) matchup(def *side, shooter *participant) *participant {
	var same []*participant
	for _, p := range def.players {
		if p.player.Position == shooter.player.Position {
			same = append(same, p)
		}
	}
	pool := def.players
	if len(same) > 0 {
		pool = same
	}
	return s.pick(pool, func(p *participant) float64 {
		return float64(p.attrs().Defense + 1)
	})
}

func (s *Simulator) rate(e probability.Event, p *participant) float64 {
	return s.pipeline.Rate(e, p.attrs(), p.ctx)
}

func (s *Simulator) roll(p float64) bool {
	return s.rng.Float64() < p
}

// pick draws one participant with probability proportional to weight. A pool with no
// positive weight falls back to a uniform draw.
func (s *Simulator) pick(pool []*participant, weight func(*participant) float64) *participant {
	total := 0.0
	weights := make([]float64, len(pool))
	for i, p := range pool {
		w := weight(p)
		if w < 0 {
			w = 0
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return pool[s.rng.Intn(len(pool))]
	}
	x := s.rng.Float64() * total
	for i, w := range weights {
		if x < w {
			return pool[i]
		}
		x -= w
	}
	return pool[len(pool)-1]
}
