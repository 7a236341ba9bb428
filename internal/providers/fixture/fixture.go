// Package fixture generates a deterministic league for local runs and tests.
package fixture

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/preston-bernstein/nba-sim-service/internal/affinity"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
)

const DefaultRosterSize = 13

// rosterTemplate fills positions in order; starters first.
var rosterTemplate = []players.Position{
	players.PointGuard, players.ShootingGuard, players.SmallForward, players.PowerForward, players.Center,
	players.PointGuard, players.ShootingGuard, players.SmallForward, players.PowerForward, players.Center,
	players.ShootingGuard, players.PowerForward, players.Center,
}

type heightBand struct{ min, max int }

var heights = map[players.Position]heightBand{
	players.PointGuard:    {72, 77},
	players.ShootingGuard: {75, 79},
	players.SmallForward:  {77, 81},
	players.PowerForward:  {79, 83},
	players.Center:        {81, 86},
}

// emphasis shifts a player's ratings toward what the position does.
var emphasis = map[players.Position]players.Attributes{
	players.PointGuard:    {Passing: 15, BallHandling: 15, Speed: 10, ThreePoint: 5, Rebounding: -15, Blocks: -20, Steals: 5},
	players.ShootingGuard: {Shooting: 10, ThreePoint: 15, Speed: 5, BallHandling: 5, Rebounding: -10, Blocks: -15},
	players.SmallForward:  {Shooting: 5, Defense: 5, Stamina: 5, Speed: 5, Steals: 5},
	players.PowerForward:  {Rebounding: 12, Defense: 5, Blocks: 5, Speed: -5, Passing: -5, BallHandling: -10, ThreePoint: -5},
	players.Center:        {Rebounding: 18, Blocks: 18, Defense: 8, Speed: -10, Passing: -10, BallHandling: -20, ThreePoint: -20},
}

// Provider generates teams and rosters from a seed. The same seed always yields the same league.
type Provider struct {
	seed       int64
	rosterSize int
}

// New creates a fixture provider. rosterSize <= 0 uses DefaultRosterSize.
func New(seed int64, rosterSize int) *Provider {
	if rosterSize <= 0 {
		rosterSize = DefaultRosterSize
	}
	return &Provider{seed: seed, rosterSize: rosterSize}
}

// Teams returns a copy of the 30 fixture teams.
func Teams() []teams.Team {
	out := make([]teams.Team, len(leagueTeams))
	copy(out, leagueTeams)
	return out
}

// FetchTeams returns the fixture teams.
func (p *Provider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Teams(), nil
}

// FetchPlayers generates a roster for every team. Each roster depends only on the seed and the team id.
func (p *Provider) FetchPlayers(ctx context.Context, ts []teams.Team) ([]players.Player, error) {
	out := make([]players.Player, 0, len(ts)*p.rosterSize)
	for _, t := range ts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, p.Roster(t)...)
	}
	return out, nil
}

// Roster generates one team's players.
func (p *Provider) Roster(t teams.Team) []players.Player {
	rng := rand.New(rand.NewSource(p.seed ^ int64(hashID(t.ID))))
	out := make([]players.Player, 0, p.rosterSize)
	for i := 0; i < p.rosterSize; i++ {
		pos := rosterTemplate[i%len(rosterTemplate)]
		band := heights[pos]
		pl := players.Player{
			ID:           fmt.Sprintf("%s-p%02d", t.ID, i+1),
			FirstName:    firstNames[rng.Intn(len(firstNames))],
			LastName:     lastNames[rng.Intn(len(lastNames))],
			TeamID:       t.ID,
			Position:     pos,
			HeightInches: band.min + rng.Intn(band.max-band.min+1),
			Attributes:   attributes(rng, pos, tier(i)),
		}
		pl.Archetype = affinity.BestRole(pl)
		out = append(out, pl)
	}
	return out
}

// tier is the baseline rating for the i-th roster slot; starters are stronger than the bench.
func tier(i int) int {
	switch {
	case i < 5:
		return 70
	case i < 10:
		return 60
	default:
		return 52
	}
}

func attributes(rng *rand.Rand, pos players.Position, base int) players.Attributes {
	roll := func(shift int) int {
		return base + shift + rng.Intn(21) - 10
	}
	e := emphasis[pos]
	a := players.Attributes{
		Shooting:     roll(e.Shooting),
		ThreePoint:   roll(e.ThreePoint),
		Defense:      roll(e.Defense),
		Speed:        roll(e.Speed),
		Stamina:      roll(e.Stamina),
		Passing:      roll(e.Passing),
		Rebounding:   roll(e.Rebounding),
		BallHandling: roll(e.BallHandling),
		Blocks:       roll(e.Blocks),
		Steals:       roll(e.Steals),
	}
	return a.Clamp()
}

func hashID(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}

func abbrToID(abbr string) string {
	return strings.ToLower(abbr)
}
