// Package playoffs computes standings and seeds and runs the postseason bracket.
package playoffs

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/games"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
)

// MaxSeeds is the largest conference that can be seeded.
const MaxSeeds = 15

var (
	ErrUnknownConference  = errors.New("team has unknown conference")
	ErrConferenceTooLarge = errors.New("conference has too many teams to seed")
)

// Record is a team's regular-season win/loss line.
type Record struct {
	TeamID string `json:"teamId"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// WinPct returns wins / games played, 0 with no games.
func (r Record) WinPct() float64 {
	played := r.Wins + r.Losses
	if played == 0 {
		return 0
	}
	return float64(r.Wins) / float64(played)
}

// Standings tallies final regular-season games for the given teams. Games involving
// other teams, unplayed games and postseason games are ignored.
func Standings(ts []teams.Team, gs []games.Game) map[string]Record {
	out := make(map[string]Record, len(ts))
	for _, t := range ts {
		out[t.ID] = Record{TeamID: t.ID}
	}
	for _, g := range gs {
		if g.Kind != games.KindRegular || !g.Final() {
			continue
		}
		winner, loser := g.WinnerID(), g.LoserID()
		if winner == "" {
			continue
		}
		if r, ok := out[winner]; ok {
			r.Wins++
			out[winner] = r
		}
		if r, ok := out[loser]; ok {
			r.Losses++
			out[loser] = r
		}
	}
	return out
}

// Entrant is a seeded team in a conference.
type Entrant struct {
	Seed   int        `json:"seed"`
	Team   teams.Team `json:"team"`
	Record Record     `json:"record"`
}

// Seeding holds each conference's entrants ordered by seed, 1 first.
type Seeding map[teams.Conference][]Entrant

// Entrant returns the team holding a seed in a conference.
func (s Seeding) Entrant(conf teams.Conference, seed int) (Entrant, bool) {
	list := s[conf]
	if seed < 1 || seed > len(list) {
		return Entrant{}, false
	}
	return list[seed-1], true
}

// SeedOf finds a team's conference and seed.
func (s Seeding) SeedOf(teamID string) (teams.Conference, int, bool) {
	for conf, list := range s {
		for _, e := range list {
			if e.Team.ID == teamID {
				return conf, e.Seed, true
			}
		}
	}
	return "", 0, false
}

// Seeds flattens the seeding into team id -> seed.
func (s Seeding) Seeds() map[string]int {
	out := make(map[string]int)
	for _, list := range s {
		for _, e := range list {
			out[e.Team.ID] = e.Seed
		}
	}
	return out
}

// Seed ranks each conference by wins desc, win percentage desc, then city, name and id ascending.
func Seed(ts []teams.Team, gs []games.Game) (Seeding, error) {
	records := Standings(ts, gs)
	byConf := make(map[teams.Conference][]Entrant)
	for _, t := range ts {
		conf, ok := teams.ParseConference(string(t.Conference))
		if !ok {
			return nil, fmt.Errorf("%w: team %s has %q", ErrUnknownConference, t.ID, t.Conference)
		}
		byConf[conf] = append(byConf[conf], Entrant{Team: t, Record: records[t.ID]})
	}

	out := make(Seeding, len(byConf))
	for conf, list := range byConf {
		if len(list) > MaxSeeds {
			return nil, fmt.Errorf("%w: %s has %d", ErrConferenceTooLarge, conf, len(list))
		}
		sort.SliceStable(list, func(i, j int) bool { return ranksAhead(list[i], list[j]) })
		for i := range list {
			list[i].Seed = i + 1
		}
		out[conf] = list
	}
	return out, nil
}

func ranksAhead(a, b Entrant) bool {
	if a.Record.Wins != b.Record.Wins {
		return a.Record.Wins > b.Record.Wins
	}
	if pa, pb := a.Record.WinPct(), b.Record.WinPct(); pa != pb {
		return pa > pb
	}
	if ca, cb := strings.ToLower(a.Team.City), strings.ToLower(b.Team.City); ca != cb {
		return ca < cb
	}
	if a.Team.Name != b.Team.Name {
		return a.Team.Name < b.Team.Name
	}
	return a.Team.ID < b.Team.ID
}
