package playoffs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
)

var (
	ErrMissingSeed      = errors.New("required seed missing")
	ErrPlayInIncomplete = errors.New("play-in games not complete")
	ErrInvalidPlayIn    = errors.New("play-in games do not form a valid tournament")
	ErrRoundIncomplete  = errors.New("round not complete")
	ErrInvalidRound     = errors.New("round cannot advance")
)

func seriesID(conf teams.Conference, round Round, suffix string) string {
	if conf == "" {
		return fmt.Sprintf("%s-%s", round, suffix)
	}
	return fmt.Sprintf("%s-%s-%s", strings.ToLower(string(conf)), round, suffix)
}

func requireSeeds(conf teams.Conference, seeding Seeding, seeds ...int) ([]Entrant, error) {
	out := make([]Entrant, 0, len(seeds))
	for _, n := range seeds {
		e, ok := seeding.Entrant(conf, n)
		if !ok {
			return nil, fmt.Errorf("%w: %s seed %d", ErrMissingSeed, conf, n)
		}
		out = append(out, e)
	}
	return out, nil
}

// PlayInGames creates the two opening single games, 7v8 then 9v10.
func PlayInGames(conf teams.Conference, seeding Seeding) ([]*Series, error) {
	e, err := requireSeeds(conf, seeding, 7, 8, 9, 10)
	if err != nil {
		return nil, err
	}
	return []*Series{
		newSeries(seriesID(conf, RoundPlayIn, "7v8"), RoundPlayIn, conf, e[0], e[1], 1),
		newSeries(seriesID(conf, RoundPlayIn, "9v10"), RoundPlayIn, conf, e[2], e[3], 1),
	}, nil
}

// LastChanceGame pairs the loser of 7v8 with the winner of 9v10. The 7v8 loser hosts.
func LastChanceGame(first []*Series) (*Series, error) {
	if len(first) != 2 || !first[0].Complete() || !first[1].Complete() {
		return nil, ErrPlayInIncomplete
	}
	loser, _ := first[0].Loser()
	winner, _ := first[1].Winner()
	conf := first[0].Conference
	return newSeries(seriesID(conf, RoundPlayIn, "final"), RoundPlayIn, conf, loser, winner, 1), nil
}

// ResolvePlayIn finalizes seeds 7 and 8 from three completed play-in games given in any order.
// The last-chance game is the one whose two participants each appear in exactly one other game;
// of the remaining two, the game whose winner skips the last-chance game is 7v8.
func ResolvePlayIn(games []*Series) (seed7, seed8 Entrant, err error) {
	if len(games) != 3 {
		return Entrant{}, Entrant{}, fmt.Errorf("%w: expected 3 games, got %d", ErrPlayInIncomplete, len(games))
	}
	for _, g := range games {
		if !g.Complete() {
			return Entrant{}, Entrant{}, fmt.Errorf("%w: %s", ErrPlayInIncomplete, g.ID)
		}
	}

	appearances := func(teamID string, skip int) int {
		n := 0
		for i, g := range games {
			if i != skip && g.Includes(teamID) {
				n++
			}
		}
		return n
	}

	final := -1
	for i, g := range games {
		if appearances(g.High.Team.ID, i) == 1 && appearances(g.Low.Team.ID, i) == 1 {
			if final != -1 {
				return Entrant{}, Entrant{}, ErrInvalidPlayIn
			}
			final = i
		}
	}
	if final == -1 {
		return Entrant{}, Entrant{}, ErrInvalidPlayIn
	}

	lastChance := games[final]
	var opener *Series
	for i, g := range games {
		if i == final {
			continue
		}
		w, _ := g.Winner()
		if !lastChance.Includes(w.Team.ID) {
			if opener != nil {
				return Entrant{}, Entrant{}, ErrInvalidPlayIn
			}
			opener = g
		}
	}
	if opener == nil {
		return Entrant{}, Entrant{}, ErrInvalidPlayIn
	}

	seed7, _ = opener.Winner()
	seed8, _ = lastChance.Winner()
	seed7.Seed = 7
	seed8.Seed = 8
	return seed7, seed8, nil
}

// FirstRound builds 1v8, 4v5, 3v6, 2v7 in bracket order so adjacent winners meet next.
func FirstRound(conf teams.Conference, seeding Seeding, seed7, seed8 Entrant) ([]*Series, error) {
	e, err := requireSeeds(conf, seeding, 1, 2, 3, 4, 5, 6)
	if err != nil {
		return nil, err
	}
	return []*Series{
		newSeries(seriesID(conf, RoundFirst, "1v8"), RoundFirst, conf, e[0], seed8, 7),
		newSeries(seriesID(conf, RoundFirst, "4v5"), RoundFirst, conf, e[3], e[4], 7),
		newSeries(seriesID(conf, RoundFirst, "3v6"), RoundFirst, conf, e[2], e[5], 7),
		newSeries(seriesID(conf, RoundFirst, "2v7"), RoundFirst, conf, e[1], seed7, 7),
	}, nil
}

var nextRound = map[Round]Round{
	RoundFirst:           RoundConferenceSemis,
	RoundConferenceSemis: RoundConferenceFinals,
}

// NextRound pairs adjacent winners of a completed conference round.
func NextRound(prev []*Series) ([]*Series, error) {
	if len(prev) == 0 || len(prev)%2 != 0 {
		return nil, fmt.Errorf("%w: %d series", ErrInvalidRound, len(prev))
	}
	round, ok := nextRound[prev[0].Round]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRound, prev[0].Round)
	}
	for _, s := range prev {
		if !s.Complete() {
			return nil, fmt.Errorf("%w: %s", ErrRoundIncomplete, s.ID)
		}
	}

	conf := prev[0].Conference
	out := make([]*Series, 0, len(prev)/2)
	for i := 0; i < len(prev); i += 2 {
		a, _ := prev[i].Winner()
		b, _ := prev[i+1].Winner()
		high, low := orderEntrants(a, b)
		out = append(out, newSeries(seriesID(conf, round, fmt.Sprintf("%d", i/2+1)), round, conf, high, low, 7))
	}
	return out, nil
}

// Finals matches the two conference champions. Home court goes to the better seed, then the better record.
func Finals(east, west *Series) (*Series, error) {
	if east == nil || west == nil || !east.Complete() || !west.Complete() {
		return nil, ErrRoundIncomplete
	}
	if east.Round != RoundConferenceFinals || west.Round != RoundConferenceFinals {
		return nil, fmt.Errorf("%w: finals need conference finals winners", ErrInvalidRound)
	}
	a, _ := east.Winner()
	b, _ := west.Winner()
	high, low := orderEntrants(a, b)
	return newSeries(seriesID("", RoundFinals, "1"), RoundFinals, "", high, low, 7), nil
}

func orderEntrants(a, b Entrant) (Entrant, Entrant) {
	if b.Seed < a.Seed {
		return b, a
	}
	if b.Seed == a.Seed && b.Record.WinPct() > a.Record.WinPct() {
		return b, a
	}
	return a, b
}
