package playoffs

import (
	"errors"
	"fmt"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
)

var (
	ErrUnknownSeries     = errors.New("unknown series")
	ErrSeriesNotActive   = errors.New("series is not active in the current stage")
	ErrMissingConference = errors.New("bracket needs both conferences seeded")
)

// Stage is the tournament-level state.
type Stage int

const (
	StagePlayIn Stage = iota
	StageFirstRound
	StageConferenceSemis
	StageConferenceFinals
	StageFinals
	StageChampionDetermined
)

func (s Stage) String() string {
	switch s {
	case StagePlayIn:
		return "play_in"
	case StageFirstRound:
		return "first_round"
	case StageConferenceSemis:
		return "conference_semis"
	case StageConferenceFinals:
		return "conference_finals"
	case StageFinals:
		return "finals"
	case StageChampionDetermined:
		return "champion_determined"
	default:
		return "unknown"
	}
}

// MarshalText renders the stage name in JSON payloads.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a stage name so archived brackets load back.
func (s *Stage) UnmarshalText(text []byte) error {
	for st := StagePlayIn; st <= StageChampionDetermined; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown stage %q", text)
}

// Bracket drives a season's postseason from play-in to champion. It is not safe for
// concurrent use; the league serializes access.
type Bracket struct {
	season   int
	seeding  Seeding
	stage    Stage
	byID     map[string]*Series
	order    []string
	current  map[teams.Conference][]*Series
	playIn   map[teams.Conference][]*Series
	finals   *Series
	champion Entrant
}

// NewBracket seeds both conferences into the play-in stage.
func NewBracket(season int, seeding Seeding) (*Bracket, error) {
	b := &Bracket{
		season:  season,
		seeding: seeding,
		stage:   StagePlayIn,
		byID:    make(map[string]*Series),
		current: make(map[teams.Conference][]*Series),
		playIn:  make(map[teams.Conference][]*Series),
	}
	for _, conf := range teams.Conferences {
		if len(seeding[conf]) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingConference, conf)
		}
		// First round seeds must exist too; fail before any game is played.
		if _, err := requireSeeds(conf, seeding, 1, 2, 3, 4, 5, 6); err != nil {
			return nil, err
		}
		games, err := PlayInGames(conf, seeding)
		if err != nil {
			return nil, err
		}
		b.playIn[conf] = games
		b.current[conf] = games
		b.add(games...)
	}
	return b, nil
}

func (b *Bracket) add(series ...*Series) {
	for _, s := range series {
		b.byID[s.ID] = s
		b.order = append(b.order, s.ID)
	}
}

// Season is the year the bracket belongs to.
func (b *Bracket) Season() int { return b.season }

// Stage reports the current tournament stage.
func (b *Bracket) Stage() Stage { return b.stage }

// Seeding returns the regular-season seeding the bracket was built from.
func (b *Bracket) Seeding() Seeding { return b.seeding }

// Champion returns the title winner once determined.
func (b *Bracket) Champion() (Entrant, bool) {
	if b.stage != StageChampionDetermined {
		return Entrant{}, false
	}
	return b.champion, true
}

// Series returns a copy of one series.
func (b *Bracket) Series(id string) (Series, bool) {
	s, ok := b.byID[id]
	if !ok {
		return Series{}, false
	}
	return *s, true
}

// AllSeries returns copies of every series in creation order.
func (b *Bracket) AllSeries() []Series {
	out := make([]Series, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.byID[id])
	}
	return out
}

// ActiveSeries returns copies of the unfinished series of the current stage, East first.
func (b *Bracket) ActiveSeries() []Series {
	var out []Series
	for _, s := range b.active() {
		out = append(out, *s)
	}
	return out
}

func (b *Bracket) active() []*Series {
	var out []*Series
	if b.stage == StageFinals {
		if b.finals != nil && !b.finals.Complete() {
			out = append(out, b.finals)
		}
		return out
	}
	for _, conf := range teams.Conferences {
		for _, s := range b.current[conf] {
			if !s.Complete() {
				out = append(out, s)
			}
		}
	}
	return out
}

// RecordGame credits a game win to winnerID and advances the bracket when a stage completes.
func (b *Bracket) RecordGame(seriesID, winnerID string) (Series, error) {
	s, ok := b.byID[seriesID]
	if !ok {
		return Series{}, fmt.Errorf("%w: %s", ErrUnknownSeries, seriesID)
	}
	if s.Complete() {
		return *s, fmt.Errorf("%s: %w", s.ID, ErrSeriesComplete)
	}
	if !b.isActive(s) {
		return *s, fmt.Errorf("%w: %s", ErrSeriesNotActive, seriesID)
	}
	if err := s.RecordWin(winnerID); err != nil {
		return *s, err
	}
	if err := b.advance(); err != nil {
		return *s, err
	}
	return *s, nil
}

func (b *Bracket) isActive(target *Series) bool {
	for _, s := range b.active() {
		if s == target {
			return true
		}
	}
	return false
}

func (b *Bracket) advance() error {
	switch b.stage {
	case StagePlayIn:
		return b.advancePlayIn()
	case StageFirstRound, StageConferenceSemis:
		if len(b.active()) > 0 {
			return nil
		}
		for _, conf := range teams.Conferences {
			next, err := NextRound(b.current[conf])
			if err != nil {
				return err
			}
			b.current[conf] = next
			b.add(next...)
		}
		b.stage++
	case StageConferenceFinals:
		if len(b.active()) > 0 {
			return nil
		}
		finals, err := Finals(b.current[teams.East][0], b.current[teams.West][0])
		if err != nil {
			return err
		}
		b.finals = finals
		b.add(finals)
		b.stage = StageFinals
	case StageFinals:
		if w, ok := b.finals.Winner(); ok {
			b.champion = w
			b.stage = StageChampionDetermined
		}
	}
	return nil
}

func (b *Bracket) advancePlayIn() error {
	if len(b.active()) > 0 {
		return nil
	}
	resolved := true
	for _, conf := range teams.Conferences {
		games := b.playIn[conf]
		if len(games) == 2 {
			last, err := LastChanceGame(games)
			if err != nil {
				return err
			}
			b.playIn[conf] = append(games, last)
			b.current[conf] = []*Series{last}
			b.add(last)
			resolved = false
		}
	}
	if !resolved {
		return nil
	}
	for _, conf := range teams.Conferences {
		seed7, seed8, err := ResolvePlayIn(b.playIn[conf])
		if err != nil {
			return err
		}
		first, err := FirstRound(conf, b.seeding, seed7, seed8)
		if err != nil {
			return err
		}
		b.current[conf] = first
		b.add(first...)
	}
	b.stage = StageFirstRound
	return nil
}

// Eliminated reports whether a team is out of the postseason: unseeded, seeded below the
// play-in, or the loser of any series other than the 7v8 play-in game.
func (b *Bracket) Eliminated(teamID string) bool {
	_, seed, ok := b.seeding.SeedOf(teamID)
	if !ok || seed > 10 {
		return true
	}
	for _, id := range b.order {
		s := b.byID[id]
		loser, ok := s.Loser()
		if !ok || loser.Team.ID != teamID {
			continue
		}
		if s.Round == RoundPlayIn && s.High.Seed == 7 && s.Low.Seed == 8 {
			continue
		}
		return true
	}
	return false
}

// View is a read-only snapshot of the bracket for responses and archives.
type View struct {
	Season   int      `json:"season"`
	Stage    Stage    `json:"stage"`
	Champion *Entrant `json:"champion,omitempty"`
	Series   []Series `json:"series"`
}

// View snapshots the bracket.
func (b *Bracket) View() View {
	v := View{Season: b.season, Stage: b.stage, Series: b.AllSeries()}
	if c, ok := b.Champion(); ok {
		v.Champion = &c
	}
	return v
}
