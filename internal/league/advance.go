package league

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/nba-sim-service/internal/archive"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/games"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-sim-service/internal/logging"
	"github.com/preston-bernstein/nba-sim-service/internal/playoffs"
	"github.com/preston-bernstein/nba-sim-service/internal/sim"
)

// gameNamespace scopes deterministic game ids so a replayed day reuses the same ids.
var gameNamespace = uuid.MustParse("5b0f3f0e-8c1e-4f4e-9a57-6d1b2c9e7a10")

// DayReport describes what one AdvanceDay call played.
type DayReport struct {
	Season   int               `json:"season"`
	Day      int               `json:"day"`
	Phase    Phase             `json:"phase"`
	Stage    string            `json:"stage,omitempty"`
	Games    []games.Game      `json:"games"`
	Series   []playoffs.Series `json:"series,omitempty"`
	Champion *playoffs.Entrant `json:"champion,omitempty"`
}

type job struct {
	id         string
	kind       games.Kind
	home, away teams.Team
	homeLineup sim.Lineup
	awayLineup sim.Lineup
	seed       int64
	seriesID   string
	gameNumber int
}

type outcome struct {
	result sim.Result
	seed   int64
}

// AdvanceDay plays the next day: a regular-season schedule day, or one game in every active
// playoff series. Games run concurrently; results are folded in schedule order only after every
// game of the day succeeded, so a failed day leaves the league untouched and can be retried.
func (l *League) AdvanceDay(ctx context.Context) (DayReport, error) {
	l.mu.Lock()
	report, ev, err := l.advance(ctx)
	l.mu.Unlock()
	if err != nil {
		return report, err
	}
	l.dispatch(ctx, ev)
	return report, nil
}

func (l *League) advance(ctx context.Context) (DayReport, events, error) {
	switch l.phase() {
	case PhaseComplete:
		return DayReport{Season: l.season, Day: l.day, Phase: PhaseComplete}, events{}, ErrSeasonComplete
	case PhasePlayoffs:
		return l.advancePlayoffs(ctx)
	default:
		return l.advanceRegular(ctx)
	}
}

func (l *League) advanceRegular(ctx context.Context) (DayReport, events, error) {
	if l.day >= len(l.schedule) {
		// Schedule exhausted without a bracket; happens for an empty schedule.
		if err := l.openPlayoffs(); err != nil {
			return DayReport{}, events{}, err
		}
		return DayReport{Season: l.season, Day: l.day, Phase: l.phase()}, events{}, nil
	}

	day := l.day + 1
	jobs := make([]job, 0, len(l.schedule[l.day]))
	for i, m := range l.schedule[l.day] {
		jobs = append(jobs, l.newJob(games.KindRegular, m.HomeID, m.AwayID, l.ordinal+int64(i),
			fmt.Sprintf("%d/regular/%d/%s/%s", l.season, day, m.HomeID, m.AwayID), "", 0))
	}

	played, err := l.playDay(ctx, jobs, day)
	if err != nil {
		return DayReport{}, events{}, err
	}

	var ev events
	for _, g := range played {
		l.seasonLog.FoldGame(g.BoxScore)
		l.regular = append(l.regular, g)
		ev.games = append(ev.games, GameEvent{Game: g})
	}
	l.byDay[day] = played
	l.day = day
	l.ordinal += int64(len(jobs))

	if l.day == len(l.schedule) {
		if err := l.openPlayoffs(); err != nil {
			return DayReport{}, events{}, err
		}
	}
	logging.Info(l.logger, "regular season day played",
		logging.FieldSeason, l.season, logging.FieldDay, day, logging.FieldCount, len(played))

	return DayReport{Season: l.season, Day: day, Phase: l.phase(), Stage: l.stageName(), Games: played}, ev, nil
}

func (l *League) openPlayoffs() error {
	if l.cfg.RegularSeasonOnly {
		logging.Info(l.logger, "regular season complete, playoffs disabled", logging.FieldSeason, l.season)
		l.finished = true
		return nil
	}
	seeding, err := playoffs.Seed(l.teams, l.regular)
	if err != nil {
		return fmt.Errorf("seed playoffs: %w", err)
	}
	b, err := playoffs.NewBracket(l.season, seeding)
	if err != nil {
		return fmt.Errorf("build bracket: %w", err)
	}
	l.bracket = b
	logging.Info(l.logger, "playoffs started", logging.FieldSeason, l.season, logging.FieldStage, b.Stage().String())
	return nil
}

func (l *League) advancePlayoffs(ctx context.Context) (DayReport, events, error) {
	active := l.bracket.ActiveSeries()
	day := l.day + 1
	jobs := make([]job, 0, len(active))
	for i, s := range active {
		n := s.NextGame()
		kind := games.KindPlayoff
		if s.Round == playoffs.RoundPlayIn {
			kind = games.KindPlayIn
		}
		home, away := s.HomeTeamForGame(n), s.AwayTeamForGame(n)
		jobs = append(jobs, l.newJob(kind, home.ID, away.ID, l.ordinal+int64(i),
			fmt.Sprintf("%d/%s/%d", l.season, s.ID, n), s.ID, n))
	}

	played, err := l.playDay(ctx, jobs, day)
	if err != nil {
		return DayReport{}, events{}, err
	}

	var ev events
	report := DayReport{Season: l.season, Day: day}
	for _, g := range played {
		s, err := l.bracket.RecordGame(g.Meta.SeriesID, g.WinnerID())
		if err != nil {
			return DayReport{}, events{}, fmt.Errorf("record %s: %w", g.Meta.SeriesID, err)
		}
		l.playoffLog.FoldGame(g.BoxScore)
		if s.Complete() {
			l.metrics.RecordSeriesCompleted(string(s.Round))
			logging.Info(l.logger, "series complete",
				logging.FieldSeason, l.season, logging.FieldSeriesID, s.ID, logging.FieldTeamID, winnerID(s))
		}
		series := s
		ev.games = append(ev.games, GameEvent{Game: g, Series: &series})
		report.Series = append(report.Series, s)
	}
	l.byDay[day] = played
	l.day = day
	l.ordinal += int64(len(jobs))

	if champ, ok := l.bracket.Champion(); ok {
		report.Champion = &champ
		ev.champion = &ChampionEvent{Season: l.season, Champion: champ, Archive: l.archive()}
		logging.Info(l.logger, "champion crowned", logging.FieldSeason, l.season, logging.FieldTeamID, champ.Team.ID)
	}
	report.Phase = l.phase()
	report.Stage = l.stageName()
	report.Games = played
	return report, ev, nil
}

func winnerID(s playoffs.Series) string {
	w, _ := s.Winner()
	return w.Team.ID
}

func (l *League) stageName() string {
	if l.bracket == nil {
		return ""
	}
	return l.bracket.Stage().String()
}

func (l *League) newJob(kind games.Kind, homeID, awayID string, ordinal int64, key, seriesID string, gameNumber int) job {
	return job{
		id:         uuid.NewSHA1(gameNamespace, []byte(key)).String(),
		kind:       kind,
		home:       l.teamByID[homeID],
		away:       l.teamByID[awayID],
		homeLineup: l.lineup(homeID),
		awayLineup: l.lineup(awayID),
		seed:       gameSeed(l.cfg.Seed, l.season, ordinal),
		seriesID:   seriesID,
		gameNumber: gameNumber,
	}
}

// playDay simulates every job, then persists the games. Nothing is folded here.
func (l *League) playDay(ctx context.Context, jobs []job, day int) ([]games.Game, error) {
	outcomes := make([]outcome, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.Workers)
	for i, j := range jobs {
		g.Go(func() error {
			out, err := l.playGame(gctx, j)
			if err != nil {
				return fmt.Errorf("%s at %s: %w", j.away.ID, j.home.ID, err)
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logging.Error(l.logger, "day simulation failed", err, logging.FieldSeason, l.season, logging.FieldDay, day)
		return nil, err
	}

	played := make([]games.Game, 0, len(jobs))
	for i, j := range jobs {
		game := newGame(j, outcomes[i], l.season, day)
		if err := l.store.SaveGame(ctx, game); err != nil {
			return nil, fmt.Errorf("save game %s: %w", game.ID, err)
		}
		played = append(played, game)
	}
	return played, nil
}

// playGame runs one game under the per-game timeout. A game still tied after the overtime cap
// is replayed with a derived seed.
func (l *League) playGame(ctx context.Context, j job) (outcome, error) {
	seed := j.seed
	for attempt := 0; attempt < maxGameAttempts; attempt++ {
		start := time.Now()
		res, err := l.runGame(ctx, j.homeLineup, j.awayLineup, seed)
		if errors.Is(err, sim.ErrUnresolvedTie) {
			logging.Debug(l.logger, "replaying unresolved tie", logging.FieldGameID, j.id, "attempt", attempt+1)
			seed = gameSeed(seed, attempt+1, int64(attempt))
			continue
		}
		if err != nil {
			return outcome{}, err
		}
		l.metrics.RecordGameSimulated(string(j.kind), res.Possessions, time.Since(start))
		return outcome{result: res, seed: seed}, nil
	}
	return outcome{}, sim.ErrUnresolvedTie
}

func (l *League) runGame(ctx context.Context, home, away sim.Lineup, seed int64) (sim.Result, error) {
	gctx, cancel := context.WithTimeout(ctx, l.cfg.GameTimeout)
	defer cancel()
	s, err := sim.New(home, away, sim.Options{
		Possessions: l.cfg.Possessions,
		Rand:        rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return sim.Result{}, err
	}
	res, err := s.Run(gctx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return sim.Result{}, fmt.Errorf("%w after %s", ErrGameTimeout, l.cfg.GameTimeout)
	}
	return res, err
}

func newGame(j job, out outcome, season, day int) games.Game {
	res := out.result
	return games.Game{
		ID:       j.id,
		Kind:     j.kind,
		HomeTeam: j.home,
		AwayTeam: j.away,
		Status:   games.StatusFinal,
		Score:    games.Score{Home: res.HomeScore, Away: res.AwayScore},
		BoxScore: res.BoxScore(),
		Meta: games.GameMeta{
			Season:      season,
			Day:         day,
			SeriesID:    j.seriesID,
			GameNumber:  j.gameNumber,
			Possessions: res.Possessions,
			Overtimes:   res.Overtimes,
			Seed:        out.seed,
		},
	}
}

// gameSeed mixes the league seed, season and game ordinal (splitmix64 finalizer).
func gameSeed(base int64, season int, ordinal int64) int64 {
	x := uint64(base) ^ uint64(season)<<32 ^ uint64(ordinal)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return int64(x ^ (x >> 31))
}

// Exhibition plays a one-off game between two teams without touching season state or storage.
// A zero seed picks one from the clock.
func (l *League) Exhibition(ctx context.Context, homeID, awayID string, seed int64) (games.Game, error) {
	l.mu.RLock()
	home, okHome := l.teamByID[homeID]
	away, okAway := l.teamByID[awayID]
	if !okHome || !okAway {
		l.mu.RUnlock()
		missing := homeID
		if okHome {
			missing = awayID
		}
		return games.Game{}, fmt.Errorf("%w: %s", ErrTeamNotFound, missing)
	}
	j := job{
		id:         uuid.NewString(),
		kind:       games.KindExhibition,
		home:       home,
		away:       away,
		homeLineup: l.lineup(homeID),
		awayLineup: l.lineup(awayID),
		seed:       seed,
	}
	season := l.season
	l.mu.RUnlock()

	if j.seed == 0 {
		j.seed = time.Now().UnixNano()
	}
	out, err := l.playGame(ctx, j)
	if err != nil {
		return games.Game{}, err
	}
	return newGame(j, out, season, 0), nil
}

// archive snapshots the finished season. Callers hold the lock.
func (l *League) archive() archive.Season {
	records := playoffs.Standings(l.teams, l.regular)
	standings := make([]playoffs.Record, 0, len(records))
	for _, r := range records {
		standings = append(standings, r)
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].TeamID < standings[j].TeamID
	})

	out := archive.Season{
		Season:       l.season,
		ArchivedAt:   l.now().UTC(),
		Teams:        append([]teams.Team(nil), l.teams...),
		Standings:    standings,
		SeasonStats:  l.seasonLog.All(),
		PlayoffStats: l.playoffLog.All(),
		GamesPlayed:  len(l.regular) + l.playoffLog.Games(),
	}
	if l.bracket != nil {
		out.Bracket = l.bracket.View()
		out.Champion = out.Bracket.Champion
	}
	return out
}
