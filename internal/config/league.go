package config

import "time"

const (
	ProviderFixture     = "fixture"
	ProviderBalldontlie = "balldontlie"
)

// LeagueConfig controls how the league is built and simulated.
type LeagueConfig struct {
	Provider string `env:"LEAGUE_PROVIDER" envDefault:"fixture"`
	// Seed makes a league reproducible; 0 picks a random seed at startup.
	Seed            int64         `env:"LEAGUE_SEED" envDefault:"0"`
	GamesPerTeam    int           `env:"GAMES_PER_TEAM" envDefault:"82"`
	LineupSize      int           `env:"LINEUP_SIZE" envDefault:"8"`
	RosterSize      int           `env:"ROSTER_SIZE" envDefault:"13"`
	Possessions     int           `env:"POSSESSIONS_PER_GAME" envDefault:"200"`
	SimWorkers      int           `env:"SIM_WORKERS" envDefault:"4"`
	GameTimeout     time.Duration `env:"GAME_TIMEOUT" envDefault:"3s"`
	SeasonStartYear int           `env:"SEASON_START_YEAR" envDefault:"2025"`

	// RegularSeasonOnly lets leagues too small for a playoff bracket run.
	RegularSeasonOnly bool `env:"REGULAR_SEASON_ONLY" envDefault:"false"`
}

func (c *LeagueConfig) normalize() {
	if c.Provider == "" {
		c.Provider = defaultProvider
	}
	if c.GamesPerTeam <= 0 {
		c.GamesPerTeam = defaultGamesPerTeam
	}
	if c.LineupSize <= 0 {
		c.LineupSize = defaultLineupSize
	}
	if c.RosterSize <= 0 {
		c.RosterSize = defaultRosterSize
	}
	if c.Possessions <= 0 {
		c.Possessions = defaultPossessions
	}
	if c.SimWorkers <= 0 {
		c.SimWorkers = defaultSimWorkers
	}
	if c.GameTimeout <= 0 {
		c.GameTimeout = defaultGameTimeout
	}
	if c.SeasonStartYear <= 0 {
		c.SeasonStartYear = defaultSeasonStartYear
	}
}

// AutoplayConfig controls the background loop that advances the league.
type AutoplayConfig struct {
	Enabled   bool          `env:"AUTOPLAY_ENABLED" envDefault:"true"`
	Interval  time.Duration `env:"AUTOPLAY_INTERVAL" envDefault:"30s"`
	NewSeason bool          `env:"AUTOPLAY_NEW_SEASON" envDefault:"true"`
}

func (c *AutoplayConfig) normalize() {
	if c.Interval <= 0 {
		c.Interval = defaultAutoplayInterval
	}
}
