package config

import "time"

const (
	defaultPort = "4000"

	defaultProvider        = ProviderFixture
	defaultGamesPerTeam    = 82
	defaultLineupSize      = 8
	defaultRosterSize      = 13
	defaultPossessions     = 200
	defaultSimWorkers      = 4
	defaultGameTimeout     = 3 * time.Second
	defaultSeasonStartYear = 2025

	// Daily cadence for the background loop; one league day per tick.
	defaultAutoplayInterval = 30 * time.Second

	defaultStorageDriver = StorageMemory
	defaultSQLitePath    = "data/league.db"

	defaultArchivePath      = "data/seasons"
	defaultArchiveRetention = 10

	defaultBdlBaseURL = "https://api.balldontlie.io/v1"

	defaultMetricsPort = "9090"
	defaultServiceName = "nba-sim-service"

	defaultLiveMaxConnections = 500
)
