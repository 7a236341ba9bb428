package server

import "time"

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second

	// balldontlie's free tier allows a handful of requests per minute.
	balldontlieInterval = 2 * time.Second
)

// shutdownTimeout and bootstrapTimeout remain vars for tests to override.
var (
	shutdownTimeout  = 10 * time.Second
	bootstrapTimeout = 30 * time.Second
)
