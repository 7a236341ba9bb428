package server

import (
	"context"

	"github.com/preston-bernstein/nba-sim-service/internal/autoplay"
)

// Runner defines the minimal autoplay behavior needed by the server.
type Runner interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() autoplay.Status
}
