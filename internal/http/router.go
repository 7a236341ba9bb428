package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/nba-sim-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-sim-service/internal/http/middleware"
)

// Routes groups what the router mounts. Admin and Live are optional.
type Routes struct {
	Handler    *handlers.Handler
	Admin      *handlers.AdminHandler
	Live       nethttp.Handler
	AdminToken string
}

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(rt Routes) nethttp.Handler {
	h := rt.Handler
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /league", h.LeagueStatus)
	mux.HandleFunc("GET /teams", h.Teams)
	mux.HandleFunc("GET /teams/{id}", h.TeamByID)
	mux.HandleFunc("GET /players/{id}", h.PlayerByID)
	mux.HandleFunc("GET /archetypes", h.Archetypes)
	mux.HandleFunc("GET /standings", h.Standings)
	mux.HandleFunc("GET /seeding", h.Seeding)
	mux.HandleFunc("GET /playoffs", h.Playoffs)
	mux.HandleFunc("GET /games", h.Games)
	mux.HandleFunc("GET /games/{id}", h.GameByID)
	mux.HandleFunc("GET /leaders", h.Leaders)
	mux.HandleFunc("GET /seasons", h.Seasons)
	mux.HandleFunc("GET /seasons/{year}", h.SeasonByYear)

	if rt.Live != nil {
		mux.Handle("GET /live", rt.Live)
	}

	if a := rt.Admin; a != nil {
		guard := func(fn nethttp.HandlerFunc) nethttp.Handler {
			return middleware.RequireToken(rt.AdminToken, fn)
		}
		mux.Handle("POST /league/advance", guard(a.AdvanceDay))
		mux.Handle("POST /league/new-season", guard(a.NewSeason))
		mux.Handle("POST /exhibitions", guard(a.Exhibition))
		mux.Handle("PUT /players/{id}/archetype", guard(a.AssignArchetype))
		mux.Handle("PUT /teams/{id}/strategy", guard(a.SetStrategy))
	}
	return mux
}
