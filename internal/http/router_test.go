package http

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/nba-sim-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-sim-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-sim-service/internal/league"
	"github.com/preston-bernstein/nba-sim-service/internal/live"
	"github.com/preston-bernstein/nba-sim-service/internal/testutil"
)

func newRouter(t *testing.T, token string, liveHandler nethttp.Handler) (nethttp.Handler, *league.League) {
	t.Helper()
	l := testutil.NewLeague(t)
	return NewRouter(Routes{
		Handler:    handlers.NewHandler(l, nil, nil, nil),
		Admin:      handlers.NewAdminHandler(l, nil),
		Live:       liveHandler,
		AdminToken: token,
	}), l
}

func TestRouterServesReadRoutes(t *testing.T) {
	router, _ := newRouter(t, "", nil)

	for _, path := range []string{
		"/health", "/ready", "/league", "/teams", "/teams/bos", "/players/bos-p01",
		"/archetypes", "/standings", "/seeding", "/games", "/leaders", "/seasons",
	} {
		rr := testutil.Serve(router, nethttp.MethodGet, path, nil)
		testutil.AssertStatus(t, rr, nethttp.StatusOK)
	}

	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, "/playoffs", nil), nethttp.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, "/live", nil), nethttp.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodPost, "/teams", nil), nethttp.StatusMethodNotAllowed)
	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, "/nope", nil), nethttp.StatusNotFound)
}

func TestRouterGuardsAdminRoutes(t *testing.T) {
	router, l := newRouter(t, "secret", nil)

	rr := testutil.Serve(router, nethttp.MethodPost, "/league/advance", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusUnauthorized)
	if st := l.Status(); st.Day != 0 {
		t.Fatalf("expected unauthorized call to leave the league alone, day=%d", st.Day)
	}

	testutil.AssertStatus(t, testutil.ServeRequest(router, testutil.AdminRequest(nethttp.MethodPost, "/league/advance", "secret", "")), nethttp.StatusOK)
	if st := l.Status(); st.Day != 1 {
		t.Fatalf("expected day 1 after advance, got %d", st.Day)
	}

	req := testutil.AdminRequest(nethttp.MethodPut, "/teams/bos/strategy", "secret", `{"strategy":"inside"}`)
	testutil.AssertStatus(t, testutil.ServeRequest(router, req), nethttp.StatusOK)

	req = testutil.AdminRequest(nethttp.MethodPut, "/players/bos-p01/archetype", "wrong", `{"archetype":"floor_general"}`)
	testutil.AssertStatus(t, testutil.ServeRequest(router, req), nethttp.StatusUnauthorized)

	req = testutil.AdminRequest(nethttp.MethodPut, "/players/bos-p01/archetype", "secret", `{"archetype":"floor_general"}`)
	testutil.AssertStatus(t, testutil.ServeRequest(router, req), nethttp.StatusOK)
}

func TestRouterUpgradesLiveThroughMiddleware(t *testing.T) {
	hub := live.NewHub(nil, nil, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	router, _ := newRouter(t, "", hub)
	logger, _ := testutil.NewBufferLogger()
	srv := httptest.NewServer(middleware.LoggingMiddleware(logger, nil, router))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/live", nil)
	if err != nil {
		t.Fatalf("dial live feed: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(live.ClientMessage{Type: live.MessagePing}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	var msg live.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read pong: %v", err)
	}
	if msg.Type != live.MessagePong {
		t.Fatalf("expected pong, got %+v", msg)
	}
}
