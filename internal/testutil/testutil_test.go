package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-sim-service/internal/archive"
	"github.com/preston-bernstein/nba-sim-service/internal/league"
	"github.com/preston-bernstein/nba-sim-service/internal/metrics"
	"github.com/preston-bernstein/nba-sim-service/internal/providers"
)

func TestClockHelper(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
}

func TestFixturesHelper(t *testing.T) {
	g := SampleGame("id-1")
	if g.ID != "id-1" || g.HomeTeam.ID == "" || g.AwayTeam.ID == "" {
		t.Fatalf("unexpected game fixture %+v", g)
	}
	if !g.Final() || g.WinnerID() != "home" {
		t.Fatalf("expected final home win, got %+v", g)
	}
	team := SampleTeam("t1")
	if team.ID != "t1" || team.FullName == "" || team.Conference == "" {
		t.Fatalf("unexpected team fixture %+v", team)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)

	admin := AdminRequest(http.MethodPut, "/teams/bos/strategy", "tok", `{"strategy":"inside"}`)
	if admin.Header.Get("Authorization") != "Bearer tok" || admin.Header.Get("Content-Type") != "application/json" {
		t.Fatalf("expected bearer and json headers, got %v", admin.Header)
	}
	if open := AdminRequest(http.MethodPost, "/league/advance", "", ""); open.Header.Get("Authorization") != "" {
		t.Fatalf("expected no auth header without a token")
	}
}

func TestArchiveHelpers(t *testing.T) {
	w := NewTempArchive(t, 5)
	WriteSeason(t, w, 2030)
	data, err := os.ReadFile(archive.SeasonPath(w.BasePath(), 2030))
	if err != nil {
		t.Fatalf("expected season file, got %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected season contents")
	}
}

func TestLeagueHelpers(t *testing.T) {
	l := NewLeague(t)
	if got := len(l.Teams()); got != 30 {
		t.Fatalf("expected 30 fixture teams, got %d", got)
	}
	PlayToChampion(t, l)
	st := l.Status()
	if st.Phase != league.PhaseComplete {
		t.Fatalf("expected complete season, got %s", st.Phase)
	}
	if st.Champion == nil {
		t.Fatalf("expected a champion")
	}
}

func TestServerStubs(t *testing.T) {
	p := &StubRunner{Err: errors.New("stop")}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if start, stop := p.Calls(); start != 1 || stop != 1 {
		t.Fatalf("unexpected call counts %d/%d", start, stop)
	}
	if p.Status() != p.StatusVal {
		t.Fatalf("expected status passthrough")
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	sh.HandlerVal = http.NewServeMux()
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	_ = sh.Handler()
	_ = sh.Addr()
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{}), HandlerVal: http.NewServeMux()}
	if err := b.ListenAndServe(); err != nil {
		t.Fatalf("expected nil listen error for blocking server")
	}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}
	if b.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown called once")
	}

	e := &ErrHTTPServer{}
	if err := e.ListenAndServe(); err == nil {
		t.Fatalf("expected listen failure")
	}
	_ = e.Shutdown(context.Background())
	if e.Addr() == "" || e.ShutdownCalls != 1 {
		t.Fatalf("unexpected ErrHTTPServer state %+v", e)
	}

	c := &CloseableHTTPServer{}
	if err := c.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected ErrServerClosed, got %v", err)
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Debug("hello", "k", "v")
	AssertLogged(t, buf, "hello", "k=v")
	rec := metrics.NewRecorder()
	AssertGamesSimulated(t, rec, "regular", 0)
	rec.RecordGameSimulated("regular", 180, time.Millisecond)
	rec.RecordGameSimulated("regular", 190, time.Millisecond)
	AssertGamesSimulated(t, rec, "regular", 2)
}

func TestProviderHelpers(t *testing.T) {
	ctx := context.Background()

	p := &GoodProvider{Teams: SampleTeams()}
	if got, _ := p.FetchTeams(ctx); len(got) != 2 {
		t.Fatalf("expected teams from GoodProvider")
	}
	if _, err := p.FetchPlayers(ctx, nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if p.Calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", p.Calls.Load())
	}

	errProv := ErrProvider{Err: errors.New("boom")}
	if _, err := errProv.FetchTeams(ctx); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected error passthrough")
	}
	if _, err := errProv.FetchPlayers(ctx, nil); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected error passthrough")
	}

	unavail := UnavailableProvider{}
	if _, err := unavail.FetchTeams(ctx); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable")
	}
}
