package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/games"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
	"github.com/preston-bernstein/nba-sim-service/internal/league"
	"github.com/preston-bernstein/nba-sim-service/internal/testutil"
)

func TestAdminAdvanceDay(t *testing.T) {
	l := testutil.NewLeague(t)
	h := NewAdminHandler(l, nil)

	rr := serve(h.AdvanceDay, testutil.JSONRequest(http.MethodPost, "/league/advance", ""))
	testutil.AssertStatus(t, rr, http.StatusOK)
	var report league.DayReport
	testutil.DecodeJSON(t, rr, &report)
	if report.Day != 1 || len(report.Games) != 15 || report.Phase != league.PhaseRegularSeason {
		t.Fatalf("unexpected report day=%d games=%d phase=%s", report.Day, len(report.Games), report.Phase)
	}

	testutil.PlayToChampion(t, l)
	rr = serve(h.AdvanceDay, testutil.JSONRequest(http.MethodPost, "/league/advance", ""))
	testutil.AssertStatus(t, rr, http.StatusConflict)
}

func TestAdminNewSeason(t *testing.T) {
	l := testutil.NewLeague(t)
	h := NewAdminHandler(l, nil)

	rr := serve(h.NewSeason, testutil.JSONRequest(http.MethodPost, "/league/new-season", ""))
	testutil.AssertStatus(t, rr, http.StatusConflict)

	testutil.PlayToChampion(t, l)
	rr = serve(h.NewSeason, testutil.JSONRequest(http.MethodPost, "/league/new-season", ""))
	testutil.AssertStatus(t, rr, http.StatusOK)
	var status league.Status
	testutil.DecodeJSON(t, rr, &status)
	if status.Season != 2031 || status.Day != 0 || status.Phase != league.PhaseRegularSeason {
		t.Fatalf("unexpected status after rollover %+v", status)
	}
}

func TestAdminExhibition(t *testing.T) {
	l := testutil.NewLeague(t)
	h := NewAdminHandler(l, nil)

	rr := serve(h.Exhibition, testutil.JSONRequest(http.MethodPost, "/exhibitions", `{"homeId":"bos","awayId":"lal","seed":42}`))
	testutil.AssertStatus(t, rr, http.StatusOK)
	var game games.Game
	testutil.DecodeJSON(t, rr, &game)
	if game.Kind != games.KindExhibition || game.HomeTeam.ID != "bos" || game.AwayTeam.ID != "lal" {
		t.Fatalf("unexpected exhibition %+v", game)
	}
	if game.WinnerID() == "" {
		t.Fatalf("expected a decided exhibition")
	}
	if st := l.Status(); st.Games != 0 {
		t.Fatalf("expected exhibitions to leave the season untouched, got %d games", st.Games)
	}

	tests := []struct {
		body string
		want int
	}{
		{body: `{"homeId":"bos","awayId":"bos"}`, want: http.StatusBadRequest},
		{body: `{"homeId":"bos"}`, want: http.StatusBadRequest},
		{body: `{"homeId":"bos","awayId":"zzz"}`, want: http.StatusNotFound},
		{body: `{"homeId":"bos","awayId":"lal","extra":1}`, want: http.StatusBadRequest},
		{body: `not json`, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		rr := serve(h.Exhibition, testutil.JSONRequest(http.MethodPost, "/exhibitions", tt.body))
		testutil.AssertStatus(t, rr, tt.want)
	}
}

func TestAdminAssignArchetype(t *testing.T) {
	l := testutil.NewLeague(t)
	h := NewAdminHandler(l, nil)

	put := func(id, body string) *httptest.ResponseRecorder {
		req := testutil.JSONRequest(http.MethodPut, "/players/"+id+"/archetype", body)
		req.SetPathValue("id", id)
		return serve(h.AssignArchetype, req)
	}

	rr := put("bos-p01", `{"archetype":"floor_general"}`)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var p players.Player
	testutil.DecodeJSON(t, rr, &p)
	if p.Archetype != "floor_general" {
		t.Fatalf("expected archetype applied, got %q", p.Archetype)
	}
	if stored, _ := l.Player("bos-p01"); stored.Archetype != "floor_general" {
		t.Fatalf("expected league to keep the archetype, got %q", stored.Archetype)
	}

	testutil.AssertStatus(t, put("bos-p01", `{"archetype":"rim_protector"}`), http.StatusBadRequest)
	testutil.AssertStatus(t, put("bos-p01", `{"archetype":"wizard"}`), http.StatusBadRequest)
	testutil.AssertStatus(t, put("ghost", `{"archetype":"floor_general"}`), http.StatusNotFound)
	testutil.AssertStatus(t, put("bos-p01", `{`), http.StatusBadRequest)

	rr = put("bos-p01", `{"archetype":""}`)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if stored, _ := l.Player("bos-p01"); stored.Archetype != "" {
		t.Fatalf("expected empty archetype to clear the role, got %q", stored.Archetype)
	}
}

func TestAdminSetStrategy(t *testing.T) {
	l := testutil.NewLeague(t)
	h := NewAdminHandler(l, nil)

	put := func(id, body string) *httptest.ResponseRecorder {
		req := testutil.JSONRequest(http.MethodPut, "/teams/"+id+"/strategy", body)
		req.SetPathValue("id", id)
		return serve(h.SetStrategy, req)
	}

	testutil.AssertStatus(t, put("bos", `{"strategy":"pace_and_space"}`), http.StatusOK)
	if s, _ := l.Strategy("bos"); s != "pace_and_space" {
		t.Fatalf("expected strategy stored, got %q", s)
	}
	testutil.AssertStatus(t, put("bos", `{"strategy":"zone"}`), http.StatusBadRequest)
	testutil.AssertStatus(t, put("nope", `{"strategy":"inside"}`), http.StatusNotFound)
}
