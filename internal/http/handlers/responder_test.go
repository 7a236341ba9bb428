package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/nba-sim-service/internal/affinity"
	"github.com/preston-bernstein/nba-sim-service/internal/archive"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
	"github.com/preston-bernstein/nba-sim-service/internal/league"
	"github.com/preston-bernstein/nba-sim-service/internal/playoffs"
	"github.com/preston-bernstein/nba-sim-service/internal/store"
	"github.com/preston-bernstein/nba-sim-service/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()

	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("abc123")) {
		t.Fatalf("expected requestId in body, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status written even on encode error, got %d", rr.Code)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: x", league.ErrTeamNotFound), http.StatusNotFound},
		{league.ErrPlayerNotFound, http.StatusNotFound},
		{store.ErrNotFound, http.StatusNotFound},
		{archive.ErrNotArchived, http.StatusNotFound},
		{league.ErrSeasonComplete, http.StatusConflict},
		{league.ErrSeasonInProgress, http.StatusConflict},
		{affinity.ErrUnknownArchetype, http.StatusBadRequest},
		{players.ErrArchetypePosition, http.StatusBadRequest},
		{playoffs.ErrUnknownConference, http.StatusUnprocessableEntity},
		{fmt.Errorf("day 3: %w", league.ErrGameTimeout), http.StatusGatewayTimeout},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Fatalf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteDomainErrorHidesInternalDetail(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/games/x", nil)

	writeDomainError(rr, req, errors.New("sqlite: disk I/O error"), logger)

	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	if bytes.Contains(rr.Body.Bytes(), []byte("sqlite")) {
		t.Fatalf("expected internal detail hidden, got %s", rr.Body.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("disk I/O error")) {
		t.Fatalf("expected internal detail logged")
	}
}
