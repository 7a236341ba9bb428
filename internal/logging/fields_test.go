package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestWithCommonAppendsServiceAndVersion(t *testing.T) {
	attrs := WithCommon(nil, "nba-sim-service", "v1")
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != FieldService || attrs[0].Value.String() != "nba-sim-service" {
		t.Fatalf("expected service attr, got %+v", attrs[0])
	}
	if attrs[1].Key != FieldVersion || attrs[1].Value.String() != "v1" {
		t.Fatalf("expected version attr, got %+v", attrs[1])
	}
}

func TestWithCommonSkipsEmpty(t *testing.T) {
	attrs := WithCommon([]slog.Attr{{Key: FieldSeason, Value: slog.IntValue(2030)}}, "", "")
	if len(attrs) != 1 || attrs[0].Key != FieldSeason {
		t.Fatalf("expected original attrs preserved, got %+v", attrs)
	}
}

func TestFieldKeysAreDistinct(t *testing.T) {
	keys := []string{
		FieldService, FieldVersion, FieldProvider, FieldRequestID, FieldPath, FieldMethod,
		FieldStatusCode, FieldCount, FieldDurationMS, FieldGameID, FieldSeason, FieldDay,
		FieldSeriesID, FieldTeamID, FieldStage, FieldTopic, FieldError,
	}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			t.Fatalf("duplicate field key %q", k)
		}
		seen[k] = true
	}
}

func TestHelpersAreNilSafeAndLevelled(t *testing.T) {
	Debug(nil, "ignored")
	Info(nil, "ignored")
	Warn(nil, "ignored")
	Error(nil, "ignored", nil)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	Debug(logger, "hidden day")
	Error(logger, "archive failed", errTest("disk full"), FieldSeason, 2031)

	out := buf.String()
	if strings.Contains(out, "hidden day") {
		t.Fatalf("expected debug suppressed at info level, got %s", out)
	}
	if !strings.Contains(out, "error=\"disk full\"") || !strings.Contains(out, "season=2031") {
		t.Fatalf("expected error and season fields, got %s", out)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
