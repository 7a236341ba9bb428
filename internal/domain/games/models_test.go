package games

import (
	"reflect"
	"testing"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
)

func TestGameJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}

	gameType := reflect.TypeOf(Game{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"Kind", "kind"},
		{"HomeTeam", "homeTeam"},
		{"AwayTeam", "awayTeam"},
		{"Status", "status"},
		{"Score", "score"},
		{"BoxScore", "boxScore,omitempty"},
		{"Meta", "meta"},
	}

	for _, fc := range fields {
		field, ok := gameType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if jsonTag := field.Tag.Get("json"); jsonTag != fc.tag {
			t.Fatalf("field %s expected json tag %s, got %s", fc.name, fc.tag, jsonTag)
		}
	}
}

func TestWinnerAndLoser(t *testing.T) {
	g := Game{
		HomeTeam: teams.Team{ID: "bos"},
		AwayTeam: teams.Team{ID: "lal"},
		Status:   StatusFinal,
		Score:    Score{Home: 101, Away: 99},
	}
	if g.WinnerID() != "bos" || g.LoserID() != "lal" {
		t.Fatalf("expected bos to beat lal, got winner=%s loser=%s", g.WinnerID(), g.LoserID())
	}

	g.Score = Score{Home: 90, Away: 112}
	if g.WinnerID() != "lal" || g.LoserID() != "bos" {
		t.Fatalf("expected lal to beat bos, got winner=%s loser=%s", g.WinnerID(), g.LoserID())
	}
}

func TestWinnerEmptyWhenNotFinal(t *testing.T) {
	g := Game{
		HomeTeam: teams.Team{ID: "bos"},
		AwayTeam: teams.Team{ID: "lal"},
		Status:   StatusScheduled,
		Score:    Score{Home: 3, Away: 0},
	}
	if g.WinnerID() != "" || g.LoserID() != "" {
		t.Fatalf("expected no winner for scheduled game")
	}
}

func TestKindPostseason(t *testing.T) {
	if KindRegular.Postseason() || KindExhibition.Postseason() {
		t.Fatalf("regular and exhibition games are not postseason")
	}
	if !KindPlayIn.Postseason() || !KindPlayoff.Postseason() {
		t.Fatalf("play-in and playoff games are postseason")
	}
}
