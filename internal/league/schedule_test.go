package league

import (
	"fmt"
	"testing"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("t%02d", i)
	}
	return out
}

func TestBuildScheduleEvenLeague(t *testing.T) {
	teamIDs := ids(30)
	days := BuildSchedule(teamIDs, 82)
	if len(days) != 82 {
		t.Fatalf("expected 82 days, got %d", len(days))
	}

	games := map[string]int{}
	home := map[string]int{}
	for d, day := range days {
		seen := map[string]bool{}
		for _, m := range day {
			if m.HomeID == m.AwayID {
				t.Fatalf("day %d has a team playing itself", d)
			}
			if seen[m.HomeID] || seen[m.AwayID] {
				t.Fatalf("day %d schedules a team twice", d)
			}
			seen[m.HomeID], seen[m.AwayID] = true, true
			games[m.HomeID]++
			games[m.AwayID]++
			home[m.HomeID]++
		}
	}
	for _, id := range teamIDs {
		if games[id] != 82 {
			t.Fatalf("team %s plays %d games, want 82", id, games[id])
		}
		if home[id] < 35 || home[id] > 47 {
			t.Fatalf("team %s has unbalanced home games: %d", id, home[id])
		}
	}
}

func TestBuildScheduleMeetsEveryOpponent(t *testing.T) {
	teamIDs := ids(6)
	days := BuildSchedule(teamIDs, 5)
	if len(days) != 5 {
		t.Fatalf("expected a single round robin of 5 days, got %d", len(days))
	}
	pairs := map[string]bool{}
	for _, day := range days {
		for _, m := range day {
			a, b := m.HomeID, m.AwayID
			if a > b {
				a, b = b, a
			}
			key := a + "-" + b
			if pairs[key] {
				t.Fatalf("pair %s scheduled twice in one cycle", key)
			}
			pairs[key] = true
		}
	}
	if len(pairs) != 15 {
		t.Fatalf("expected 15 distinct pairs, got %d", len(pairs))
	}
}

func TestBuildScheduleOddLeague(t *testing.T) {
	teamIDs := ids(5)
	days := BuildSchedule(teamIDs, 4)
	games := map[string]int{}
	for _, day := range days {
		if len(day) > 2 {
			t.Fatalf("expected at most 2 games a day with 5 teams")
		}
		for _, m := range day {
			games[m.HomeID]++
			games[m.AwayID]++
		}
	}
	for _, id := range teamIDs {
		if games[id] != 4 {
			t.Fatalf("team %s plays %d, want 4", id, games[id])
		}
	}
}

func TestBuildScheduleDegenerate(t *testing.T) {
	if BuildSchedule(ids(1), 10) != nil {
		t.Fatalf("expected no schedule for one team")
	}
	if BuildSchedule(ids(4), 0) != nil {
		t.Fatalf("expected no schedule for zero games")
	}
}
