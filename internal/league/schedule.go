package league

// Matchup is one scheduled regular-season game.
type Matchup struct {
	HomeID string `json:"homeId"`
	AwayID string `json:"awayId"`
}

const bye = ""

// BuildSchedule builds a round-robin schedule with the circle method. Each day every team plays
// at most once and the team that has hosted less so far gets the home game. Days continue until
// every team has played gamesPerTeam games, so an odd league gives each team its bye in turn.
// An odd league with an odd gamesPerTeam cannot be completed; the last team is left one short.
func BuildSchedule(teamIDs []string, gamesPerTeam int) [][]Matchup {
	if len(teamIDs) < 2 || gamesPerTeam <= 0 {
		return nil
	}
	ring := append([]string(nil), teamIDs...)
	if len(ring)%2 == 1 {
		ring = append(ring, bye)
	}
	n := len(ring)
	rounds := n - 1

	played := make(map[string]int, len(teamIDs))
	hosted := make(map[string]int, len(teamIDs))
	maxRounds := rounds * (gamesPerTeam/rounds + 2)
	done := func() bool {
		for _, id := range teamIDs {
			if played[id] < gamesPerTeam {
				return false
			}
		}
		return true
	}

	var days [][]Matchup
	for r := 0; r < maxRounds && !done(); r++ {
		var day []Matchup
		for i := 0; i < n/2; i++ {
			a, b := ring[i], ring[n-1-i]
			if a == bye || b == bye {
				continue
			}
			if played[a] >= gamesPerTeam || played[b] >= gamesPerTeam {
				continue
			}
			home, away := a, b
			if hosted[b] < hosted[a] || (hosted[a] == hosted[b] && (i+r)%2 == 1) {
				home, away = b, a
			}
			hosted[home]++
			day = append(day, Matchup{HomeID: home, AwayID: away})
			played[a]++
			played[b]++
		}
		if len(day) > 0 {
			days = append(days, day)
		}
		rotate(ring)
	}
	return days
}

// rotate keeps ring[0] fixed and turns the rest one step clockwise.
func rotate(ring []string) {
	if len(ring) < 3 {
		return
	}
	last := ring[len(ring)-1]
	copy(ring[2:], ring[1:len(ring)-1])
	ring[1] = last
}
