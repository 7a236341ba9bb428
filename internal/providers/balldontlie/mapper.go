package balldontlie

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
)

// mapTeam converts an upstream team. The conference comes from the payload when it parses and
// from the city otherwise; ok is false when neither resolves (historical franchises).
func mapTeam(t teamResponse) (teams.Team, bool) {
	conf, ok := teams.ParseConference(t.Conference)
	if !ok {
		conf, ok = teams.ConferenceForCity(t.City)
	}
	if !ok {
		return teams.Team{}, false
	}
	return teams.Team{
		ID:           teamID(t),
		Name:         strings.TrimSpace(t.Name),
		FullName:     strings.TrimSpace(t.FullName),
		Abbreviation: strings.TrimSpace(t.Abbreviation),
		City:         strings.TrimSpace(t.City),
		Conference:   conf,
		Division:     strings.TrimSpace(t.Division),
	}, true
}

func teamID(t teamResponse) string {
	if abbr := strings.TrimSpace(t.Abbreviation); abbr != "" {
		return strings.ToLower(abbr)
	}
	return fmt.Sprintf("team-%d", t.ID)
}
