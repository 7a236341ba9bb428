package teams

import "strings"

// Conference groups teams for seeding.
type Conference string

const (
	East Conference = "East"
	West Conference = "West"
)

// Conferences lists both conferences in bracket order.
var Conferences = []Conference{East, West}

// Team represents a league franchise. Conference is carried explicitly; seeding never guesses it.
type Team struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	FullName     string     `json:"fullName"`
	Abbreviation string     `json:"abbreviation"`
	City         string     `json:"city"`
	Conference   Conference `json:"conference"`
	Division     string     `json:"division"`
}

// ParseConference normalizes upstream conference labels ("East", "eastern", "W").
func ParseConference(raw string) (Conference, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "east", "eastern", "e":
		return East, true
	case "west", "western", "w":
		return West, true
	default:
		return "", false
	}
}

var eastCities = map[string]struct{}{
	"atlanta": {}, "boston": {}, "brooklyn": {}, "charlotte": {}, "chicago": {},
	"cleveland": {}, "detroit": {}, "indiana": {}, "miami": {}, "milwaukee": {},
	"new york": {}, "orlando": {}, "philadelphia": {}, "toronto": {}, "washington": {},
}

var westCities = map[string]struct{}{
	"dallas": {}, "denver": {}, "golden state": {}, "houston": {}, "la": {},
	"los angeles": {}, "memphis": {}, "minnesota": {}, "new orleans": {}, "oklahoma city": {},
	"phoenix": {}, "portland": {}, "sacramento": {}, "san antonio": {}, "utah": {},
}

// ConferenceForCity resolves a conference from a city name. Unknown cities report ok=false
// so callers decide what to do instead of silently landing in the East.
func ConferenceForCity(city string) (Conference, bool) {
	key := strings.ToLower(strings.TrimSpace(city))
	if _, ok := eastCities[key]; ok {
		return East, true
	}
	if _, ok := westCities[key]; ok {
		return West, true
	}
	return "", false
}
