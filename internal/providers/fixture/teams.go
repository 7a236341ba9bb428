package fixture

import "github.com/preston-bernstein/nba-sim-service/internal/domain/teams"

func team(abbr, city, name string, conf teams.Conference, division string) teams.Team {
	return teams.Team{
		ID:           abbrToID(abbr),
		Name:         name,
		FullName:     city + " " + name,
		Abbreviation: abbr,
		City:         city,
		Conference:   conf,
		Division:     division,
	}
}

var leagueTeams = []teams.Team{
	team("BOS", "Boston", "Celtics", teams.East, "Atlantic"),
	team("BKN", "Brooklyn", "Nets", teams.East, "Atlantic"),
	team("NYK", "New York", "Knicks", teams.East, "Atlantic"),
	team("PHI", "Philadelphia", "76ers", teams.East, "Atlantic"),
	team("TOR", "Toronto", "Raptors", teams.East, "Atlantic"),
	team("CHI", "Chicago", "Bulls", teams.East, "Central"),
	team("CLE", "Cleveland", "Cavaliers", teams.East, "Central"),
	team("DET", "Detroit", "Pistons", teams.East, "Central"),
	team("IND", "Indiana", "Pacers", teams.East, "Central"),
	team("MIL", "Milwaukee", "Bucks", teams.East, "Central"),
	team("ATL", "Atlanta", "Hawks", teams.East, "Southeast"),
	team("CHA", "Charlotte", "Hornets", teams.East, "Southeast"),
	team("MIA", "Miami", "Heat", teams.East, "Southeast"),
	team("ORL", "Orlando", "Magic", teams.East, "Southeast"),
	team("WAS", "Washington", "Wizards", teams.East, "Southeast"),
	team("DEN", "Denver", "Nuggets", teams.West, "Northwest"),
	team("MIN", "Minnesota", "Timberwolves", teams.West, "Northwest"),
	team("OKC", "Oklahoma City", "Thunder", teams.West, "Northwest"),
	team("POR", "Portland", "Trail Blazers", teams.West, "Northwest"),
	team("UTA", "Utah", "Jazz", teams.West, "Northwest"),
	team("GSW", "Golden State", "Warriors", teams.West, "Pacific"),
	team("LAC", "LA", "Clippers", teams.West, "Pacific"),
	team("LAL", "Los Angeles", "Lakers", teams.West, "Pacific"),
	team("PHX", "Phoenix", "Suns", teams.West, "Pacific"),
	team("SAC", "Sacramento", "Kings", teams.West, "Pacific"),
	team("DAL", "Dallas", "Mavericks", teams.West, "Southwest"),
	team("HOU", "Houston", "Rockets", teams.West, "Southwest"),
	team("MEM", "Memphis", "Grizzlies", teams.West, "Southwest"),
	team("NOP", "New Orleans", "Pelicans", teams.West, "Southwest"),
	team("SAS", "San Antonio", "Spurs", teams.West, "Southwest"),
}

var firstNames = []string{
	"Aaron", "Andre", "Caleb", "Darius", "Devin", "Elijah", "Isaiah", "Jalen", "Jordan", "Julian",
	"Kendall", "Malik", "Marcus", "Miles", "Nolan", "Omar", "Quentin", "Reggie", "Tyrese", "Xavier",
	"Bruno", "Luka", "Nikola", "Theo", "Victor", "Kai", "Mateo", "Rafael", "Sami", "Yuki",
}

var lastNames = []string{
	"Adams", "Brooks", "Carter", "Diallo", "Ellis", "Fields", "Grant", "Hayes", "Irving", "Jackson",
	"King", "Lowry", "Mitchell", "Nance", "Okafor", "Porter", "Quinn", "Reed", "Sato", "Turner",
	"Ulrich", "Vance", "Walker", "Young", "Zeller", "Bianchi", "Costa", "Dubois", "Novak", "Petrov",
}
