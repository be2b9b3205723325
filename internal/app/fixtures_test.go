package service_test

import (
	"github.com/okian/hooplab/internal/domain/model"
)

var fixtureHeaders = []string{
	"PLAYER_NAME", "TEAM_ABBREVIATION", "SEASON_ID", "MIN", "PTS", "AST", "REB", "BLK", "FG_PCT", "TOV", "GP",
}

// fixtureDataset holds three obvious archetypes (guards, bigs, deep bench)
// plus one row with a missing statistic.
func fixtureDataset() *model.Dataset {
	return &model.Dataset{
		Headers: append([]string(nil), fixtureHeaders...),
		Rows: [][]string{
			{"Ann Guard", "BOS", "2023-24", "2400", "1500", "500", "250", "20", "0.47", "200", "78"},
			{"Gia Point", "BOS", "2023-24", "2300", "1400", "450", "230", "15", "0.46", "180", "76"},
			{"Hal Lead", "NYK", "2023-24", "2350", "1450", "480", "240", "18", "0.48", "190", "80"},
			{"Ivy Wing", "NYK", "2023-24", "2200", "1000", "300", "200", "10", "0.30", "310", "70"},
			{"Bob Big", "NYK", "2023-24", "2000", "900", "100", "700", "120", "0.62", "90", "75"},
			{"Cal Tower", "MIA", "2023-24", "1900", "850", "90", "650", "110", "0.60", "80", "72"},
			{"Dex Post", "MIA", "2023-24", "2100", "950", "110", "720", "130", "0.63", "95", "79"},
			{"Eli Rim", "BOS", "2023-24", "1800", "500", "60", "600", "100", "0.58", "70", "70"},
			{"Fay Bench", "MIA", "2023-24", "80", "20", "5", "10", "0", "0.30", "4", "9"},
			{"Gus Bench", "BOS", "2023-24", "120", "40", "8", "20", "1", "0.35", "6", "12"},
			{"Hank Bench", "NYK", "2023-24", "100", "30", "6", "15", "0", "0.33", "5", "11"},
			{"Ike Bench", "MIA", "2023-24", "90", "25", "4", "12", "0", "0.31", "3", "10"},
			{"Jo Missing", "MIA", "2023-24", "900", "", "40", "100", "4", "0.40", "20", "30"},
		},
	}
}

var fixtureColumns = []string{"MIN", "PTS", "AST", "REB", "BLK", "FG_PCT", "TOV", "GP", "STL"}
