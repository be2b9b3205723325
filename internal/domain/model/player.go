// Package model contains domain models passed between layers.
package model

import "strings"

// Identity columns recognised in input datasets.
const (
	ColumnPlayerName = "PLAYER_NAME"
	ColumnPlayerID   = "PLAYER_ID"
	ColumnTeam       = "TEAM_ABBREVIATION"
	ColumnSeason     = "SEASON_ID"
	ColumnAge        = "PLAYER_AGE"
)

// PlayerRecord is one player-season observation.
type PlayerRecord struct {
	Row      int                // position of the row in the source dataset
	PlayerID string             // provider id, optional
	Name     string             // display name, e.g. "Jalen Brunson"
	Team     string             // team abbreviation, "TOT" for combined rows
	Season   string             // season id, e.g. "2023-24"
	Age      float64            // 0 when unknown
	Stats    map[string]float64 // absent key means the statistic is undefined
}

// Stat returns the value of a statistic and whether it is defined.
func (r PlayerRecord) Stat(name string) (float64, bool) {
	v, ok := r.Stats[name]
	return v, ok
}

// Key identifies a player-season-team row for duplicate detection.
func (r PlayerRecord) Key() string {
	return strings.ToLower(strings.TrimSpace(r.Name)) + "|" + r.Season + "|" + r.Team
}

// Dataset is a materialized table: ordered headers and rows of raw cells.
// A short row is padded with empty cells on read.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// HasColumn reports whether the dataset carries a header.
func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// ColumnIndex returns the position of a header, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, h := range d.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the raw cell at row r for the named column, or "".
func (d *Dataset) Cell(r int, name string) string {
	c := d.ColumnIndex(name)
	if c < 0 || r < 0 || r >= len(d.Rows) || c >= len(d.Rows[r]) {
		return ""
	}
	return d.Rows[r][c]
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}
