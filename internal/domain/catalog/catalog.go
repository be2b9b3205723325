// Package catalog holds the read-only reference data shared by the analysis
// and report layers: statistic display names, training drills and radar
// chart categories.
package catalog

import (
	"slices"
)

// Drill groups.
const (
	GroupShooting   = "shooting efficiency"
	GroupTurnovers  = "reduce turnovers"
	GroupFouls      = "reduce fouls"
	GroupRebounding = "rebounding"
	GroupPlaymaking = "playmaking"
	GroupSteals     = "steals"
	GroupBlocks     = "shot blocking"
	GroupMinutes    = "conditioning"
	GroupDurability = "durability"
	GroupLeadership = "starter leadership"
	GroupScoring    = "scoring"
)

// Category is a named group of statistics plotted together.
type Category struct {
	Name  string   `json:"name"`
	Stats []string `json:"stats"`
}

// Catalog is immutable once built; accessors return copies.
type Catalog struct {
	names      map[string]string
	drills     map[string][]string
	statGroups map[string]string
	radar      []Category
}

var defaultCatalog = &Catalog{ //nolint:gochecknoglobals // immutable reference data
	names: map[string]string{
		"MIN":     "Minutes",
		"FGM":     "Field Goals Made",
		"FGA":     "Field Goals Attempted",
		"FG_PCT":  "Field Goal %",
		"FG3M":    "Three-Pointers Made",
		"FG3A":    "Three-Pointers Attempted",
		"FG3_PCT": "Three-Point %",
		"FTM":     "Free Throws Made",
		"FTA":     "Free Throws Attempted",
		"FT_PCT":  "Free Throw %",
		"OREB":    "Offensive Rebounds",
		"DREB":    "Defensive Rebounds",
		"REB":     "Total Rebounds",
		"AST":     "Assists",
		"STL":     "Steals",
		"BLK":     "Blocks",
		"TOV":     "Turnovers",
		"PF":      "Personal Fouls",
		"PTS":     "Points",
		"GP":      "Games Played",
		"GS":      "Games Started",
	},
	drills: map[string][]string{
		GroupShooting: {
			"Spot shooting: 50 shots from each spot (at the rim, mid-range, three). Focus on form and follow-through.",
			"Shooting off the dribble: 20 mid-range pull-ups, 20 step-backs.",
			"Free throws: 10 sets of 5, aiming for at least 80%.",
		},
		GroupTurnovers: {
			"Ball handling under pressure: two-ball dribbling, then dribbling while a partner tries to poke the ball away without contact.",
			"Pass and move: passing on the move with an emphasis on accuracy and quick decisions (3-on-2, 4-on-3).",
			"Reading the defense: game situations where the player must read the defense before passing or driving.",
		},
		GroupFouls: {
			"Positional defense: lateral movement and stance work without excessive contact.",
			"Containment without fouling: guard the ball and force the attacker to the weak hand without reaching.",
			"Charge versus block: simulate contact plays to learn when the foul is offensive and when it is defensive.",
		},
		GroupRebounding: {
			"Box-out drill: seal the opponent to secure defensive and offensive boards.",
			"Rebound jumps: 30 continuous jumps working on timing and position.",
			"Rebounding in traffic: multi-player rebounding under game-like contact.",
		},
		GroupPlaymaking: {
			"Court vision: read and react to cutters, find the open man.",
			"Post entry passes: accurate entries into the low post against a defender.",
		},
		GroupSteals: {
			"Passing lane anticipation: read the offense and jump the lanes.",
			"Active on-ball defense: strip the ball without fouling.",
		},
		GroupBlocks: {
			"Block timing: jump and timing work to contest shots without fouling.",
			"Pick and roll coverage: defend the screen action and protect the rim.",
		},
		GroupMinutes: {
			"Conditioning: basketball-specific strength and endurance routines.",
			"Fundamentals: work every basic area, dribbling, passing, shooting and on-ball defense.",
		},
		GroupDurability: {
			"Injury prevention: stretching and strengthening of key joints and muscles.",
			"Consistency: keep energy and focus high through the whole game and season.",
		},
		GroupLeadership: {
			"On-court leadership: communication and decision drills as the floor leader.",
			"Starter impact: set the tempo from the opening tip.",
		},
		GroupScoring: {
			"Transition scoring: finishing on the break.",
			"Attacking the rim: drives and finishes at the basket including floaters and contact layups.",
			"Creating space: moves to shake the defender and get a clean look.",
		},
	},
	statGroups: map[string]string{
		"TOV":  GroupTurnovers,
		"PF":   GroupFouls,
		"REB":  GroupRebounding,
		"OREB": GroupRebounding,
		"DREB": GroupRebounding,
		"AST":  GroupPlaymaking,
		"STL":  GroupSteals,
		"BLK":  GroupBlocks,
		"MIN":  GroupMinutes,
		"GP":   GroupDurability,
		"GS":   GroupLeadership,
		"PTS":  GroupScoring,
	},
	radar: []Category{
		{Name: "Offense", Stats: []string{"PTS", "AST", "FGM", "FGA", "TOV"}},
		{Name: "Rebounding", Stats: []string{"REB", "OREB", "DREB"}},
		{Name: "Shooting", Stats: []string{"FG_PCT", "FG3_PCT", "FT_PCT"}},
		{Name: "Defense", Stats: []string{"STL", "BLK", "PF"}},
	},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// DisplayName returns the readable name of a statistic, or the code itself.
func (c *Catalog) DisplayName(stat string) string {
	if n, ok := c.names[stat]; ok {
		return n
	}
	return stat
}

// GroupFor returns the drill group of a statistic that is not a shooting
// percentage, or "" when there is none.
func (c *Catalog) GroupFor(stat string) string {
	return c.statGroups[stat]
}

// Drills returns the drills of a group.
func (c *Catalog) Drills(group string) []string {
	return slices.Clone(c.drills[group])
}

// RadarCategories returns the chart categories in display order.
func (c *Catalog) RadarCategories() []Category {
	out := make([]Category, len(c.radar))
	for i, cat := range c.radar {
		out[i] = Category{Name: cat.Name, Stats: slices.Clone(cat.Stats)}
	}
	return out
}
