package roles

import (
	"errors"
	"fmt"
)

// ErrInvalidRule is returned by Validate.
var ErrInvalidRule = errors.New("invalid role rule")

// Op is a comparison operator.
type Op string

// Supported operators.
const (
	OpGT Op = ">"
	OpLT Op = "<"
	OpGE Op = ">="
	OpLE Op = "<="
)

// FallbackLabel is assigned when no rule matches.
const FallbackLabel = "General Role Player"

// Condition compares one cluster mean against a threshold.
type Condition struct {
	Stat  string  `koanf:"stat" json:"stat"`
	Op    Op      `koanf:"op" json:"op"`
	Value float64 `koanf:"value" json:"value"`
}

// Holds reports whether v satisfies the condition.
func (c Condition) Holds(v float64) bool {
	switch c.Op {
	case OpGT:
		return v > c.Value
	case OpLT:
		return v < c.Value
	case OpGE:
		return v >= c.Value
	case OpLE:
		return v <= c.Value
	}
	return false
}

func (c Condition) String() string {
	return fmt.Sprintf("%s%s%g", c.Stat, c.Op, c.Value)
}

// Rule labels a cluster when all of its conditions hold.
type Rule struct {
	Label string      `koanf:"label" json:"label"`
	When  []Condition `koanf:"when" json:"when"`
}

// Matches reports whether every condition holds over means. Missing stats read as 0.
func (r Rule) Matches(means map[string]float64) bool {
	for _, c := range r.When {
		if !c.Holds(means[c.Stat]) {
			return false
		}
	}
	return true
}

func gt(stat string, v float64) Condition { return Condition{Stat: stat, Op: OpGT, Value: v} }
func lt(stat string, v float64) Condition { return Condition{Stat: stat, Op: OpLT, Value: v} }

// DefaultRules returns the archetype cascade over season-total means, highest
// priority first. Low engagement is checked before everything else so a
// low-minutes outlier is never labelled a specialist.
func DefaultRules() []Rule {
	return []Rule{
		{Label: "Roster Fringe / Development", When: []Condition{lt("MIN", 200), lt("GP", 25), lt("PTS", 100)}},
		{Label: "Rim Protector / Defensive Big", When: []Condition{gt("BLK", 70), gt("REB", 300), gt("MIN", 800)}},
		{Label: "Dominant Center / Efficient Interior", When: []Condition{gt("FG_PCT", 0.60), gt("REB", 400), gt("PTS", 300)}},
		{Label: "Rebounding Big / Role Big", When: []Condition{gt("REB", 350), gt("MIN", 800), lt("PTS", 600)}},
		{Label: "Lead Playmaker / Scorer", When: []Condition{gt("AST", 350), gt("MIN", 1200), gt("PTS", 800), gt("FG3M", 80)}},
		{Label: "Pure Lead Playmaker", When: []Condition{gt("AST", 350), gt("MIN", 1200)}},
		{Label: "Role Guard / Facilitator (Shooter)", When: []Condition{gt("AST", 150), gt("MIN", 500), lt("PTS", 500), gt("FG3M", 70), gt("FG3_PCT", 0.35)}},
		{Label: "Role Guard / Ball Handler", When: []Condition{gt("AST", 150), gt("MIN", 500), lt("PTS", 500)}},
		{Label: "Three-Point Specialist / Scoring Guard", When: []Condition{gt("FG3_PCT", 0.38), gt("FG3M", 150), gt("FGA", 600)}},
		{Label: "Volume Scorer / Offensive Wing", When: []Condition{gt("PTS", 800), gt("FGA", 650)}},
		{Label: "Role Defender", When: []Condition{gt("STL", 80), gt("MIN", 700)}},
		{Label: "Role Defender", When: []Condition{gt("BLK", 40), gt("MIN", 700)}},
		{Label: "All-Around Player", When: []Condition{gt("PTS", 500), gt("AST", 150), gt("REB", 250), gt("MIN", 1000), gt("FG_PCT", 0.45)}},
	}
}

// Validate rejects rules with an empty label, a rule without conditions, an
// empty stat name or an unknown operator.
func Validate(rules []Rule) error {
	for i, r := range rules {
		if r.Label == "" {
			return fmt.Errorf("%w: rule %d has no label", ErrInvalidRule, i)
		}
		if len(r.When) == 0 {
			return fmt.Errorf("%w: rule %d (%s) has no conditions", ErrInvalidRule, i, r.Label)
		}
		for _, c := range r.When {
			if c.Stat == "" {
				return fmt.Errorf("%w: rule %d (%s) has a condition without a stat", ErrInvalidRule, i, r.Label)
			}
			switch c.Op {
			case OpGT, OpLT, OpGE, OpLE:
			default:
				return fmt.Errorf("%w: rule %d (%s) uses operator %q", ErrInvalidRule, i, r.Label, c.Op)
			}
		}
	}
	return nil
}
