package weakspot

import "math"

// Kind classifies how a statistic is judged.
type Kind int

// Statistic kinds.
const (
	Standard   Kind = iota // higher is better
	Percentage             // a ratio in [0,1]
	Inverse                // lower is better
)

func (k Kind) String() string {
	switch k {
	case Percentage:
		return "percentage"
	case Inverse:
		return "inverse"
	default:
		return "standard"
	}
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Tunable constants of the weak-spot heuristics.
const (
	PercentageGap    = 0.05 // points below the mean that flag a percentage
	PercentageStep   = 0.03 // projected gain in points
	PercentageCap    = 0.01 // projection may pass the mean by at most this
	PercentageFloor  = 0.05 // projection of a zero percentage when the mean is zero
	InverseExcess    = 1.20
	InverseReduction = 0.90
	InverseFloor     = 0.95
	DefaultThreshold = 0.75
	StandardGain     = 1.15
	StandardCeiling  = 0.95
	DefaultMinGames  = 10
)

// Project returns the simulated post-training value of a flagged statistic.
func Project(kind Kind, player, mean float64) float64 {
	switch kind {
	case Percentage:
		if mean == 0 && player == 0 {
			return PercentageFloor
		}
		return math.Min(player+PercentageStep, mean+PercentageCap)
	case Inverse:
		return math.Max(player*InverseReduction, mean*InverseFloor)
	default:
		return math.Min(player*StandardGain, mean*StandardCeiling)
	}
}
