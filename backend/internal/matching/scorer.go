package matching

import "math"

const (
	// ExactWeight is added for every interest both users like.
	ExactWeight = 1.0
	// CompatibleWeight is added for every (mine, theirs) pair of distinct
	// interests joined by COMPATIBLE_WITH.
	CompatibleWeight = 0.7
	// DefaultNormalization is K in floor(score / K * 100). It is a tuning
	// constant, not a derived maximum, so percentages above 100 are possible.
	DefaultNormalization = 10.0
)

// percentEpsilon absorbs float accumulation error (0.7+0.7+0.7 = 2.0999...)
// before flooring.
const percentEpsilon = 1e-9

// CompatibilitySet is the COMPATIBLE_WITH relation as a set of unordered pairs.
type CompatibilitySet map[[2]string]struct{}

// NewCompatibilitySet builds a set from interest id pairs. Self pairs are dropped.
func NewCompatibilitySet(pairs [][2]string) CompatibilitySet {
	set := make(CompatibilitySet, len(pairs))
	for _, p := range pairs {
		if p[0] == p[1] {
			continue
		}
		set[orderedPair(p[0], p[1])] = struct{}{}
	}
	return set
}

// Compatible reports whether x and y are distinct and linked.
func (c CompatibilitySet) Compatible(x, y string) bool {
	if x == y {
		return false
	}
	_, ok := c[orderedPair(x, y)]
	return ok
}

// Scorer computes affinity between two interest sets. The zero value uses
// DefaultNormalization. It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	Normalization float64
}

// Score sums over the full cross product of mine x theirs: ExactWeight for
// identical interests, CompatibleWeight for compatible ones, nothing otherwise.
func (s Scorer) Score(mine, theirs []string, compat CompatibilitySet) float64 {
	score := 0.0
	for _, x := range mine {
		for _, y := range theirs {
			switch {
			case x == y:
				score += ExactWeight
			case compat.Compatible(x, y):
				score += CompatibleWeight
			}
		}
	}
	return score
}

// Percentage converts a score to floor(score / K * 100).
func (s Scorer) Percentage(score float64) int {
	k := s.Normalization
	if k <= 0 {
		k = DefaultNormalization
	}
	return int(math.Floor(score*100/k + percentEpsilon))
}

func orderedPair(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
