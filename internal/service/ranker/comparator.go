package ranker

import "github.com/dcervantes/powerpick/internal/domain"

type direction int

const (
	descending direction = iota
	ascending
)

// compareStep is one key in the ranking order. Two values within epsilon of
// each other are treated as equal and fall through to the next step.
type compareStep struct {
	name    string
	epsilon float64
	dir     direction
	key     func(*domain.RankedPlan) float64
}

// rankOrder is the full ordering: combined score descending, then annual
// cost ascending, then quality descending, with plan name as the terminal
// tie-break. The terminal string key makes the order total: no two plans
// compare equal.
var rankOrder = []compareStep{
	{
		name:    "combined-score",
		epsilon: 0.001,
		dir:     descending,
		key:     func(rp *domain.RankedPlan) float64 { return rp.CombinedScore },
	},
	{
		name:    "annual-cost",
		epsilon: 0.001,
		dir:     ascending,
		key:     func(rp *domain.RankedPlan) float64 { return rp.AnnualCost },
	},
	{
		name:    "quality-score",
		epsilon: 0,
		dir:     descending,
		key:     func(rp *domain.RankedPlan) float64 { return rp.QualityScore },
	},
}

// rankLess reports whether a sorts before b.
func rankLess(a, b *domain.RankedPlan) bool {
	for _, step := range rankOrder {
		ka, kb := step.key(a), step.key(b)
		diff := ka - kb
		if diff < 0 {
			diff = -diff
		}
		if diff <= step.epsilon {
			continue
		}
		if step.dir == descending {
			return ka > kb
		}
		return ka < kb
	}
	return a.Plan.Name < b.Plan.Name
}
