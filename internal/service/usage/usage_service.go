package usage

import "math"

// DefaultAverageKWh is the fallback when the input average is unusable or a
// home-size category is not recognized.
const DefaultAverageKWh = 1000

// homeSizeAverages maps a home-size category to a typical average monthly
// usage in kWh.
var homeSizeAverages = map[string]float64{
	"small_apartment": 500,
	"apartment":       750,
	"small_home":      1000,
	"medium_home":     1500,
	"large_home":      2000,
	"very_large_home": 2500,
}

// seasonalMultipliers shape a flat average into the Texas residential load
// curve: mild winter heating, a hard summer cooling peak, cheap shoulder
// months. Index 0 is January. The table is rescaled at use so the annual
// mean equals the requested average exactly.
var seasonalMultipliers = [12]float64{
	1.20, // Jan
	1.10, // Feb
	0.95, // Mar
	0.85, // Apr
	1.00, // May
	1.45, // Jun
	1.75, // Jul
	1.80, // Aug
	1.50, // Sep
	0.90, // Oct
	0.85, // Nov
	1.15, // Dec
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// EstimateFromHomeSize resolves a home-size category through the lookup
// table and estimates from the resulting average.
func (s *Service) EstimateFromHomeSize(category string) []float64 {
	avg, ok := homeSizeAverages[category]
	if !ok {
		avg = DefaultAverageKWh
	}
	return s.EstimatePattern(avg)
}

// EstimatePattern converts an average monthly usage into 12 monthly values.
// The returned values are whole kWh and always sum to round(avg*12).
func (s *Service) EstimatePattern(avgMonthlyKWh float64) []float64 {
	if !isUsable(avgMonthlyKWh) {
		avgMonthlyKWh = DefaultAverageKWh
	}

	var sum float64
	for _, m := range seasonalMultipliers {
		sum += m
	}
	scale := 12 / sum

	pattern := make([]float64, 12)
	peak := 0
	var roundedTotal float64
	for i, m := range seasonalMultipliers {
		pattern[i] = math.Round(avgMonthlyKWh * m * scale)
		roundedTotal += pattern[i]
		if seasonalMultipliers[i] > seasonalMultipliers[peak] {
			peak = i
		}
	}

	// Rounding drift lands on the highest-usage month so the annual total is
	// exact.
	target := math.Round(avgMonthlyKWh * 12)
	pattern[peak] += target - roundedTotal

	return pattern
}

func isUsable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
