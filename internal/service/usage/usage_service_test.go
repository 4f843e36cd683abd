package usage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatePattern_TotalIsExact(t *testing.T) {
	svc := NewService()

	for _, avg := range []float64{500, 1000, 1137.5, 2500} {
		pattern := svc.EstimatePattern(avg)
		require.Len(t, pattern, 12)

		var total float64
		for _, v := range pattern {
			assert.Equal(t, math.Trunc(v), v, "monthly values are whole kWh")
			assert.GreaterOrEqual(t, v, 0.0)
			total += v
		}
		assert.Equal(t, math.Round(avg*12), total, "avg %v", avg)
	}
}

func TestEstimatePattern_SummerPeak(t *testing.T) {
	pattern := NewService().EstimatePattern(1000)

	august := pattern[7]
	for i, v := range pattern {
		if i != 7 {
			assert.LessOrEqual(t, v, august, "month %d should not exceed August", i)
		}
	}
	assert.Greater(t, august, pattern[3], "August well above April")
}

func TestEstimatePattern_UnusableInputFallsBack(t *testing.T) {
	svc := NewService()
	want := svc.EstimatePattern(DefaultAverageKWh)

	for _, bad := range []float64{0, -100, math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.Equal(t, want, svc.EstimatePattern(bad))
	}
}

func TestEstimateFromHomeSize(t *testing.T) {
	svc := NewService()

	small := svc.EstimateFromHomeSize("small_apartment")
	large := svc.EstimateFromHomeSize("very_large_home")

	assert.Equal(t, 500.0*12, sum(small))
	assert.Equal(t, 2500.0*12, sum(large))

	assert.Equal(t, svc.EstimatePattern(DefaultAverageKWh), svc.EstimateFromHomeSize("yurt"))
}

func sum(vs []float64) float64 {
	var total float64
	for _, v := range vs {
		total += v
	}
	return total
}
