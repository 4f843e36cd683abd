package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcervantes/powerpick/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSeasonalityScore(t *testing.T) {
	svc := NewService()

	assert.Equal(t, 0.0, svc.SeasonalityScore(time.April))
	assert.Equal(t, 0.0, svc.SeasonalityScore(time.October))
	assert.Equal(t, 1.0, svc.SeasonalityScore(time.July))
	assert.Equal(t, 1.0, svc.SeasonalityScore(time.August))
	assert.Equal(t, 0.9, svc.SeasonalityScore(time.January))
}

func TestRiskLevel(t *testing.T) {
	svc := NewService()

	assert.Equal(t, domain.RiskOptimal, svc.RiskLevel(0.0))
	assert.Equal(t, domain.RiskOptimal, svc.RiskLevel(0.19))
	assert.Equal(t, domain.RiskLow, svc.RiskLevel(0.2))
	assert.Equal(t, domain.RiskLow, svc.RiskLevel(0.49))
	assert.Equal(t, domain.RiskMedium, svc.RiskLevel(0.5))
	assert.Equal(t, domain.RiskHigh, svc.RiskLevel(0.8))
	assert.Equal(t, domain.RiskHigh, svc.RiskLevel(1.0))
}

func TestCalculateContractExpiration(t *testing.T) {
	svc := NewService()
	now := date(2025, time.March, 15)

	t.Run("januaryExpirationIsHighRisk", func(t *testing.T) {
		res := svc.CalculateContractExpiration(date(2025, time.January, 1), 12, now)

		assert.Equal(t, date(2026, time.January, 1), res.ExpirationDate)
		assert.Equal(t, 1, res.ExpirationMonth)
		assert.Equal(t, 0.9, res.SeasonalityScore)
		assert.Equal(t, domain.RiskHigh, res.RiskLevel)
	})

	t.Run("aprilExpirationIsOptimal", func(t *testing.T) {
		res := svc.CalculateContractExpiration(date(2025, time.April, 1), 12, now)

		assert.Equal(t, 4, res.ExpirationMonth)
		assert.Equal(t, domain.RiskOptimal, res.RiskLevel)
		assert.Empty(t, res.AlternativeTerms, "nothing beats an optimal month")
	})

	t.Run("zeroStartDefaultsToNow", func(t *testing.T) {
		res := svc.CalculateContractExpiration(time.Time{}, 12, now)
		assert.Equal(t, now.AddDate(0, 12, 0), res.ExpirationDate)
	})

	t.Run("nonPositiveTermDefaultsTo12", func(t *testing.T) {
		res := svc.CalculateContractExpiration(date(2025, time.January, 1), 0, now)
		assert.Equal(t, date(2026, time.January, 1), res.ExpirationDate)
	})
}

func TestAlternativeTerms(t *testing.T) {
	svc := NewService()
	now := date(2025, time.March, 15)

	// 12 months from July 1 lands in July, the worst month
	res := svc.CalculateContractExpiration(date(2025, time.July, 1), 12, now)
	require.Equal(t, domain.RiskHigh, res.RiskLevel)
	require.NotEmpty(t, res.AlternativeTerms)

	assert.LessOrEqual(t, len(res.AlternativeTerms), 3)

	for _, alt := range res.AlternativeTerms {
		assert.NotEqual(t, 12, alt.TermMonths, "the current term is never suggested")
		assert.Less(t, alt.SeasonalityScore, res.SeasonalityScore)
	}

	// best candidates come first
	for i := 1; i < len(res.AlternativeTerms); i++ {
		assert.GreaterOrEqual(t,
			res.AlternativeTerms[i].SeasonalityScore,
			res.AlternativeTerms[i-1].SeasonalityScore)
	}

	// July start: 3 months lands in October (0.0) and 9 months in April (0.0),
	// the two optimal shoulder windows
	months := map[int]bool{}
	for _, alt := range res.AlternativeTerms {
		months[alt.ExpirationMonth] = true
	}
	assert.True(t, months[10] || months[4], "an optimal shoulder month is suggested")
}
