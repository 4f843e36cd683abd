package etf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcervantes/powerpick/internal/domain"
)

func planWithText(text string, fee *float64, term int) *domain.Plan {
	p := &domain.Plan{
		ID:                  "p1",
		Name:                "Test Plan",
		Provider:            "Test Energy",
		TDUArea:             "ONCOR",
		RateType:            domain.RateTypeFixed,
		TermMonths:          term,
		EarlyTerminationFee: fee,
	}
	if text != "" {
		p.SpecialTerms = &text
	}
	return p
}

func f(v float64) *float64 { return &v }

func TestClassify_RuleChain(t *testing.T) {
	svc := NewService()

	tests := []struct {
		name      string
		plan      *domain.Plan
		structure domain.ETFStructure
		rule      string
	}{
		{
			"perMonthText",
			planWithText("Early termination fee: $20 per month remaining on the contract.", f(240), 12),
			domain.ETFStructurePerMonth, "per-month-text",
		},
		{
			"noFeeBeatsNumericValue",
			planWithText("No early termination fee.", f(50), 12),
			domain.ETFStructureNone, "explicit-no-fee",
		},
		{
			"relocationWaiver",
			planWithText("No cancellation fee if you move out of the service area.", f(150), 12),
			domain.ETFStructureNoneConditional, "explicit-no-fee",
		},
		{
			"zeroFeeNoTextLongTerm",
			planWithText("", f(0), 24),
			domain.ETFStructureUnknown, "absence",
		},
		{
			"noFeeNoTextShortTerm",
			planWithText("", nil, 6),
			domain.ETFStructureNone, "absence",
		},
		{
			"smallFeeLongTermAmbiguous",
			planWithText("", f(20), 12),
			domain.ETFStructureUnknown, "numeric-fallback",
		},
		{
			"smallFeeShortTermFlat",
			planWithText("", f(50), 6),
			domain.ETFStructureFlat, "numeric-fallback",
		},
		{
			"largeFeeFlat",
			planWithText("", f(175), 12),
			domain.ETFStructureFlat, "numeric-fallback",
		},
		{
			"feeMayApply",
			planWithText("A cancellation fee may apply, see EFL for details.", nil, 6),
			domain.ETFStructureUnknown, "fee-applies-text",
		},
		{
			"bareSmallFeeWithMonthHint",
			planWithText("Fee charged per month remaining.", f(25), 24),
			domain.ETFStructurePerMonth, "per-month-text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := svc.Classify(tt.plan)
			assert.Equal(t, tt.structure, c.Structure)
			assert.Equal(t, tt.rule, c.Rule)
		})
	}
}

func TestClassify_PrepaidPublishesFlat(t *testing.T) {
	p := planWithText("", f(25), 12)
	p.IsPrepaid = true

	c := NewService().Classify(p)
	assert.Equal(t, domain.ETFStructureFlat, c.Structure)
	assert.Equal(t, 25.0, c.Amount)
}

func TestClassify_StructuredDetailsWin(t *testing.T) {
	p := planWithText("No early termination fee.", f(99), 12)
	p.ETFDetails = &domain.ETFDetails{
		Structure:  "per-month-remaining",
		BaseAmount: f(20),
		Source:     domain.ETFSourceEFL,
	}

	c := NewService().Classify(p)
	assert.Equal(t, domain.ETFStructurePerMonth, c.Structure)
	assert.Equal(t, 20.0, c.PerMonthRate)
	assert.Equal(t, domain.ETFSourceEFL, c.Source)
	assert.Equal(t, "structured-details", c.Rule)
}

func TestCalculateEarlyTerminationFee(t *testing.T) {
	svc := NewService()

	perMonth := planWithText("$20 per month remaining", nil, 12)
	res := svc.CalculateEarlyTerminationFee(perMonth, 6)
	assert.Equal(t, 120.0, res.Total)
	assert.Equal(t, domain.ETFStructurePerMonth, res.Structure)

	res = svc.CalculateEarlyTerminationFee(perMonth, -3)
	assert.Equal(t, 0.0, res.Total, "negative months clamp to zero")

	flat := planWithText("", f(175), 12)
	res = svc.CalculateEarlyTerminationFee(flat, 1)
	assert.Equal(t, 175.0, res.Total)

	waived := planWithText("No early termination fee.", f(50), 12)
	res = svc.CalculateEarlyTerminationFee(waived, 6)
	assert.Equal(t, 0.0, res.Total)
}

func TestGetETFDisplayInfo(t *testing.T) {
	svc := NewService()

	t.Run("unknownNeedsConfirmation", func(t *testing.T) {
		info := svc.GetETFDisplayInfo(planWithText("", f(0), 24), 12)
		assert.True(t, info.NeedsConfirmation)
		assert.Equal(t, "cancellation fee not determined", info.Label)
	})

	t.Run("perMonthFromTextNeedsConfirmation", func(t *testing.T) {
		info := svc.GetETFDisplayInfo(planWithText("$20 per month remaining", nil, 12), 6)
		assert.True(t, info.NeedsConfirmation)
		assert.Equal(t, 120.0, info.Total)
	})

	t.Run("perMonthFromEFLIsTrusted", func(t *testing.T) {
		p := planWithText("", nil, 12)
		p.ETFDetails = &domain.ETFDetails{Structure: "per-month-remaining", BaseAmount: f(20), Source: domain.ETFSourceEFL}
		info := svc.GetETFDisplayInfo(p, 6)
		assert.False(t, info.NeedsConfirmation)
	})

	t.Run("flatLabel", func(t *testing.T) {
		info := svc.GetETFDisplayInfo(planWithText("", f(175), 12), 6)
		assert.Equal(t, "$175 flat cancellation fee", info.Label)
		assert.False(t, info.NeedsConfirmation)
	})
}
