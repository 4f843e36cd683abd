package cost

import (
	"math"
	"regexp"

	"github.com/dcervantes/powerpick/internal/domain"
	"github.com/dcervantes/powerpick/internal/pkg/constants"
	"github.com/shopspring/decimal"
)

// Service computes plan costs for a usage pattern. It is stateless; all
// inputs arrive per call.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// InterpolateRate returns the ¢/kWh rate at the given usage, interpolating
// linearly between the three published price points. Usage below 500 kWh
// uses the 500 price, above 2000 extrapolates flat at the 2000 price.
func (s *Service) InterpolateRate(usage float64, p *domain.Plan) float64 {
	switch {
	case usage <= 500:
		return p.PriceKWh500
	case usage <= 1000:
		frac := (usage - 500) / 500
		return p.PriceKWh500 + (p.PriceKWh1000-p.PriceKWh500)*frac
	case usage <= 2000:
		frac := (usage - 1000) / 1000
		return p.PriceKWh1000 + (p.PriceKWh2000-p.PriceKWh1000)*frac
	default:
		return p.PriceKWh2000
	}
}

// CreditClause is a parsed bill-credit condition. A nil upper bound means
// the credit has no ceiling.
type CreditClause struct {
	Amount float64
	MinKWh float64
	MaxKWh float64 // math.Inf(1) when unbounded
	Exact  bool
}

var (
	creditAmountRe   = regexp.MustCompile(`(?i)\$\s*(\d+(?:\.\d{1,2})?)\s*(?:bill\s+)?credit|(?:bill\s+)?credit\s+of\s+\$\s*(\d+(?:\.\d{1,2})?)`)
	creditRangeRe    = regexp.MustCompile(`(?i)between\s+(\d+)\s*(?:-|and|to)\s*(\d+)\s*kwh|(\d+)\s*-\s*(\d+)\s*kwh`)
	creditExactRe    = regexp.MustCompile(`(?i)exactly\s+(\d+)\s*kwh`)
	creditMinimumRe  = regexp.MustCompile(`(?i)(?:at\s+least|above|over|more\s+than)\s+(\d+)\s*kwh|(\d+)\s*kwh\s+or\s+more`)
	creditNumberOnly = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ParseCreditClause extracts a single bill-credit clause from plan free
// text. Only the first clause is modeled; multi-tier credit plans are a
// known limitation and parse as their first tier.
func (s *Service) ParseCreditClause(p *domain.Plan) (CreditClause, bool) {
	text := p.FreeText()
	if text == "" {
		return CreditClause{}, false
	}

	m := creditAmountRe.FindStringSubmatch(text)
	if m == nil {
		return CreditClause{}, false
	}
	amountStr := m[1]
	if amountStr == "" {
		amountStr = m[2]
	}
	amount := mustParseFloat(amountStr)
	if amount <= 0 {
		return CreditClause{}, false
	}

	clause := CreditClause{Amount: amount, MinKWh: 0, MaxKWh: math.Inf(1)}

	if rm := creditRangeRe.FindStringSubmatch(text); rm != nil {
		lo, hi := rm[1], rm[2]
		if lo == "" {
			lo, hi = rm[3], rm[4]
		}
		clause.MinKWh = mustParseFloat(lo)
		clause.MaxKWh = mustParseFloat(hi)
		return clause, true
	}
	if em := creditExactRe.FindStringSubmatch(text); em != nil {
		v := mustParseFloat(em[1])
		clause.MinKWh, clause.MaxKWh, clause.Exact = v, v, true
		return clause, true
	}
	if mm := creditMinimumRe.FindStringSubmatch(text); mm != nil {
		v := mm[1]
		if v == "" {
			v = mm[2]
		}
		clause.MinKWh = mustParseFloat(v)
		return clause, true
	}

	// Credit language with no usage condition applies at any usage.
	return clause, true
}

// CalculateBillCredits returns the dollar credit earned at the given usage,
// or 0 when no clause parses or the usage misses the qualifying window.
func (s *Service) CalculateBillCredits(usage float64, p *domain.Plan) float64 {
	clause, ok := s.ParseCreditClause(p)
	if !ok {
		return 0
	}
	if usage < clause.MinKWh || usage > clause.MaxKWh {
		return 0
	}
	return clause.Amount
}

// CalculateMonthlyCost prices one month of usage. TDU delivery is computed
// for display transparency only and is never added to the total: published
// plan prices already embed delivery charges by regulatory mandate.
func (s *Service) CalculateMonthlyCost(usage float64, p *domain.Plan, tdu *domain.TDURate, taxRate float64) domain.MonthlyCost {
	rate := s.InterpolateRate(usage, p)
	energy := usage * rate / 100
	credits := s.CalculateBillCredits(usage, p)

	tduCost := 0.0
	if tdu != nil {
		tduCost = tdu.MonthlyBaseCharge + usage*tdu.PerKWhRate/100
	}

	total := math.Max(0, energy+p.BaseChargeMonthly-credits) * (1 + taxRate)
	total = roundCents(total)

	effective := 0.0
	if usage > 0 {
		effective = total / usage * 100
	}

	return domain.MonthlyCost{
		Usage:         usage,
		Rate:          rate,
		EnergyCost:    energy,
		TDUCost:       tduCost,
		BaseCharge:    p.BaseChargeMonthly,
		Credits:       credits,
		Total:         total,
		EffectiveRate: effective,
	}
}

// CalculateAnnualCost prices a full year. The usage pattern must hold
// exactly 12 values; anything else is a fatal input error.
func (s *Service) CalculateAnnualCost(pattern []float64, p *domain.Plan, tdu *domain.TDURate, taxRate float64) (*domain.AnnualCost, error) {
	if len(pattern) != 12 {
		return nil, constants.ErrInvalidUsagePattern
	}

	annual := &domain.AnnualCost{Monthly: make([]domain.MonthlyCost, 0, 12)}
	for _, u := range pattern {
		mc := s.CalculateMonthlyCost(u, p, tdu, taxRate)
		annual.Monthly = append(annual.Monthly, mc)
		annual.Total += mc.Total
		annual.TotalUsage += u
	}

	annual.Total = roundCents(annual.Total)
	annual.AverageMonthly = roundCents(annual.Total / 12)
	if annual.TotalUsage > 0 {
		annual.EffectiveRate = annual.Total / annual.TotalUsage * 100
	}

	return annual, nil
}

// roundCents rounds through decimal to avoid float artifacts on exact-half
// cents.
func roundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func mustParseFloat(s string) float64 {
	m := creditNumberOnly.FindString(s)
	if m == "" {
		return 0
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}
