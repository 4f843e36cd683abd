// Package sample generates realistic development data: the plan mix a real
// Power to Choose pull would contain, including the traps the ranker is
// supposed to catch.
package sample

import (
	"time"

	"github.com/dcervantes/powerpick/internal/domain"
	"github.com/google/uuid"
)

type planSpec struct {
	name, provider, tdu string
	p500, p1000, p2000  float64
	term                int
	rateType            domain.RateType
	renewable           int
	prepaid, tou        bool
	etf, base           float64
	specialTerms, promo string
	language            string
}

var sampleSpecs = []planSpec{
	// clean fixed-rate plans across TDUs
	{name: "Maxx Saver Select 12", provider: "4Change Energy", tdu: "ONCOR", p500: 12.4, p1000: 9.8, p2000: 9.1, term: 12, rateType: domain.RateTypeFixed, renewable: 23, etf: 150, base: 9.95},
	{name: "Saver Supreme 12", provider: "Gexa Energy", tdu: "ONCOR", p500: 11.9, p1000: 9.5, p2000: 8.9, term: 12, rateType: domain.RateTypeFixed, renewable: 100, etf: 175, base: 4.95, promo: "100% renewable energy"},
	{name: "True Simple 24", provider: "Reliant Energy", tdu: "CENTERPOINT", p500: 13.2, p1000: 10.2, p2000: 9.4, term: 24, rateType: domain.RateTypeFixed, etf: 240, base: 9.95},
	{name: "Live Brighter 12", provider: "Direct Energy", tdu: "ONCOR", p500: 12.1, p1000: 9.9, p2000: 9.2, term: 12, rateType: domain.RateTypeFixed, renewable: 15, etf: 150, base: 8.95},
	{name: "Texas Choice 12", provider: "Pulse Power", tdu: "CENTERPOINT", p500: 13.8, p1000: 10.4, p2000: 9.7, term: 12, rateType: domain.RateTypeFixed, renewable: 8, etf: 165, base: 9.95},
	{name: "Saver 12", provider: "Discount Power", tdu: "AEP_NORTH", p500: 11.7, p1000: 9.3, p2000: 8.8, term: 12, rateType: domain.RateTypeFixed, renewable: 30, etf: 150, base: 4.95},
	{name: "The Bull 12", provider: "Energy Texas", tdu: "ONCOR", p500: 11.4, p1000: 9.2, p2000: 8.7, term: 12, rateType: domain.RateTypeFixed, renewable: 20, etf: 150, base: 4.95, promo: "No-nonsense electricity"},
	{name: "Pollution Free e-Plus 24", provider: "Green Mountain Energy", tdu: "CENTERPOINT", p500: 13.9, p1000: 10.8, p2000: 10.1, term: 24, rateType: domain.RateTypeFixed, renewable: 100, etf: 225, base: 9.95, promo: "100% pollution-free renewable energy"},
	{name: "Simple Rate 12", provider: "Cirro Energy", tdu: "TNMP", p500: 14.2, p1000: 11.5, p2000: 10.8, term: 12, rateType: domain.RateTypeFixed, renewable: 12, etf: 150, base: 9.95},
	{name: "Smart Choice 12", provider: "Pennywise Power", tdu: "AEP_CENTRAL", p500: 12.3, p1000: 9.7, p2000: 9.0, term: 12, rateType: domain.RateTypeFixed, renewable: 22, etf: 150, base: 4.95},
	// bill-credit traps: great at exactly 1000 kWh, bad everywhere else
	{name: "Bill Credit Plus 12", provider: "Frontier Utilities", tdu: "ONCOR", p500: 22.8, p1000: 7.9, p2000: 11.4, term: 12, rateType: domain.RateTypeFixed, etf: 150, base: 9.95,
		specialTerms: "$120 bill credit applied when usage is between 1000-1050 kWh", promo: "Special promotional rate with bill credit"},
	{name: "Credit Boost 12", provider: "Ambit Energy", tdu: "CENTERPOINT", p500: 21.4, p1000: 8.4, p2000: 10.9, term: 12, rateType: domain.RateTypeFixed, etf: 195, base: 9.95,
		specialTerms: "$100 bill credit when usage is exactly 1000 kWh", promo: "Introductory credit offer"},
	// free-nights time-of-use
	{name: "Free Nights & Solar Days 12", provider: "TXU Energy", tdu: "ONCOR", p500: 16.8, p1000: 13.2, p2000: 11.9, term: 12, rateType: domain.RateTypeFixed, renewable: 50, tou: true, etf: 195, base: 9.95,
		specialTerms: "Free electricity every night from 9 PM to 6 AM", promo: "Free nights with solar renewable energy"},
	// term-length spread
	{name: "Champ Saver-36", provider: "Champion Energy", tdu: "ONCOR", p500: 10.8, p1000: 8.9, p2000: 8.4, term: 36, rateType: domain.RateTypeFixed, renewable: 18, etf: 300, base: 9.95, promo: "Long-term rate lock"},
	{name: "Seasonal Saver 6", provider: "Spring Power & Gas", tdu: "ONCOR", p500: 13.1, p1000: 10.6, p2000: 9.9, term: 6, rateType: domain.RateTypeFixed, renewable: 25, etf: 75, base: 9.95, promo: "Great for timing your renewal to fall season"},
	// a Spanish mirror of the Gexa plan, for dedup coverage
	{name: "Ahorro Supremo 12 - Edición en Español", provider: "Gexa Energy", tdu: "ONCOR", p500: 11.9, p1000: 9.5, p2000: 8.9, term: 12, rateType: domain.RateTypeFixed, renewable: 100, etf: 175, base: 4.95, promo: "100% energía renovable", language: "Spanish"},
}

// Plans returns the development plan set. Each call mints fresh ids.
func Plans() []*domain.Plan {
	plans := make([]*domain.Plan, 0, len(sampleSpecs))
	for _, s := range sampleSpecs {
		etfVal := s.etf
		p := &domain.Plan{
			ID:                uuid.NewString(),
			Name:              s.name,
			Provider:          s.provider,
			TDUArea:           s.tdu,
			RateType:          s.rateType,
			TermMonths:        s.term,
			PriceKWh500:       s.p500,
			PriceKWh1000:      s.p1000,
			PriceKWh2000:      s.p2000,
			BaseChargeMonthly: s.base,
			RenewablePct:      s.renewable,
			IsPrepaid:         s.prepaid,
			IsTOU:             s.tou,
			Language:          s.language,
		}
		if p.Language == "" {
			p.Language = "English"
		}
		if etfVal > 0 {
			p.EarlyTerminationFee = &etfVal
		}
		if s.specialTerms != "" {
			st := s.specialTerms
			p.SpecialTerms = &st
		}
		if s.promo != "" {
			pr := s.promo
			p.PromotionDetails = &pr
		}
		plans = append(plans, p)
	}
	return plans
}

// Data wraps the sample plans in the plans.json file structure.
func Data() *domain.PlansData {
	plans := Plans()
	return &domain.PlansData{
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		DataSource:  "Sample Data (for development)",
		TotalPlans:  len(plans),
		Plans:       plans,
	}
}
