package etf

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/dcervantes/powerpick/internal/domain"
)

// Classification is the resolved fee structure for a plan, tagged with the
// rule that produced it so ambiguous answers stay traceable.
type Classification struct {
	Structure    domain.ETFStructure
	Amount       float64
	PerMonthRate float64
	Source       domain.ETFSource
	Rule         string
}

type rule struct {
	name  string
	apply func(p *domain.Plan) (Classification, bool)
}

// Service resolves early-termination fee structures. Rules run in a fixed
// order; each rule only fires when every rule before it declined.
type Service struct {
	rules []rule
}

func NewService() *Service {
	s := &Service{}
	s.rules = []rule{
		{"structured-details", s.fromStructuredDetails},
		{"explicit-no-fee", s.fromNoFeeText},
		{"per-month-text", s.fromPerMonthText},
		{"numeric-fallback", s.fromNumericValue},
		{"fee-applies-text", s.fromFeeAppliesText},
		{"absence", s.fromAbsence},
	}
	return s
}

// Classify runs the rule chain. The final absence rule always answers, so a
// classification is always returned.
func (s *Service) Classify(p *domain.Plan) Classification {
	for _, r := range s.rules {
		if c, ok := r.apply(p); ok {
			c.Rule = r.name
			return c
		}
	}
	// unreachable: fromAbsence never declines
	return Classification{Structure: domain.ETFStructureUnknown, Source: domain.ETFSourceLegacy}
}

// CalculateEarlyTerminationFee resolves the dollar total for cancelling with
// the given number of months left on the contract.
func (s *Service) CalculateEarlyTerminationFee(p *domain.Plan, monthsRemaining int) domain.ETFResult {
	if monthsRemaining < 0 {
		monthsRemaining = 0
	}
	c := s.Classify(p)

	res := domain.ETFResult{
		Structure:       c.Structure,
		PerMonthRate:    c.PerMonthRate,
		MonthsRemaining: monthsRemaining,
	}
	switch c.Structure {
	case domain.ETFStructurePerMonth:
		res.Total = c.PerMonthRate * float64(monthsRemaining)
	case domain.ETFStructureFlat:
		res.Total = c.Amount
	default:
		// none, none-conditional and unknown all charge nothing the engine
		// can support with evidence
		res.Total = 0
	}
	return res
}

// GetETFDisplayInfo adds the human label and the needsConfirmation flag.
// The flag is set whenever the structure is unknown or was inferred from
// free text rather than structured EFL data.
func (s *Service) GetETFDisplayInfo(p *domain.Plan, monthsRemaining int) domain.ETFDisplayInfo {
	c := s.Classify(p)
	res := s.CalculateEarlyTerminationFee(p, monthsRemaining)

	info := domain.ETFDisplayInfo{ETFResult: res}
	switch c.Structure {
	case domain.ETFStructureFlat:
		info.Label = fmt.Sprintf("$%.0f flat cancellation fee", c.Amount)
	case domain.ETFStructurePerMonth:
		info.Label = fmt.Sprintf("$%.0f per month remaining", c.PerMonthRate)
		info.NeedsConfirmation = c.Source == domain.ETFSourceTextParsing
	case domain.ETFStructureNone:
		info.Label = "no cancellation fee"
	case domain.ETFStructureNoneConditional:
		info.Label = "no cancellation fee if you move"
	case domain.ETFStructureUnknown:
		info.Label = "cancellation fee not determined"
		info.NeedsConfirmation = true
	}
	return info
}

var (
	noFeeRe = regexp.MustCompile(`(?i)\bno\s+(?:early[\s-]+)?(?:termination|cancell?ation)\s+fee|without\s+(?:an?\s+)?(?:early[\s-]+)?(?:termination|cancell?ation)\s+fee|\$\s*0\s+(?:termination|cancell?ation)\s+fee`)
	// relocation wording turns a waived fee into a conditional waiver
	relocationRe = regexp.MustCompile(`(?i)\bif\s+you\s+move\b|\bunless\s+you\s+move\b|\brelocat\w*|\bmoving\s+(?:out|outside)\b`)

	perMonthAmountRe = regexp.MustCompile(`(?i)\$\s*(\d+(?:\.\d{1,2})?)\s*(?:per\s+(?:remaining\s+)?month(?:\s+remaining)?|/\s*month\s+remaining|for\s+each\s+(?:remaining\s+)?month(?:\s+remaining)?|(?:x|×|times|multiplied\s+by)\s+(?:the\s+)?(?:number\s+of\s+)?months?\s+remaining)`)
	perMonthHintRe   = regexp.MustCompile(`(?i)per\s+(?:remaining\s+)?month|month(?:s)?\s+remaining`)

	feeAppliesRe = regexp.MustCompile(`(?i)(?:termination|cancell?ation)\s+fee\s+(?:may\s+)?appl(?:y|ies)`)

	amountNumberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// perMonthBareMax caps the bare-number heuristic: a published ETF this small
// on a long contract reads like a monthly rate, not a flat fee.
const perMonthBareMax = 50.0

func (s *Service) fromStructuredDetails(p *domain.Plan) (Classification, bool) {
	d := p.ETFDetails
	if d == nil {
		return Classification{}, false
	}

	amount := 0.0
	if d.BaseAmount != nil {
		amount = *d.BaseAmount
	} else if p.EarlyTerminationFee != nil {
		amount = *p.EarlyTerminationFee
	}

	c := Classification{Source: d.Source}
	switch d.Structure {
	case "per-month-remaining", domain.ETFStructurePerMonth:
		c.Structure = domain.ETFStructurePerMonth
		c.PerMonthRate = amount
	case domain.ETFStructureFlat:
		c.Structure = domain.ETFStructureFlat
		c.Amount = amount
	case domain.ETFStructureNone:
		c.Structure = domain.ETFStructureNone
	default:
		c.Structure = domain.ETFStructureUnknown
	}
	return c, true
}

func (s *Service) fromNoFeeText(p *domain.Plan) (Classification, bool) {
	text := p.FreeText()
	if text == "" || !noFeeRe.MatchString(text) {
		return Classification{}, false
	}
	c := Classification{Structure: domain.ETFStructureNone, Source: domain.ETFSourceTextParsing}
	if relocationRe.MatchString(text) {
		c.Structure = domain.ETFStructureNoneConditional
	}
	return c, true
}

func (s *Service) fromPerMonthText(p *domain.Plan) (Classification, bool) {
	text := p.FreeText()
	if text == "" {
		return Classification{}, false
	}

	if m := perMonthAmountRe.FindStringSubmatch(text); m != nil {
		return Classification{
			Structure:    domain.ETFStructurePerMonth,
			PerMonthRate: parseAmount(m[1]),
			Source:       domain.ETFSourceTextParsing,
		}, true
	}

	// A small published fee alongside per-month wording is read as the
	// monthly rate.
	if p.EarlyTerminationFee != nil && *p.EarlyTerminationFee > 0 &&
		*p.EarlyTerminationFee <= perMonthBareMax && perMonthHintRe.MatchString(text) {
		return Classification{
			Structure:    domain.ETFStructurePerMonth,
			PerMonthRate: *p.EarlyTerminationFee,
			Source:       domain.ETFSourceTextParsing,
		}, true
	}

	return Classification{}, false
}

func (s *Service) fromNumericValue(p *domain.Plan) (Classification, bool) {
	if p.EarlyTerminationFee == nil || *p.EarlyTerminationFee <= 0 {
		return Classification{}, false
	}
	fee := *p.EarlyTerminationFee

	if p.IsPrepaid {
		// prepaid plans publish flat fees, never per-month schedules
		return Classification{Structure: domain.ETFStructureFlat, Amount: fee, Source: domain.ETFSourceLegacy}, true
	}

	// A fee this small on a year-plus contract is usually an unlabelled
	// per-month rate. Without corroborating text we refuse to guess either
	// way.
	if fee <= perMonthBareMax && p.TermMonths >= 12 {
		return Classification{Structure: domain.ETFStructureUnknown, Source: domain.ETFSourceLegacy}, true
	}

	return Classification{Structure: domain.ETFStructureFlat, Amount: fee, Source: domain.ETFSourceLegacy}, true
}

func (s *Service) fromFeeAppliesText(p *domain.Plan) (Classification, bool) {
	text := p.FreeText()
	if text == "" || !feeAppliesRe.MatchString(text) {
		return Classification{}, false
	}
	return Classification{Structure: domain.ETFStructureUnknown, Source: domain.ETFSourceTextParsing}, true
}

// fromAbsence is the terminal rule. With no numeric value and no textual
// signal, a short-term plan is treated as fee-free; a year-plus contract
// with no disclosed fee is suspicious and stays unknown.
func (s *Service) fromAbsence(p *domain.Plan) (Classification, bool) {
	if p.TermMonths >= 12 {
		return Classification{Structure: domain.ETFStructureUnknown, Source: domain.ETFSourceLegacy}, true
	}
	return Classification{Structure: domain.ETFStructureNone, Source: domain.ETFSourceLegacy}, true
}

func parseAmount(raw string) float64 {
	m := amountNumberRe.FindString(raw)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
