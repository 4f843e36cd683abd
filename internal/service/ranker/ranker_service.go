package ranker

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dcervantes/powerpick/internal/domain"
	"github.com/dcervantes/powerpick/internal/pkg/constants"
	"github.com/dcervantes/powerpick/internal/service/contract"
	"github.com/dcervantes/powerpick/internal/service/cost"
	"github.com/dcervantes/powerpick/internal/service/dedup"
	"github.com/dcervantes/powerpick/internal/service/etf"
)

// Service orchestrates the evaluation pipeline: dedup, per-plan costing,
// volatility and warnings, quality and combined scoring, deterministic
// ordering. It is a pure function of its inputs; collaborators are injected
// and hold no state.
type Service struct {
	cost     *cost.Service
	etf      *etf.Service
	contract *contract.Service
	dedup    *dedup.Service
}

func NewService(costSvc *cost.Service, etfSvc *etf.Service, contractSvc *contract.Service, dedupSvc *dedup.Service) *Service {
	return &Service{cost: costSvc, etf: etfSvc, contract: contractSvc, dedup: dedupSvc}
}

// RankInput carries everything a ranking call depends on. ReferenceDate
// anchors contract math; a zero ContractStart means "starting now".
type RankInput struct {
	Plans         []*domain.Plan
	Usage         []float64
	TDU           *domain.TDURate
	TaxRate       float64
	ReferenceDate time.Time
	ContractStart time.Time
}

type RankOutput struct {
	Plans  []*domain.RankedPlan        `json:"plans"`
	Dedup  *domain.DeduplicationResult `json:"dedup"`
	TDU    *domain.TDURate             `json:"tdu"`
	TaxPct float64                     `json:"tax_pct"`
}

const (
	volatilityNonFixed     = 0.6
	volatilityCreditBase   = 0.5
	volatilityCreditMiss   = 0.3
	volatilityTOU          = 0.3
	volatilitySpreadWeight = 0.5
	spreadVolatileMin      = 0.3
	spreadWarningMin       = 0.5

	etfWarningThreshold = 200.0

	qualityGateMin       = 60.0
	qualityCautionMax    = 70.0
	qualityCautionMalus  = 10.0
	subAcceptableOffset  = -1000.0
	subAcceptableCostCut = 0.1

	costPenaltyMax       = 40.0
	volatilityPenaltyMax = 25.0
	warningPenaltyEach   = 5.0
	warningPenaltyMax    = 25.0
	baseChargePenaltyMax = 5.0
	baseChargeFreeLimit  = 15.0
	expirationPenaltyHi  = 30.0
	expirationPenaltyMed = 15.0
)

// Rank evaluates, scores and orders the candidate plans. Empty input, a
// missing TDU rate record and a malformed usage pattern are fatal input
// errors, never coerced into an empty result.
func (s *Service) Rank(in RankInput) (*RankOutput, error) {
	if len(in.Plans) == 0 {
		return nil, constants.ErrEmptyPlanList
	}
	if in.TDU == nil {
		return nil, constants.ErrMissingTDURate
	}
	if len(in.Usage) != 12 {
		return nil, constants.ErrInvalidUsagePattern
	}

	refDate := in.ReferenceDate
	if refDate.IsZero() {
		refDate = time.Now()
	}
	start := in.ContractStart
	if start.IsZero() {
		start = refDate
	}

	dedupRes := s.dedup.Deduplicate(in.Plans)

	ranked := make([]*domain.RankedPlan, 0, len(dedupRes.Plans))
	for _, p := range dedupRes.Plans {
		rp, err := s.evaluate(p, in.Usage, in.TDU, in.TaxRate, start, refDate)
		if err != nil {
			return nil, fmt.Errorf("evaluate plan %s: %w", p.ID, err)
		}
		ranked = append(ranked, rp)
	}

	s.applyQualityScores(ranked)
	s.applyCombinedScores(ranked)

	sort.SliceStable(ranked, func(i, j int) bool { return rankLess(ranked[i], ranked[j]) })

	return &RankOutput{
		Plans:  ranked,
		Dedup:  dedupRes,
		TDU:    in.TDU,
		TaxPct: in.TaxRate * 100,
	}, nil
}

// evaluate runs the per-plan components and derives volatility, warnings
// and the gimmick flag. Scores that depend on the whole candidate set are
// filled in later.
func (s *Service) evaluate(p *domain.Plan, pattern []float64, tdu *domain.TDURate, taxRate float64, start, refDate time.Time) (*domain.RankedPlan, error) {
	annual, err := s.cost.CalculateAnnualCost(pattern, p, tdu, taxRate)
	if err != nil {
		return nil, fmt.Errorf("cost.CalculateAnnualCost: %w", err)
	}

	expiration := s.contract.CalculateContractExpiration(start, p.TermMonths, refDate)
	midTerm := p.TermMonths / 2
	etfInfo := s.etf.GetETFDisplayInfo(p, midTerm)

	rp := &domain.RankedPlan{
		Plan:               p,
		AnnualCost:         annual.Total,
		AverageMonthlyCost: annual.AverageMonthly,
		EffectiveRate:      annual.EffectiveRate,
		MonthlyCosts:       monthlyTotals(annual),
		ETF:                etfInfo,
		Expiration:         &expiration,
		Warnings:           []string{},
	}

	vol := 0.0

	if p.RateType != domain.RateTypeFixed {
		vol += volatilityNonFixed
		// synthetic warning: excluded from the warning count used in the
		// quality penalty, since the rate-type gate already zeroes the score
		rp.Warnings = append(rp.Warnings, "variable or indexed rate: the price can change month to month")
	}

	clause, hasCredit := s.cost.ParseCreditClause(p)
	if hasCredit {
		vol += volatilityCreditBase

		missed := 0
		for _, mc := range annual.Monthly {
			if mc.Credits == 0 {
				missed++
			}
		}
		vol += volatilityCreditMiss * float64(missed) / 12

		if missed > 0 {
			rp.Warnings = append(rp.Warnings, fmt.Sprintf(
				"bill credit of $%.0f missed in %d of 12 months (about $%.0f/yr lost)",
				clause.Amount, missed, clause.Amount*float64(missed)))
		}
	}

	if p.IsTOU {
		vol += volatilityTOU
		rp.Warnings = append(rp.Warnings, "time-of-use pricing: advertised savings depend on shifting usage")
	}

	spread := tieredSpread(p)
	if spread > spreadVolatileMin {
		vol += volatilitySpreadWeight * spread
	}
	if spread > spreadWarningMin {
		rp.Warnings = append(rp.Warnings, fmt.Sprintf(
			"rate swings %.0f%% between low and high usage levels", spread*100))
	}

	if etfInfo.Total > etfWarningThreshold {
		rp.Warnings = append(rp.Warnings, fmt.Sprintf(
			"cancelling mid-term costs about $%.0f", etfInfo.Total))
	}

	if expiration.RiskLevel == domain.RiskHigh {
		rp.Warnings = append(rp.Warnings, fmt.Sprintf(
			"contract expires in %s, a peak-price month to shop for a new plan",
			expiration.ExpirationDate.Month()))
	}

	rp.Volatility = math.Min(vol, 1)
	rp.IsGimmick = hasCredit || spread > spreadWarningMin

	return rp, nil
}

// applyQualityScores fills the 0-100 quality score once the cheapest
// fixed-rate annual cost is known.
func (s *Service) applyQualityScores(ranked []*domain.RankedPlan) {
	cheapestFixed := math.Inf(1)
	for _, rp := range ranked {
		if rp.Plan.RateType == domain.RateTypeFixed && rp.AnnualCost < cheapestFixed {
			cheapestFixed = rp.AnnualCost
		}
	}

	for _, rp := range ranked {
		bd := &rp.ScoreBreakdown

		if rp.Plan.RateType != domain.RateTypeFixed {
			bd.ZeroReasons = append(bd.ZeroReasons, "rate type is not fixed")
		}
		if rp.Plan.IsPrepaid {
			bd.ZeroReasons = append(bd.ZeroReasons, "prepaid plan")
		}
		if rp.Plan.IsTOU {
			bd.ZeroReasons = append(bd.ZeroReasons, "time-of-use plan")
		}
		if len(bd.ZeroReasons) > 0 {
			rp.QualityScore = 0
			continue
		}

		if !math.IsInf(cheapestFixed, 1) && cheapestFixed > 0 && rp.AnnualCost > cheapestFixed {
			pctAbove := (rp.AnnualCost - cheapestFixed) / cheapestFixed * 100
			bd.CostPenalty = math.Min(costPenaltyMax, pctAbove)
		}

		bd.VolatilityPenalty = math.Min(volatilityPenaltyMax, math.Round(rp.Volatility*25))

		countable := 0
		for _, w := range rp.Warnings {
			if w != "" {
				countable++
			}
		}
		// the synthetic non-fixed warning never reaches here: those plans
		// are already gated to zero
		bd.WarningPenalty = math.Min(warningPenaltyMax, warningPenaltyEach*float64(countable))

		if rp.Plan.BaseChargeMonthly > baseChargeFreeLimit {
			bd.BaseChargePenalty = math.Min(baseChargePenaltyMax, rp.Plan.BaseChargeMonthly-baseChargeFreeLimit)
		}

		switch rp.Expiration.RiskLevel {
		case domain.RiskHigh:
			bd.ExpirationPenalty = expirationPenaltyHi
		case domain.RiskMedium:
			bd.ExpirationPenalty = expirationPenaltyMed
		}

		score := 100 - bd.CostPenalty - bd.VolatilityPenalty - bd.WarningPenalty - bd.BaseChargePenalty - bd.ExpirationPenalty
		rp.QualityScore = math.Max(0, math.Min(100, score))
	}
}

// applyCombinedScores blends the cost rank into the quality gate. Plans
// below the acceptability gate always sort under acceptable ones no matter
// how cheap they are.
func (s *Service) applyCombinedScores(ranked []*domain.RankedPlan) {
	best, worst := math.Inf(1), math.Inf(-1)
	for _, rp := range ranked {
		best = math.Min(best, rp.AnnualCost)
		worst = math.Max(worst, rp.AnnualCost)
	}
	costRange := worst - best

	for _, rp := range ranked {
		costScore := 0.0
		if costRange > 0 {
			costScore = 100 - (rp.AnnualCost-best)/costRange*100
		}
		rp.CostScore = costScore

		switch {
		case rp.QualityScore < qualityGateMin:
			rp.CombinedScore = rp.QualityScore + subAcceptableOffset + costScore*subAcceptableCostCut
		case rp.QualityScore < qualityCautionMax:
			rp.CombinedScore = costScore*math.Max(1, rp.QualityScore)/100 - qualityCautionMalus
		default:
			rp.CombinedScore = costScore * math.Max(1, rp.QualityScore) / 100
		}
	}
}

// tieredSpread is the relative spread of the three published prices around
// the 1000 kWh anchor.
func tieredSpread(p *domain.Plan) float64 {
	if p.PriceKWh1000 <= 0 {
		return 0
	}
	lo := math.Min(p.PriceKWh500, math.Min(p.PriceKWh1000, p.PriceKWh2000))
	hi := math.Max(p.PriceKWh500, math.Max(p.PriceKWh1000, p.PriceKWh2000))
	return (hi - lo) / p.PriceKWh1000
}

func monthlyTotals(annual *domain.AnnualCost) []float64 {
	totals := make([]float64, 0, len(annual.Monthly))
	for _, mc := range annual.Monthly {
		totals = append(totals, mc.Total)
	}
	return totals
}
