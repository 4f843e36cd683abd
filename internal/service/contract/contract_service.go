package contract

import (
	"sort"
	"time"

	"github.com/dcervantes/powerpick/internal/domain"
)

// renewalSeasonality scores each calendar month as a contract-expiration
// target, 0 best to 1 worst. Index 0 is January. Texas renewal pricing is
// worst in the summer cooling peak and during peak winter; the April and
// October shoulder months are the cheapest shopping windows.
var renewalSeasonality = [12]float64{
	0.90, // Jan, peak winter demand
	0.70, // Feb
	0.30, // Mar
	0.00, // Apr, optimal
	0.50, // May
	0.80, // Jun
	1.00, // Jul, worst
	1.00, // Aug, worst
	0.70, // Sep
	0.00, // Oct, optimal
	0.20, // Nov
	0.60, // Dec
}

// alternativeTermCandidates are the contract lengths providers commonly
// offer.
var alternativeTermCandidates = []int{3, 6, 9, 12, 15, 18, 24, 36}

const (
	riskHighThreshold   = 0.8
	riskMediumThreshold = 0.5
	riskLowThreshold    = 0.2

	// a candidate term must improve seasonality by at least this fraction
	// to be worth suggesting
	minRelativeImprovement = 0.3
	nearZeroScore          = 0.05
	maxAlternatives        = 3
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// SeasonalityScore returns the renewal risk for a month (1 = January).
func (s *Service) SeasonalityScore(month time.Month) float64 {
	return renewalSeasonality[int(month)-1]
}

// RiskLevel buckets a seasonality score.
func (s *Service) RiskLevel(score float64) domain.RiskLevel {
	switch {
	case score >= riskHighThreshold:
		return domain.RiskHigh
	case score >= riskMediumThreshold:
		return domain.RiskMedium
	case score >= riskLowThreshold:
		return domain.RiskLow
	default:
		return domain.RiskOptimal
	}
}

// CalculateContractExpiration computes when a contract signed at start
// expires and how risky that renewal month is. A zero start defaults to
// now; a non-positive term defaults to 12 months.
func (s *Service) CalculateContractExpiration(start time.Time, termMonths int, now time.Time) domain.ExpirationResult {
	if start.IsZero() {
		start = now
	}
	if termMonths <= 0 {
		termMonths = 12
	}

	expiration := start.AddDate(0, termMonths, 0)
	score := s.SeasonalityScore(expiration.Month())

	return domain.ExpirationResult{
		ExpirationDate:   expiration,
		ExpirationMonth:  int(expiration.Month()),
		SeasonalityScore: score,
		RiskLevel:        s.RiskLevel(score),
		AlternativeTerms: s.alternativeTerms(start, termMonths, score),
	}
}

// alternativeTerms suggests up to three contract lengths whose expiration
// month is meaningfully better than the current one.
func (s *Service) alternativeTerms(start time.Time, currentTerm int, currentScore float64) []domain.AlternativeTerm {
	alts := make([]domain.AlternativeTerm, 0, len(alternativeTermCandidates))

	for _, term := range alternativeTermCandidates {
		if term == currentTerm {
			continue
		}
		exp := start.AddDate(0, term, 0)
		score := s.SeasonalityScore(exp.Month())

		improved := currentScore > 0 && (currentScore-score)/currentScore >= minRelativeImprovement
		nearZero := score < nearZeroScore && currentScore >= riskLowThreshold
		if !improved && !nearZero {
			continue
		}

		alts = append(alts, domain.AlternativeTerm{
			TermMonths:       term,
			ExpirationMonth:  int(exp.Month()),
			SeasonalityScore: score,
			RiskLevel:        s.RiskLevel(score),
		})
	}

	sort.SliceStable(alts, func(i, j int) bool {
		if alts[i].SeasonalityScore != alts[j].SeasonalityScore {
			return alts[i].SeasonalityScore < alts[j].SeasonalityScore
		}
		return alts[i].TermMonths < alts[j].TermMonths
	})

	if len(alts) > maxAlternatives {
		alts = alts[:maxAlternatives]
	}
	return alts
}
