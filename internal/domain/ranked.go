package domain

import "time"

// ETFResult is the resolved early termination fee for a remaining term.
type ETFResult struct {
	Total           float64      `json:"total"`
	Structure       ETFStructure `json:"structure"`
	PerMonthRate    float64      `json:"per_month_rate,omitempty"`
	MonthsRemaining int          `json:"months_remaining"`
}

// ETFDisplayInfo adds the presentation hints the UI collaborator needs.
// NeedsConfirmation asks the user to verify the fee against the EFL; the
// engine only raises the flag, it never renders the prompt.
type ETFDisplayInfo struct {
	ETFResult
	Label             string `json:"label"`
	NeedsConfirmation bool   `json:"needs_confirmation"`
}

// RiskLevel buckets a seasonality score.
type RiskLevel string

const (
	RiskOptimal RiskLevel = "optimal"
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
)

// AlternativeTerm is a contract length with a better renewal season.
type AlternativeTerm struct {
	TermMonths       int       `json:"term_months"`
	ExpirationMonth  int       `json:"expiration_month"`
	SeasonalityScore float64   `json:"seasonality_score"`
	RiskLevel        RiskLevel `json:"risk_level"`
}

// ExpirationResult describes when a contract ends and how bad that timing is.
type ExpirationResult struct {
	ExpirationDate   time.Time         `json:"expiration_date"`
	ExpirationMonth  int               `json:"expiration_month"` // 1 = January
	SeasonalityScore float64           `json:"seasonality_score"`
	RiskLevel        RiskLevel         `json:"risk_level"`
	AlternativeTerms []AlternativeTerm `json:"alternative_terms"`
}

// MonthlyCost is the cost breakdown for a single month. TDUCost is shown for
// transparency only; plan prices already embed delivery, so it is never part
// of Total.
type MonthlyCost struct {
	Usage         float64 `json:"usage"`
	Rate          float64 `json:"rate"`
	EnergyCost    float64 `json:"energy_cost"`
	TDUCost       float64 `json:"tdu_cost"`
	BaseCharge    float64 `json:"base_charge"`
	Credits       float64 `json:"credits"`
	Total         float64 `json:"total"`
	EffectiveRate float64 `json:"effective_rate"`
}

// AnnualCost aggregates twelve MonthlyCost entries.
type AnnualCost struct {
	Total          float64       `json:"total"`
	AverageMonthly float64       `json:"average_monthly"`
	TotalUsage     float64       `json:"total_usage"`
	EffectiveRate  float64       `json:"effective_rate"`
	Monthly        []MonthlyCost `json:"monthly"`
}

// ScoreBreakdown itemizes the quality score deductions.
type ScoreBreakdown struct {
	CostPenalty       float64  `json:"cost_penalty"`
	VolatilityPenalty float64  `json:"volatility_penalty"`
	WarningPenalty    float64  `json:"warning_penalty"`
	BaseChargePenalty float64  `json:"base_charge_penalty"`
	ExpirationPenalty float64  `json:"expiration_penalty"`
	ZeroReasons       []string `json:"zero_reasons,omitempty"`
}

// RankedPlan is a Plan plus every computed field, built fresh per ranking
// call and never persisted.
type RankedPlan struct {
	Plan *Plan `json:"plan"`

	AnnualCost         float64   `json:"annual_cost"`
	AverageMonthlyCost float64   `json:"average_monthly_cost"`
	EffectiveRate      float64   `json:"effective_rate"`
	MonthlyCosts       []float64 `json:"monthly_costs"`

	Volatility float64  `json:"volatility"`
	Warnings   []string `json:"warnings"`
	IsGimmick  bool     `json:"is_gimmick"`

	QualityScore   float64        `json:"quality_score"`
	CostScore      float64        `json:"cost_score"`
	CombinedScore  float64        `json:"combined_score"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`

	ETF        ETFDisplayInfo    `json:"etf"`
	Expiration *ExpirationResult `json:"expiration,omitempty"`
}

// DeduplicationResult summarizes a dedup pass.
type DeduplicationResult struct {
	Plans                []*Plan `json:"plans"`
	OriginalCount        int     `json:"original_count"`
	DuplicateCount       int     `json:"duplicate_count"`
	OrphanedEnglishCount int     `json:"orphaned_english_count"`
	OrphanedSpanishCount int     `json:"orphaned_spanish_count"`
	LanguagePairCount    int     `json:"language_pair_count"`
}
