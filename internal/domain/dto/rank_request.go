package dto

import (
	"time"

	"github.com/dcervantes/powerpick/internal/domain"
)

// RankRequest is the POST /plans/rank body. The usage profile can arrive as
// an explicit 12-month pattern, an average, or a home-size category; the
// TDU can arrive as a full record, an area code resolved against the loaded
// reference data, or a ZIP code.
type RankRequest struct {
	Plans []*domain.Plan `json:"plans" validate:"required,min=1,dive,required"`

	UsagePattern  []float64 `json:"usage_pattern,omitempty" validate:"omitempty,len=12,dive,gte=0"`
	AvgMonthlyKWh *float64  `json:"avg_monthly_kwh,omitempty" validate:"omitempty,gt=0"`
	HomeSize      string    `json:"home_size,omitempty"`

	TDU     *domain.TDURate `json:"tdu,omitempty"`
	TDUArea string          `json:"tdu_area,omitempty"`
	Zip     string          `json:"zip,omitempty" validate:"omitempty,len=5,numeric"`

	TaxRate       *float64 `json:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
	ContractStart string   `json:"contract_start,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ParsedContractStart returns the contract start or the zero time when the
// field was omitted.
func (r *RankRequest) ParsedContractStart() time.Time {
	if r.ContractStart == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", r.ContractStart)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DedupeRequest is the POST /plans/dedupe body.
type DedupeRequest struct {
	Plans []*domain.Plan `json:"plans" validate:"required,min=1,dive,required"`
}
