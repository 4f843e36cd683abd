package domain

// RateType is the pricing structure of a retail plan.
type RateType string

const (
	RateTypeFixed    RateType = "FIXED"
	RateTypeVariable RateType = "VARIABLE"
	RateTypeIndexed  RateType = "INDEXED"
)

// ETFStructure describes how an early termination fee is computed.
type ETFStructure string

const (
	ETFStructureFlat     ETFStructure = "flat"
	ETFStructurePerMonth ETFStructure = "per-month"
	ETFStructureUnknown  ETFStructure = "unknown"
	ETFStructureNone     ETFStructure = "none"
	// ETFStructureNoneConditional is a waived fee that still applies unless a
	// condition is met, typically relocation out of the service area.
	ETFStructureNoneConditional ETFStructure = "none-conditional"
)

// ETFSource records where structured fee information came from.
type ETFSource string

const (
	ETFSourceEFL         ETFSource = "efl"
	ETFSourceTextParsing ETFSource = "text-parsing"
	ETFSourceLegacy      ETFSource = "legacy"
)

// ETFDetails is structured fee information extracted upstream from the EFL.
type ETFDetails struct {
	Structure  ETFStructure `json:"structure"`
	BaseAmount *float64     `json:"base_amount,omitempty"`
	Source     ETFSource    `json:"source"`
}

// Plan is a single retail electricity offer as published on Power to Choose.
// The engine never mutates a Plan; computed fields live on RankedPlan.
type Plan struct {
	ID       string `json:"plan_id" validate:"required"`
	Name     string `json:"plan_name" validate:"required"`
	Provider string `json:"rep_name" validate:"required"`
	TDUArea  string `json:"tdu_area" validate:"required"`

	RateType   RateType `json:"rate_type" validate:"required,oneof=FIXED VARIABLE INDEXED"`
	TermMonths int      `json:"term_months" validate:"gte=0"`

	// Published prices in cents per kWh at the three mandated usage levels.
	PriceKWh500  float64 `json:"price_kwh_500" validate:"gte=0"`
	PriceKWh1000 float64 `json:"price_kwh_1000" validate:"gte=0"`
	PriceKWh2000 float64 `json:"price_kwh_2000" validate:"gte=0"`

	BaseChargeMonthly   float64     `json:"base_charge_monthly" validate:"gte=0"`
	EarlyTerminationFee *float64    `json:"early_termination_fee,omitempty"`
	ETFDetails          *ETFDetails `json:"etf_details,omitempty"`

	RenewablePct int  `json:"renewable_pct" validate:"gte=0,lte=100"`
	IsPrepaid    bool `json:"is_prepaid"`
	IsTOU        bool `json:"is_tou"`

	SpecialTerms     *string `json:"special_terms,omitempty"`
	PromotionDetails *string `json:"promotion_details,omitempty"`
	FeesCredits      *string `json:"fees_credits,omitempty"`
	MinUsageFees     *string `json:"min_usage_fees,omitempty"`

	Language string `json:"language"`

	EFLURL        *string `json:"efl_url,omitempty"`
	EnrollmentURL *string `json:"enrollment_url,omitempty"`
	TermsURL      *string `json:"terms_url,omitempty"`
}

// FreeText concatenates the nullable text fields for the pattern rules.
func (p *Plan) FreeText() string {
	out := ""
	for _, s := range []*string{p.SpecialTerms, p.PromotionDetails, p.FeesCredits, p.MinUsageFees} {
		if s == nil || *s == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += *s
	}
	return out
}

// ZipRange is an inclusive [min, max] ZIP code span.
type ZipRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// TDURate is the regulated delivery tariff for a service area.
type TDURate struct {
	Code              string     `json:"code" validate:"required"`
	Name              string     `json:"name" validate:"required"`
	MonthlyBaseCharge float64    `json:"monthly_base_charge" validate:"gte=0"`
	PerKWhRate        float64    `json:"per_kwh_rate" validate:"gte=0"`
	EffectiveDate     string     `json:"effective_date"`
	ZipCodes          []ZipRange `json:"zip_codes,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

// TaxInfo is the local sales tax applicable to a ZIP code.
type TaxInfo struct {
	Rate        float64 `json:"rate" validate:"gte=0,lte=1"`
	Region      string  `json:"region,omitempty"`
	TDU         *string `json:"tdu,omitempty"`
	Deregulated bool    `json:"deregulated"`
	Note        *string `json:"note,omitempty"`
}

// PlansData is the plans.json file structure produced by the fetcher.
type PlansData struct {
	LastUpdated string  `json:"last_updated"`
	DataSource  string  `json:"data_source"`
	TotalPlans  int     `json:"total_plans"`
	Disclaimer  string  `json:"disclaimer,omitempty"`
	Plans       []*Plan `json:"plans"`
}

// TDURatesData is the tdu-rates.json file structure.
type TDURatesData struct {
	TDUs        []*TDURate `json:"tdus"`
	LastUpdated string     `json:"last_updated"`
	NextUpdate  string     `json:"next_update"`
}

// LocalTaxesData is the local-taxes.json file structure. City entries carry
// explicit ZIP lists; range entries cover "750xx"-style prefixes.
type LocalTaxesData struct {
	MajorCities      map[string]*CityTax  `json:"major_cities"`
	ZipCodeRanges    map[string]*RangeTax `json:"zip_code_ranges"`
	DefaultLocalRate float64              `json:"default_local_rate"`
}

type CityTax struct {
	Rate        float64  `json:"rate"`
	TDU         *string  `json:"tdu,omitempty"`
	Deregulated bool     `json:"deregulated"`
	Note        *string  `json:"note,omitempty"`
	ZipCodes    []string `json:"zip_codes,omitempty"`
}

type RangeTax struct {
	Rate   float64 `json:"rate"`
	Region string  `json:"region"`
	TDU    *string `json:"tdu,omitempty"`
	Note   *string `json:"note,omitempty"`
}

// ErrorResponse is the api error body.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
