package loader

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/dcervantes/powerpick/internal/domain"
)

// tduNameMapping normalizes the many ways TDU company names appear in
// exports down to the service-area codes the reference tables use.
var tduNameMapping = map[string]string{
	"CENTERPOINT":                             "CENTERPOINT",
	"CENTERPOINT ENERGY":                      "CENTERPOINT",
	"CENTERPOINT ENERGY HOUSTON":              "CENTERPOINT",
	"CENTERPOINT ENERGY HOUSTON ELECTRIC":     "CENTERPOINT",
	"CENTERPOINT ENERGY HOUSTON ELECTRIC LLC": "CENTERPOINT",
	"ONCOR":                                   "ONCOR",
	"ONCOR ELECTRIC":                          "ONCOR",
	"ONCOR ELECTRIC DELIVERY":                 "ONCOR",
	"ONCOR ELECTRIC DELIVERY COMPANY":         "ONCOR",
	"AEP TEXAS CENTRAL":                       "AEP_CENTRAL",
	"AEP TEXAS CENTRAL COMPANY":               "AEP_CENTRAL",
	"AEP CENTRAL":                             "AEP_CENTRAL",
	"AEP TEXAS NORTH":                         "AEP_NORTH",
	"AEP TEXAS NORTH COMPANY":                 "AEP_NORTH",
	"AEP NORTH":                               "AEP_NORTH",
	"TEXAS-NEW MEXICO POWER":                  "TNMP",
	"TEXAS-NEW MEXICO POWER COMPANY":          "TNMP",
	"TNMP":                                    "TNMP",
	"LUBBOCK POWER":                           "LPL",
	"LUBBOCK POWER & LIGHT":                   "LPL",
	"LPL":                                     "LPL",
}

// NormalizeTDUName maps a raw TDU company name to its area code. Unmapped
// names pass through uppercased so they stay visible downstream.
func NormalizeTDUName(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "UNKNOWN"
	}
	up := strings.ToUpper(strings.TrimSpace(raw))
	if code, ok := tduNameMapping[up]; ok {
		return code
	}
	for name, code := range tduNameMapping {
		if strings.Contains(up, name) {
			return code
		}
	}
	return up
}

// ParseCSVPlans parses a Power to Choose CSV export. Columns appear under
// several historical names, sometimes bracketed like [TduCompanyName]; rows
// without usable pricing or identity are skipped, not fatal.
func ParseCSVPlans(text string) ([]*domain.Plan, error) {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv.ReadAll: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("no data rows in CSV")
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, col := range header {
		key := strings.ToUpper(strings.Trim(strings.TrimSpace(col), "[]"))
		index[key] = i
	}

	getVal := func(row []string, names ...string) string {
		for _, n := range names {
			if i, ok := index[strings.ToUpper(n)]; ok && i < len(row) {
				if v := strings.TrimSpace(row[i]); v != "" {
					return v
				}
			}
		}
		return ""
	}

	plans := make([]*domain.Plan, 0, len(records)-1)
	for _, row := range records[1:] {
		p := &domain.Plan{
			ID:       getVal(row, "idKey", "ID Plan", "Plan ID", "plan_id"),
			Provider: getVal(row, "RepCompany", "REP Name", "rep_name"),
			Name:     getVal(row, "Product", "Plan Name", "plan_name"),
			TDUArea:  NormalizeTDUName(getVal(row, "TduCompanyName", "TduCompany", "TDU", "TDU Area", "tdu_area")),
			Language: getVal(row, "Language", "Lang"),
		}
		if p.Language == "" {
			p.Language = "English"
		}

		p.PriceKWh500 = parsePrice(getVal(row, "kwh500", "Price/kWh 500", "Price500", "price_kwh_500"))
		p.PriceKWh1000 = parsePrice(getVal(row, "kwh1000", "Price/kWh 1000", "Price1000", "price_kwh_1000"))
		p.PriceKWh2000 = parsePrice(getVal(row, "kwh2000", "Price/kWh 2000", "Price2000", "price_kwh_2000"))

		p.TermMonths = parseInt(getVal(row, "TermValue", "Term Value", "Term", "term_months"))
		p.RateType = domain.RateType(strings.ToUpper(firstNonEmpty(getVal(row, "RateType", "Rate Type", "rate_type"), "FIXED")))
		p.RenewablePct = parseInt(getVal(row, "Renewable", "Renewable Perc", "renewable_pct"))
		p.IsPrepaid = parseBool(getVal(row, "PrePaid", "Prepaid", "is_prepaid"))
		p.IsTOU = parseBool(getVal(row, "TimeOfUse", "Time Of Use", "is_tou"))
		p.BaseChargeMonthly = parseFloat(getVal(row, "base_charge_monthly"))

		cancelFee := getVal(row, "CancelFee", "Cancellation Fee", "ETF", "early_termination_fee")
		if cancelFee == "" {
			// older exports only disclose the fee inside Pricing Details
			if details := getVal(row, "Pricing Details"); details != "" {
				cancelFee = extractCancellationFee(details)
			}
		}
		if fee := parseFloat(cancelFee); fee > 0 {
			p.EarlyTerminationFee = &fee
		}

		setOptional(&p.SpecialTerms, getVal(row, "SpecialTerms", "Plan Details", "Special Terms", "special_terms"))
		setOptional(&p.PromotionDetails, getVal(row, "PromotionDesc", "Promotion", "Promotions", "promotion_details"))
		setOptional(&p.FeesCredits, getVal(row, "Fees/Credits", "fees_credits"))
		setOptional(&p.MinUsageFees, getVal(row, "MinUsageFeesCredits", "Min Usage Fees/Credits", "min_usage_fees"))
		setOptional(&p.EFLURL, sanitizeURL(getVal(row, "FactsURL", "Fact Sheet", "EFL URL", "efl_url")))
		setOptional(&p.EnrollmentURL, sanitizeURL(getVal(row, "EnrollURL", "Ordering Info", "Enrollment URL", "enrollment_url")))
		setOptional(&p.TermsURL, sanitizeURL(getVal(row, "TermsURL", "Terms of Service", "TOS URL", "terms_url")))

		if !validPlan(p) {
			continue
		}
		backfillPrices(p)
		plans = append(plans, p)
	}

	return plans, nil
}

// ParseJSONPlans parses the JSON API response shape.
func ParseJSONPlans(payload []byte) ([]*domain.Plan, error) {
	var data domain.PlansData
	if err := sonic.Unmarshal(payload, &data); err != nil {
		// the API sometimes returns a bare array
		var bare []*domain.Plan
		if arrErr := sonic.Unmarshal(payload, &bare); arrErr != nil {
			return nil, fmt.Errorf("sonic.Unmarshal: %w", err)
		}
		data.Plans = bare
	}

	plans := make([]*domain.Plan, 0, len(data.Plans))
	for _, p := range data.Plans {
		if p == nil || !validPlan(p) {
			continue
		}
		p.TDUArea = NormalizeTDUName(p.TDUArea)
		if p.Language == "" {
			p.Language = "English"
		}
		backfillPrices(p)
		plans = append(plans, p)
	}
	return plans, nil
}

// validPlan keeps only rows with usable pricing and identity.
func validPlan(p *domain.Plan) bool {
	return p.PriceKWh1000 > 0 && p.Provider != "" && p.Name != ""
}

// backfillPrices fills missing 500/2000 price points from the 1000 anchor.
func backfillPrices(p *domain.Plan) {
	if p.PriceKWh500 <= 0 {
		p.PriceKWh500 = p.PriceKWh1000
	}
	if p.PriceKWh2000 <= 0 {
		p.PriceKWh2000 = p.PriceKWh1000
	}
}

// parsePrice handles both ¢/kWh and $/kWh formats: exports publish rates
// like 0.1600 meaning 16 cents.
func parsePrice(raw string) float64 {
	v := parseFloat(raw)
	if v > 0 && v < 1 {
		return v * 100
	}
	return v
}

func extractCancellationFee(details string) string {
	const marker = "Cancellation Fee:"
	i := strings.Index(details, marker)
	if i < 0 {
		return ""
	}
	rest := strings.TrimSpace(details[i+len(marker):])
	rest = strings.TrimPrefix(rest, "$")
	end := 0
	for end < len(rest) && (rest[end] >= '0' && rest[end] <= '9' || rest[end] == '.') {
		end++
	}
	return rest[:end]
}

func parseFloat(raw string) float64 {
	cleaned := strings.NewReplacer("$", "", "¢", "", ",", "", "%", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(raw string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if fields := strings.Fields(cleaned); len(fields) > 0 {
		cleaned = fields[0] // "12 months" style values
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int(v)
}

func parseBool(raw string) bool {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "TRUE", "YES", "1":
		return true
	}
	return false
}

func sanitizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" || strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	if strings.HasPrefix(url, "/") {
		return "https://www.powertochoose.org" + url
	}
	return url
}

func setOptional(dst **string, val string) {
	if val == "" {
		return
	}
	*dst = &val
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
