package archive

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dcervantes/powerpick/internal/domain"
)

// csvColumns is the archive schema. Order is stable so diffs between daily
// snapshots stay readable.
var csvColumns = []string{
	"plan_id", "plan_name", "rep_name", "tdu_area", "rate_type", "term_months",
	"price_kwh_500", "price_kwh_1000", "price_kwh_2000", "base_charge_monthly",
	"early_termination_fee", "renewable_pct", "is_prepaid", "is_tou",
	"special_terms", "promotion_details", "fees_credits", "min_usage_fees",
	"language", "efl_url", "enrollment_url", "terms_url",
}

// WriteSnapshot writes plans to <dir>/plans_<date>.csv and returns the
// path. A zero timestamp means today.
func WriteSnapshot(plans []*domain.Plan, dir string, ts time.Time) (string, error) {
	if len(plans) == 0 {
		return "", fmt.Errorf("no plans to archive")
	}
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s): %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("plans_%s.csv", ts.Format("2006-01-02")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s): %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return "", fmt.Errorf("csv.Write header: %w", err)
	}
	for _, p := range plans {
		if err := w.Write(planRow(p)); err != nil {
			return "", fmt.Errorf("csv.Write plan %s: %w", p.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("csv.Flush: %w", err)
	}

	return path, nil
}

func planRow(p *domain.Plan) []string {
	etfVal := ""
	if p.EarlyTerminationFee != nil {
		etfVal = strconv.FormatFloat(*p.EarlyTerminationFee, 'f', -1, 64)
	}
	return []string{
		p.ID,
		p.Name,
		p.Provider,
		p.TDUArea,
		string(p.RateType),
		strconv.Itoa(p.TermMonths),
		strconv.FormatFloat(p.PriceKWh500, 'f', -1, 64),
		strconv.FormatFloat(p.PriceKWh1000, 'f', -1, 64),
		strconv.FormatFloat(p.PriceKWh2000, 'f', -1, 64),
		strconv.FormatFloat(p.BaseChargeMonthly, 'f', -1, 64),
		etfVal,
		strconv.Itoa(p.RenewablePct),
		strconv.FormatBool(p.IsPrepaid),
		strconv.FormatBool(p.IsTOU),
		deref(p.SpecialTerms),
		deref(p.PromotionDetails),
		deref(p.FeesCredits),
		deref(p.MinUsageFees),
		p.Language,
		deref(p.EFLURL),
		deref(p.EnrollmentURL),
		deref(p.TermsURL),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
