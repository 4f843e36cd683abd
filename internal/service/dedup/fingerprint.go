package dedup

import (
	"fmt"
	"strings"

	"github.com/dcervantes/powerpick/internal/domain"
	"github.com/shopspring/decimal"
)

// legalSuffixes are stripped from the end of provider names so "Reliant
// Energy Retail Services LLC" and "Reliant Energy" canonicalize together.
var legalSuffixes = []string{
	"LLC", "L.L.C.", "LLP", "L.P.", "LP", "LTD", "INC", "INC.",
	"CORP", "CORP.", "CO", "CO.", "COMPANY", "RETAIL SERVICES",
}

// NormalizeProvider canonicalizes a REP name: uppercase, collapsed
// whitespace, punctuation dropped, trailing legal suffixes removed.
func NormalizeProvider(name string) string {
	up := strings.ToUpper(strings.TrimSpace(name))
	up = strings.NewReplacer(",", " ", ".", " ").Replace(up)
	up = strings.Join(strings.Fields(up), " ")

	for changed := true; changed; {
		changed = false
		for _, suf := range legalSuffixes {
			bare := strings.NewReplacer(",", " ", ".", " ").Replace(suf)
			bare = strings.Join(strings.Fields(bare), " ")
			if up != bare && strings.HasSuffix(up, " "+bare) {
				up = strings.TrimSpace(strings.TrimSuffix(up, " "+bare))
				changed = true
			}
		}
	}
	return up
}

// Fingerprint derives the canonical duplicate-detection key from the
// numeric and categorical plan fields. Free text, plan name and plan id are
// deliberately excluded: identical numeric fingerprints imply identical
// substantive terms regardless of marketing language.
func Fingerprint(p *domain.Plan) string {
	etfAmount := 0.0
	if p.EarlyTerminationFee != nil {
		etfAmount = *p.EarlyTerminationFee
	}

	return strings.Join([]string{
		"rep=" + NormalizeProvider(p.Provider),
		"tdu=" + strings.ToUpper(strings.TrimSpace(p.TDUArea)),
		"rate=" + string(p.RateType),
		"p500=" + roundTo(p.PriceKWh500, 3),
		"p1000=" + roundTo(p.PriceKWh1000, 3),
		"p2000=" + roundTo(p.PriceKWh2000, 3),
		fmt.Sprintf("term=%d", p.TermMonths),
		"etf=" + roundTo(etfAmount, 2),
		"base=" + roundTo(p.BaseChargeMonthly, 2),
		fmt.Sprintf("renew=%d", p.RenewablePct),
		fmt.Sprintf("prepaid=%t", p.IsPrepaid),
		fmt.Sprintf("tou=%t", p.IsTOU),
	}, "|")
}

func roundTo(v float64, places int32) string {
	return decimal.NewFromFloat(v).Round(places).StringFixed(places)
}
