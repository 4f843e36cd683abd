package dedup

import (
	"strings"
	"unicode"

	"github.com/dcervantes/powerpick/internal/domain"
)

// Service collapses duplicate language variants of the same substantive
// offer.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

type group struct {
	plans     []*domain.Plan
	survivor  *domain.Plan
	bestScore int
}

// Deduplicate groups plans by fingerprint and keeps one representative per
// group. Input order is preserved in the output; rerunning on an already
// deduplicated list removes nothing.
func (s *Service) Deduplicate(plans []*domain.Plan) *domain.DeduplicationResult {
	groups := make(map[string]*group, len(plans))
	order := make([]string, 0, len(plans))

	for _, p := range plans {
		fp := Fingerprint(p)
		g, ok := groups[fp]
		if !ok {
			g = &group{}
			groups[fp] = g
			order = append(order, fp)
		}
		g.plans = append(g.plans, p)

		score := PreferenceScore(p)
		// strictly-greater keeps the earliest plan on ties, which keeps the
		// pass deterministic
		if g.survivor == nil || score > g.bestScore {
			g.survivor = p
			g.bestScore = score
		}
	}

	res := &domain.DeduplicationResult{
		Plans:         make([]*domain.Plan, 0, len(order)),
		OriginalCount: len(plans),
	}
	for _, fp := range order {
		g := groups[fp]
		res.Plans = append(res.Plans, g.survivor)

		langs := map[string]bool{}
		for _, p := range g.plans {
			langs[DetectLanguage(p)] = true
		}
		switch {
		case len(langs) > 1:
			res.LanguagePairCount++
		case langs["es"]:
			res.OrphanedSpanishCount++
		default:
			res.OrphanedEnglishCount++
		}
	}
	res.DuplicateCount = res.OriginalCount - len(res.Plans)

	return res
}

// DetectLanguage returns "en" or "es" for a plan, from the explicit tag
// when present and from diacritics otherwise. No signal at all defaults to
// English, the dominant listing language.
func DetectLanguage(p *domain.Plan) string {
	switch strings.ToLower(strings.TrimSpace(p.Language)) {
	case "english", "en":
		return "en"
	case "spanish", "español", "espanol", "es":
		return "es"
	}

	text := strings.ToLower(p.Name + " " + textOrEmpty(p.SpecialTerms))
	if strings.ContainsAny(text, "ñáéíóú") || strings.Contains(text, "ción") {
		return "es"
	}
	return "en"
}

// PreferenceScore ranks duplicate variants; the highest score survives.
// English listings with short clean names win over Spanish mirrors and
// decorated marketing names.
func PreferenceScore(p *domain.Plan) int {
	score := 100
	text := strings.ToLower(p.Name + " " + textOrEmpty(p.SpecialTerms))

	switch strings.ToLower(strings.TrimSpace(p.Language)) {
	case "english", "en":
		score += 50
	case "spanish", "español", "espanol", "es":
		score -= 50
	}

	if strings.Contains(text, "ñ") {
		score -= 20
	}
	for _, accent := range []string{"á", "é", "í", "ó", "ú"} {
		if strings.Contains(text, accent) {
			score -= 10
		}
	}
	if strings.Contains(text, "ción") {
		score -= 15
	}

	nameLen := len([]rune(p.Name))
	switch {
	case nameLen > 50:
		score -= 15
	case nameLen > 30:
		score -= 10
	case nameLen > 20:
		score -= 5
	}

	for _, r := range p.Name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' && r != '-' {
			score -= 2
		}
	}

	return score
}

func textOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
