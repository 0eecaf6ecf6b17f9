package engine

import "github.com/alexanderramin/caseload/internal/domain"

const (
	HighRiskThreshold   = 27.0
	MediumRiskThreshold = 14.0
)

// Classify maps a score to its risk band. Bands are closed at the lower
// bound: 27 is HIGH, 14 is MEDIUM.
func Classify(score float64) domain.RiskBand {
	switch {
	case score >= HighRiskThreshold:
		return domain.RiskHigh
	case score >= MediumRiskThreshold:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// BandCounts tallies scored cases per risk band. Every band is present.
func BandCounts(cases []ScoredCase) map[domain.RiskBand]int {
	counts := map[domain.RiskBand]int{
		domain.RiskHigh:   0,
		domain.RiskMedium: 0,
		domain.RiskLow:    0,
	}
	for _, c := range cases {
		counts[c.Band]++
	}
	return counts
}
