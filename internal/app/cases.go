package app

import "github.com/alexanderramin/caseload/internal/domain"

// CaseScoreView is one row of the ranked case table.
type CaseScoreView struct {
	Rank              int             `json:"rank"`
	Name              string          `json:"name"`
	CaseType          string          `json:"case_type"`
	Score             float64         `json:"complexity_score"`
	Band              domain.RiskBand `json:"risk_band"`
	EntityCount       float64         `json:"entity_count"`
	EffectiveSystems  float64         `json:"effective_system_count"`
	AdjustedResources float64         `json:"adjusted_resource_total"`
}

// ScoreTermView is one contributing line of a score breakdown.
type ScoreTermView struct {
	Code   string  `json:"code"`
	Points float64 `json:"points"`
	Detail string  `json:"detail"`
}

type CaseDetail struct {
	Case  domain.Case     `json:"-"`
	Rank  int             `json:"rank"`
	Score float64         `json:"complexity_score"`
	Band  domain.RiskBand `json:"risk_band"`
	Terms []ScoreTermView `json:"terms"`

	Assignment *domain.Assignment     `json:"-"`
	Shares     []domain.WorkloadShare `json:"-"`
	Quote      *domain.PriceQuote     `json:"-"`
}

// CaseListRequest filters case listings. Empty fields match everything.
type CaseListRequest struct {
	CaseType   string
	NamePrefix string
	Limit      int
}
