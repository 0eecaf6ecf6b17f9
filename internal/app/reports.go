package app

import (
	"time"

	"github.com/alexanderramin/caseload/internal/domain"
)

// Report values are rounded to two decimals; headcount figures to one.

type TypeCount struct {
	CaseType string `json:"case_type"`
	Count    int    `json:"count"`
}

type OverviewResponse struct {
	GeneratedAt   time.Time               `json:"generated_at"`
	TotalCases    int                     `json:"total_cases"`
	AverageScore  float64                 `json:"average_score"`
	HighRiskCount int                     `json:"high_risk_count"`
	BandCounts    map[domain.RiskBand]int `json:"band_counts"`
	TypeCounts    []TypeCount             `json:"type_counts"`
	Top           []CaseScoreView         `json:"top"`
	Cases         []CaseScoreView         `json:"cases"`
}

type PMLoadView struct {
	Name       string  `json:"name"`
	CaseCount  int     `json:"case_count"`
	TotalScore float64 `json:"total_score"`
	AvgScore   float64 `json:"avg_score"`
}

type StaffLoadView struct {
	Name         string  `json:"name"`
	CaseCount    int     `json:"case_count"`
	WeightedLoad float64 `json:"weighted_load"`
}

type LoadResponse struct {
	GeneratedAt         time.Time       `json:"generated_at"`
	PMs                 []PMLoadView    `json:"pms"`
	Staff               []StaffLoadView `json:"staff"`
	MissingDistribution []string        `json:"missing_distribution"`
	Unassigned          []string        `json:"unassigned"`
}

type PMCaseView struct {
	CaseName string  `json:"case_name"`
	CaseType string  `json:"case_type"`
	Score    float64 `json:"complexity_score"`
}

type PMDetailResponse struct {
	PM    string       `json:"pm"`
	Cases []PMCaseView `json:"cases"`
	Load  PMLoadView   `json:"load"`
}

type StaffCaseView struct {
	CaseName     string  `json:"case_name"`
	CaseType     string  `json:"case_type"`
	Score        float64 `json:"complexity_score"`
	Percentage   float64 `json:"percentage"`
	WeightedLoad float64 `json:"weighted_load"`
}

type StaffDetailResponse struct {
	Staff string          `json:"staff"`
	Cases []StaffCaseView `json:"cases"`
	Load  StaffLoadView   `json:"load"`
}

type ROIRowView struct {
	Name       string            `json:"name"`
	CaseType   string            `json:"case_type"`
	Score      float64           `json:"complexity_score"`
	Price      float64           `json:"price"`
	Hours      float64           `json:"estimated_hours"`
	ROI        float64           `json:"roi"`
	Evaluation domain.Evaluation `json:"evaluation"`
}

type ROIResponse struct {
	GeneratedAt       time.Time    `json:"generated_at"`
	Rows              []ROIRowView `json:"rows"`
	AverageROI        float64      `json:"average_roi"`
	AveragePrice      float64      `json:"average_price"`
	AverageComplexity float64      `json:"average_complexity"`
	PricedCount       int          `json:"priced_count"`
	Underpriced       []string     `json:"underpriced"`
	Stars             []string     `json:"stars"`
	MissingPrice      []string     `json:"missing_price"`
}

type BudgetRowView struct {
	Name      string  `json:"name"`
	CaseType  string  `json:"case_type"`
	Score     float64 `json:"complexity_score"`
	Price     float64 `json:"price"`
	Hours     float64 `json:"estimated_hours"`
	UnitValue float64 `json:"unit_value"`
}

type RolePlanView struct {
	Role        domain.Role `json:"role"`
	Capacity    float64     `json:"capacity"`
	Current     int         `json:"current"`
	Required    float64     `json:"required"`
	Shortfall   float64     `json:"shortfall"`
	NeedsHiring bool        `json:"needs_hiring"`
}

type BudgetResponse struct {
	GeneratedAt       time.Time       `json:"generated_at"`
	Rows              []BudgetRowView `json:"rows"`
	TotalComplexity   float64         `json:"total_complexity"`
	PM                RolePlanView    `json:"pm"`
	Staff             RolePlanView    `json:"staff"`
	FallbackHeadcount bool            `json:"fallback_headcount"`
}
