package httpapi

import (
	"github.com/alexanderramin/caseload/internal/app"
	"github.com/alexanderramin/caseload/internal/domain"
)

type shareJSON struct {
	Staff      string  `json:"staff"`
	Percentage float64 `json:"percentage"`
}

type caseDetailBody struct {
	Name           string              `json:"name"`
	CaseType       string              `json:"case_type"`
	SourceFile     string              `json:"source_file,omitempty"`
	Rank           int                 `json:"rank"`
	Score          float64             `json:"complexity_score"`
	Band           domain.RiskBand     `json:"risk_band"`
	Terms          []app.ScoreTermView `json:"terms"`
	PMs            []string            `json:"pms"`
	Staff          []string            `json:"staff"`
	Shares         []shareJSON         `json:"shares"`
	Price          *float64            `json:"price,omitempty"`
	EstimatedHours *float64            `json:"estimated_hours,omitempty"`
}

func caseDetailJSON(d *app.CaseDetail) caseDetailBody {
	body := caseDetailBody{
		Name:       d.Case.Name,
		CaseType:   d.Case.CaseType,
		SourceFile: d.Case.SourceFile,
		Rank:       d.Rank,
		Score:      d.Score,
		Band:       d.Band,
		Terms:      d.Terms,
		PMs:        []string{},
		Staff:      []string{},
		Shares:     make([]shareJSON, 0, len(d.Shares)),
	}
	if body.Terms == nil {
		body.Terms = []app.ScoreTermView{}
	}
	if d.Assignment != nil {
		body.PMs = append(body.PMs, d.Assignment.PMs...)
		body.Staff = append(body.Staff, d.Assignment.Staff...)
	}
	for _, sh := range d.Shares {
		body.Shares = append(body.Shares, shareJSON{Staff: sh.StaffName, Percentage: sh.Percentage})
	}
	if d.Quote != nil {
		price, hours := d.Quote.Price, d.Quote.EstimatedHours
		body.Price = &price
		body.EstimatedHours = &hours
	}
	return body
}
