package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/alexanderramin/caseload/internal/app"
	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/engine"
	"github.com/alexanderramin/caseload/internal/repository"
)

func round2(v float64) float64 { return engine.Round(v, 2) }

// scoreStored loads cases through the filter and returns them ranked.
func scoreStored(ctx context.Context, cases repository.CaseRepo, f repository.CaseFilter) ([]engine.ScoredCase, error) {
	stored, err := cases.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("loading cases: %w", err)
	}
	plain := make([]domain.Case, len(stored))
	for i, c := range stored {
		plain[i] = *c
	}
	return engine.ScoreCases(plain), nil
}

func caseScoreView(rank int, sc engine.ScoredCase) app.CaseScoreView {
	a := sc.Case.Attributes
	return app.CaseScoreView{
		Rank:              rank,
		Name:              sc.Case.Name,
		CaseType:          sc.Case.CaseType,
		Score:             round2(sc.Total()),
		Band:              sc.Band,
		EntityCount:       a.EntityCount,
		EffectiveSystems:  a.EffectiveSystemCount(),
		AdjustedResources: a.AdjustedResourceTotal(),
	}
}

func rankedViews(scored []engine.ScoredCase) []app.CaseScoreView {
	views := make([]app.CaseScoreView, len(scored))
	for i, sc := range scored {
		views[i] = caseScoreView(i+1, sc)
	}
	return views
}

func termViews(s engine.Score) []app.ScoreTermView {
	out := make([]app.ScoreTermView, len(s.Terms))
	for i, t := range s.Terms {
		out[i] = app.ScoreTermView{Code: string(t.Code), Points: round2(t.Points), Detail: t.Detail}
	}
	return out
}

func pmLoadView(l engine.PMLoad) app.PMLoadView {
	return app.PMLoadView{
		Name:       l.Name,
		CaseCount:  l.CaseCount,
		TotalScore: round2(l.TotalScore),
		AvgScore:   round2(l.AvgScore),
	}
}

func staffLoadView(l engine.StaffLoad) app.StaffLoadView {
	return app.StaffLoadView{
		Name:         l.Name,
		CaseCount:    l.CaseCount,
		WeightedLoad: round2(l.WeightedLoad),
	}
}

func rolePlanView(p engine.RolePlan) app.RolePlanView {
	return app.RolePlanView{
		Role:        p.Role,
		Capacity:    p.Capacity,
		Current:     p.Current,
		Required:    p.Required,
		Shortfall:   p.Shortfall,
		NeedsHiring: p.NeedsHiring(),
	}
}

// typeCounts orders by count descending, then type name.
func typeCounts(counts map[string]int) []app.TypeCount {
	out := make([]app.TypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, app.TypeCount{CaseType: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].CaseType < out[j].CaseType
	})
	return out
}

func caseNames(scored []engine.ScoredCase) []string {
	names := make([]string, len(scored))
	for i, sc := range scored {
		names[i] = sc.Case.Name
	}
	return names
}

// pricedCases joins quotes onto scored cases; unquoted cases get price 0.
func pricedCases(scored []engine.ScoredCase, quotes []domain.PriceQuote) []engine.PricedCase {
	byName := make(map[string]domain.PriceQuote, len(quotes))
	for _, q := range quotes {
		byName[q.CaseName] = q
	}
	out := make([]engine.PricedCase, len(scored))
	for i, sc := range scored {
		q := byName[sc.Case.Name]
		out[i] = engine.PricedCase{
			Name:           sc.Case.Name,
			CaseType:       sc.Case.CaseType,
			Score:          sc.Total(),
			Price:          q.Price,
			EstimatedHours: q.EstimatedHours,
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
