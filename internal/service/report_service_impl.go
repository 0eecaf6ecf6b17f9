package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/caseload/internal/app"
	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/engine"
	"github.com/alexanderramin/caseload/internal/repository"
)

// topCaseCount is how many cases the overview lists as highest scoring.
const topCaseCount = 10

// ReportSettings carries the planning assumptions used by Budget.
type ReportSettings struct {
	Capacity      engine.Capacity
	FallbackPM    int
	FallbackStaff int
}

type reportService struct {
	cases       repository.CaseRepo
	assignments repository.AssignmentRepo
	shares      repository.ShareRepo
	quotes      repository.QuoteRepo
	roster      repository.RosterRepo
	settings    ReportSettings
	observer    UseCaseObserver
	now         func() time.Time
}

func NewReportService(
	cases repository.CaseRepo,
	assignments repository.AssignmentRepo,
	shares repository.ShareRepo,
	quotes repository.QuoteRepo,
	roster repository.RosterRepo,
	settings ReportSettings,
	observers ...UseCaseObserver,
) ReportService {
	return &reportService{
		cases:       cases,
		assignments: assignments,
		shares:      shares,
		quotes:      quotes,
		roster:      roster,
		settings:    settings,
		observer:    useCaseObserverOrNoop(observers),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *reportService) Overview(ctx context.Context) (resp *app.OverviewResponse, err error) {
	fields := map[string]any{"read_only": true}
	defer observe(ctx, s.observer, "report-overview", fields, &err)()

	scored, err := scoreStored(ctx, s.cases, repository.CaseFilter{})
	if err != nil {
		return nil, err
	}
	fields["cases"] = len(scored)
	counts, err := s.cases.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	bands := engine.BandCounts(scored)
	views := rankedViews(scored)
	top := views
	if len(top) > topCaseCount {
		top = top[:topCaseCount]
	}
	return &app.OverviewResponse{
		GeneratedAt:   s.now(),
		TotalCases:    len(scored),
		AverageScore:  round2(engine.AverageComplexity(scored)),
		HighRiskCount: bands[domain.RiskHigh],
		BandCounts:    bands,
		TypeCounts:    typeCounts(counts),
		Top:           top,
		Cases:         views,
	}, nil
}

func (s *reportService) Load(ctx context.Context) (resp *app.LoadResponse, err error) {
	fields := map[string]any{"read_only": true}
	defer observe(ctx, s.observer, "report-load", fields, &err)()

	scored, assignments, shares, err := s.allocationInputs(ctx)
	if err != nil {
		return nil, err
	}

	pmLoads := engine.PMLoads(scored, assignments)
	engine.SortPMLoads(pmLoads)
	staffLoads := engine.StaffLoads(scored, shares)
	engine.SortStaffLoads(staffLoads)

	resp = &app.LoadResponse{
		GeneratedAt:         s.now(),
		PMs:                 make([]app.PMLoadView, len(pmLoads)),
		Staff:               make([]app.StaffLoadView, len(staffLoads)),
		MissingDistribution: nonNil(engine.IncompleteDistributions(caseNames(scored), assignments, shares)),
		Unassigned:          nonNil(unassigned(scored, assignments)),
	}
	for i, l := range pmLoads {
		resp.PMs[i] = pmLoadView(l)
	}
	for i, l := range staffLoads {
		resp.Staff[i] = staffLoadView(l)
	}
	fields["pms"] = len(resp.PMs)
	fields["staff"] = len(resp.Staff)
	return resp, nil
}

// PMDetail lists the cases one PM is assigned to, highest score first.
// Only those cases are loaded and scored.
func (s *reportService) PMDetail(ctx context.Context, pm string) (resp *app.PMDetailResponse, err error) {
	fields := map[string]any{"read_only": true, "pm": pm}
	defer observe(ctx, s.observer, "report-pm-detail", fields, &err)()

	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading assignments: %w", err)
	}
	var names []string
	for _, a := range assignments {
		if slices.Contains(a.PMs, pm) {
			names = append(names, a.CaseName)
		}
	}
	notFound := fmt.Errorf("PM %q has no assigned cases: %w", pm, repository.ErrNotFound)
	if len(names) == 0 {
		return nil, notFound
	}
	scored, err := scoreStored(ctx, s.cases, repository.CaseFilter{Names: names})
	if err != nil {
		return nil, err
	}
	rows := engine.PMDetail(scored, assignments, pm)
	if len(rows) == 0 {
		return nil, notFound
	}
	fields["cases"] = len(rows)

	resp = &app.PMDetailResponse{PM: pm, Cases: make([]app.PMCaseView, len(rows))}
	for i, r := range rows {
		resp.Cases[i] = app.PMCaseView{CaseName: r.CaseName, CaseType: r.CaseType, Score: round2(r.Score)}
	}
	for _, l := range engine.PMLoads(scored, assignments) {
		if l.Name == pm {
			resp.Load = pmLoadView(l)
			break
		}
	}
	return resp, nil
}

// StaffDetail lists the cases one staff member holds a share of.
func (s *reportService) StaffDetail(ctx context.Context, staff string) (resp *app.StaffDetailResponse, err error) {
	fields := map[string]any{"read_only": true, "staff": staff}
	defer observe(ctx, s.observer, "report-staff-detail", fields, &err)()

	all, err := s.shares.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading workload shares: %w", err)
	}
	var shares []domain.WorkloadShare
	var names []string
	for _, sh := range all {
		if sh.StaffName == staff {
			shares = append(shares, sh)
			names = append(names, sh.CaseName)
		}
	}
	notFound := fmt.Errorf("staff %q has no workload shares: %w", staff, repository.ErrNotFound)
	if len(names) == 0 {
		return nil, notFound
	}
	scored, err := scoreStored(ctx, s.cases, repository.CaseFilter{Names: names})
	if err != nil {
		return nil, err
	}
	rows := engine.StaffDetail(scored, shares, staff)
	if len(rows) == 0 {
		return nil, notFound
	}
	fields["cases"] = len(rows)

	resp = &app.StaffDetailResponse{Staff: staff, Cases: make([]app.StaffCaseView, len(rows))}
	for i, r := range rows {
		resp.Cases[i] = app.StaffCaseView{
			CaseName:     r.CaseName,
			CaseType:     r.CaseType,
			Score:        round2(r.Score),
			Percentage:   round2(r.Percentage),
			WeightedLoad: round2(r.WeightedLoad),
		}
	}
	for _, l := range engine.StaffLoads(scored, shares) {
		if l.Name == staff {
			resp.Load = staffLoadView(l)
			break
		}
	}
	return resp, nil
}

func (s *reportService) ROI(ctx context.Context) (resp *app.ROIResponse, err error) {
	fields := map[string]any{"read_only": true}
	defer observe(ctx, s.observer, "report-roi", fields, &err)()

	priced, err := s.pricedPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	report := engine.EvaluateROI(priced)
	fields["priced"] = report.PricedCount

	resp = &app.ROIResponse{
		GeneratedAt:       s.now(),
		Rows:              make([]app.ROIRowView, len(report.Rows)),
		AverageROI:        round2(report.AverageROI),
		AveragePrice:      round2(report.AveragePrice),
		AverageComplexity: round2(report.AverageComplexity),
		PricedCount:       report.PricedCount,
		Underpriced:       nonNil(report.Underpriced),
		Stars:             nonNil(report.Stars),
		MissingPrice:      nonNil(report.Unpriced),
	}
	for i, r := range report.Rows {
		resp.Rows[i] = app.ROIRowView{
			Name:       r.Name,
			CaseType:   r.CaseType,
			Score:      round2(r.Score),
			Price:      round2(r.Price),
			Hours:      round2(r.EstimatedHours),
			ROI:        round2(r.ROI),
			Evaluation: r.Evaluation,
		}
	}
	return resp, nil
}

// Budget reports unit values and the headcount needed to carry the whole
// portfolio. Current headcount comes from the roster; when the roster is
// empty the configured fallbacks are used instead.
func (s *reportService) Budget(ctx context.Context) (resp *app.BudgetResponse, err error) {
	fields := map[string]any{"read_only": true}
	defer observe(ctx, s.observer, "report-budget", fields, &err)()

	priced, err := s.pricedPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.roster.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting roster: %w", err)
	}
	currentPM, currentStaff := counts[domain.RolePM], counts[domain.RoleStaff]
	fallback := currentPM+currentStaff == 0
	if fallback {
		currentPM, currentStaff = s.settings.FallbackPM, s.settings.FallbackStaff
	}

	var total float64
	rows := make([]app.BudgetRowView, len(priced))
	for i, p := range priced {
		total += p.Score
		rows[i] = app.BudgetRowView{
			Name:      p.Name,
			CaseType:  p.CaseType,
			Score:     round2(p.Score),
			Price:     round2(p.Price),
			Hours:     round2(p.EstimatedHours),
			UnitValue: round2(engine.ROI(p.Score, p.Price)),
		}
	}
	plan := engine.PlanHeadcount(total, currentPM, currentStaff, s.settings.Capacity)
	fields["fallback_headcount"] = fallback

	return &app.BudgetResponse{
		GeneratedAt:       s.now(),
		Rows:              rows,
		TotalComplexity:   round2(plan.TotalComplexity),
		PM:                rolePlanView(plan.PM),
		Staff:             rolePlanView(plan.Staff),
		FallbackHeadcount: fallback,
	}, nil
}

func (s *reportService) allocationInputs(ctx context.Context) ([]engine.ScoredCase, []domain.Assignment, []domain.WorkloadShare, error) {
	scored, err := scoreStored(ctx, s.cases, repository.CaseFilter{})
	if err != nil {
		return nil, nil, nil, err
	}
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading assignments: %w", err)
	}
	shares, err := s.shares.List(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading workload shares: %w", err)
	}
	return scored, assignments, shares, nil
}

func (s *reportService) pricedPortfolio(ctx context.Context) ([]engine.PricedCase, error) {
	scored, err := scoreStored(ctx, s.cases, repository.CaseFilter{})
	if err != nil {
		return nil, err
	}
	quotes, err := s.quotes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading price quotes: %w", err)
	}
	return pricedCases(scored, quotes), nil
}

// unassigned lists, in rank order, cases with no PM and no Staff.
func unassigned(scored []engine.ScoredCase, assignments []domain.Assignment) []string {
	assigned := map[string]bool{}
	for _, a := range assignments {
		if len(a.PMs)+len(a.Staff) > 0 {
			assigned[a.CaseName] = true
		}
	}
	var out []string
	for _, sc := range scored {
		if !assigned[sc.Case.Name] {
			out = append(out, sc.Case.Name)
		}
	}
	return out
}
