package service

import (
	"context"

	"github.com/alexanderramin/caseload/internal/app"
	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/importer"
)

// ImportResult is the outcome of a case import.
type ImportResult struct {
	Imported []string
	Warnings []string
	Blanks   []importer.ColumnBlanks
	Ignored  []string
}

type ImportService interface {
	ImportCases(ctx context.Context, path string) (*ImportResult, error)
	ImportTable(ctx context.Context, table *importer.Table) (*ImportResult, error)
}

type CaseService interface {
	List(ctx context.Context, req app.CaseListRequest) ([]*domain.Case, error)
	Rank(ctx context.Context, req app.CaseListRequest) ([]app.CaseScoreView, error)
	Show(ctx context.Context, name string) (*app.CaseDetail, error)
	Remove(ctx context.Context, name string) error
	Reset(ctx context.Context) (int64, error)
}

type RosterService interface {
	Add(ctx context.Context, role domain.Role, name string) (*domain.RosterMember, error)
	Remove(ctx context.Context, role domain.Role, name string) error
	List(ctx context.Context, role domain.Role) ([]domain.RosterMember, error)
}

type AllocationService interface {
	Assign(ctx context.Context, caseName string, pms, staff []string) (*domain.Assignment, error)
	SetShares(ctx context.Context, caseName string, shares []domain.WorkloadShare) error
	InitShares(ctx context.Context, caseName string) ([]domain.WorkloadShare, error)
	Shares(ctx context.Context, caseName string) ([]domain.WorkloadShare, error)
}

type QuoteService interface {
	Set(ctx context.Context, caseName string, price, hours float64) (*domain.PriceQuote, error)
	List(ctx context.Context) ([]domain.PriceQuote, error)
}

type ReportService interface {
	Overview(ctx context.Context) (*app.OverviewResponse, error)
	Load(ctx context.Context) (*app.LoadResponse, error)
	PMDetail(ctx context.Context, pm string) (*app.PMDetailResponse, error)
	StaffDetail(ctx context.Context, staff string) (*app.StaffDetailResponse, error)
	ROI(ctx context.Context) (*app.ROIResponse, error)
	Budget(ctx context.Context) (*app.BudgetResponse, error)
}
