package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/caseload/internal/db"
	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/engine"
	"github.com/alexanderramin/caseload/internal/repository"
	"github.com/alexanderramin/caseload/internal/testutil"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db          *sql.DB
	uow         db.UnitOfWork
	cases       *repository.SQLiteCaseRepo
	assignments *repository.SQLiteAssignmentRepo
	shares      *repository.SQLiteShareRepo
	quotes      *repository.SQLiteQuoteRepo
	roster      *repository.SQLiteRosterRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &fixture{
		db:          database,
		uow:         testutil.NewTestUoW(database),
		cases:       repository.NewSQLiteCaseRepo(database),
		assignments: repository.NewSQLiteAssignmentRepo(database),
		shares:      repository.NewSQLiteShareRepo(database),
		quotes:      repository.NewSQLiteQuoteRepo(database),
		roster:      repository.NewSQLiteRosterRepo(database),
	}
}

func (f *fixture) caseService() CaseService {
	return NewCaseService(f.cases, f.assignments, f.shares, f.quotes, f.uow)
}

func (f *fixture) allocationService() AllocationService {
	return NewAllocationService(f.cases, f.shares, f.uow)
}

func (f *fixture) reportService() ReportService {
	return NewReportService(f.cases, f.assignments, f.shares, f.quotes, f.roster, ReportSettings{
		Capacity:      engine.DefaultCapacity(),
		FallbackPM:    5,
		FallbackStaff: 2,
	})
}

func (f *fixture) seedCases(t *testing.T, cases ...*domain.Case) {
	t.Helper()
	ctx := context.Background()
	for _, c := range cases {
		require.NoError(t, f.cases.Create(ctx, c))
	}
}

func (f *fixture) seedRoster(t *testing.T, role domain.Role, names ...string) {
	t.Helper()
	ctx := context.Background()
	for _, n := range names {
		require.NoError(t, f.roster.Add(ctx, testutil.NewTestRosterMember(role, n)))
	}
}

// seedPortfolio stores three cases scoring 20 (MEDIUM), 30 (HIGH) and 4 (LOW).
func (f *fixture) seedPortfolio(t *testing.T) {
	t.Helper()
	f.seedCases(t,
		testutil.NewTestCase("alpha", testutil.WithEntities(10)),
		testutil.NewTestCase("beta", testutil.WithEntities(15), testutil.WithCaseType("IPO")),
		testutil.NewTestCase("gamma", testutil.WithEntities(2)),
	)
}
