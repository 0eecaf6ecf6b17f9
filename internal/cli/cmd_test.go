package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/alexanderramin/caseload/internal/app"
	"github.com/alexanderramin/caseload/internal/db"
	"github.com/alexanderramin/caseload/internal/engine"
	"github.com/alexanderramin/caseload/internal/repository"
	"github.com/alexanderramin/caseload/internal/service"
	"github.com/alexanderramin/caseload/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	caseRepo := repository.NewSQLiteCaseRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	shareRepo := repository.NewSQLiteShareRepo(database)
	quoteRepo := repository.NewSQLiteQuoteRepo(database)
	rosterRepo := repository.NewSQLiteRosterRepo(database)

	return &App{
		Import:     service.NewImportService(uow),
		Cases:      service.NewCaseService(caseRepo, assignmentRepo, shareRepo, quoteRepo, uow),
		Roster:     service.NewRosterService(rosterRepo, uow),
		Allocation: service.NewAllocationService(caseRepo, shareRepo, uow),
		Quotes:     service.NewQuoteService(quoteRepo, uow),
		Reports: service.NewReportService(caseRepo, assignmentRepo, shareRepo, quoteRepo, rosterRepo,
			service.ReportSettings{Capacity: engine.DefaultCapacity(), FallbackPM: 5, FallbackStaff: 2}),
		ServerAddr: ":8080",
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

// seedImport imports alpha (score 20), beta (30) and gamma (4).
func seedImport(t *testing.T, app *App) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,case_type,entity_count\n"+
		"alpha,Audit,10\n"+
		"beta,IPO,15\n"+
		"gamma,Audit,2\n"), 0644))
	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	require.Contains(t, out, "3")
}

func seedTeam(t *testing.T, app *App) {
	t.Helper()
	for _, args := range [][]string{
		{"roster", "add", "PM", "Pat"},
		{"roster", "add", "Staff", "Sam"},
		{"roster", "add", "Staff", "Ana"},
	} {
		_, err := executeCmd(t, app, args...)
		require.NoError(t, err)
	}
}

// --- case ---

func TestCaseRank_OrdersByScore(t *testing.T) {
	app := testApp(t)
	seedImport(t, app)

	out, err := executeCmd(t, app, "case", "rank")
	require.NoError(t, err)
	beta, alpha, gamma := strings.Index(out, "beta"), strings.Index(out, "alpha"), strings.Index(out, "gamma")
	require.True(t, beta >= 0 && alpha >= 0 && gamma >= 0, out)
	assert.Less(t, beta, alpha)
	assert.Less(t, alpha, gamma)
}

func TestCaseList_FiltersByType(t *testing.T) {
	app := testApp(t)
	seedImport(t, app)

	out, err := executeCmd(t, app, "case", "list", "--type", "IPO")
	require.NoError(t, err)
	assert.Contains(t, out, "beta")
	assert.NotContains(t, out, "alpha")
}

func TestCaseList_Empty(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "case", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No cases found.")
}

func TestCaseShow_UnknownCase(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "case", "show", "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestCaseRemove(t *testing.T) {
	app := testApp(t)
	seedImport(t, app)

	out, err := executeCmd(t, app, "case", "remove", "beta")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed case beta")

	out, err = executeCmd(t, app, "case", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "beta")
}

func TestCaseReset_NonInteractiveRequiresYes(t *testing.T) {
	app := testApp(t)
	seedImport(t, app)

	_, err := executeCmd(t, app, "case", "reset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out, err := executeCmd(t, app, "case", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 3 cases.")
}

func TestCaseReset_DeclinedPrompt(t *testing.T) {
	a := testApp(t)
	seedImport(t, a)
	a.IsInteractive = func() bool { return true }
	var asked string
	a.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}

	out, err := executeCmd(t, a, "case", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset cancelled.")
	assert.NotEmpty(t, asked)

	cases, err := a.Cases.List(context.Background(), app.CaseListRequest{})
	require.NoError(t, err)
	assert.Len(t, cases, 3)
}

// --- roster / assign / share ---

func TestRoster_AddListRemove(t *testing.T) {
	app := testApp(t)
	seedTeam(t, app)

	out, err := executeCmd(t, app, "roster", "list", "--role", "Staff")
	require.NoError(t, err)
	assert.Contains(t, out, "Sam")
	assert.NotContains(t, out, "Pat")

	_, err = executeCmd(t, app, "roster", "remove", "Staff", "Sam")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "roster", "add", "Boss", "Zed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role")
}

func TestAssignAndShares(t *testing.T) {
	app := testApp(t)
	seedImport(t, app)
	seedTeam(t, app)

	out, err := executeCmd(t, app, "assign", "alpha", "--pm", "Pat", "--staff", "Sam, Ana")
	require.NoError(t, err)
	assert.Contains(t, out, "Assigned alpha")
	assert.Contains(t, out, "Sam, Ana")

	out, err = executeCmd(t, app, "share", "set", "alpha", "Sam=60", "Ana=40%")
	require.NoError(t, err)
	assert.Contains(t, out, "60%")

	out, err = executeCmd(t, app, "share", "show", "alpha")
	require.NoError(t, err)
	assert.Contains(t, out, "Sam")
	assert.Contains(t, out, "40%")

	out, err = executeCmd(t, app, "share", "init", "alpha")
	require.NoError(t, err)
	assert.Contains(t, out, "50%")
}

func TestShareSet_RejectsBadArguments(t *testing.T) {
	app := testApp(t)
	seedImport(t, app)
	seedTeam(t, app)
	_, err := executeCmd(t, app, "assign", "alpha", "--staff", "Sam,Ana")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "share", "set", "alpha", "Sam60")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NAME=PERCENT")

	_, err = executeCmd(t, app, "share", "set", "alpha", "Sam=60", "Ana=30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 100%")
}

func TestParseShareArgs(t *testing.T) {
	shares, err := parseShareArgs("alpha", []string{" Sam = 62.5% ", "Ana=37.5"})
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, "Sam", shares[0].StaffName)
	assert.Equal(t, 62.5, shares[0].Percentage)
	assert.Equal(t, "alpha", shares[1].CaseName)

	_, err = parseShareArgs("alpha", []string{"Sam=lots"})
	assert.Error(t, err)
}

// --- quote / report ---

func TestQuoteSetAndList(t *testing.T) {
	app := testApp(t)
	seedImport(t, app)

	out, err := executeCmd(t, app, "quote", "set", "alpha", "--price", "1000", "--hours", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "price 1000")

	out, err = executeCmd(t, app, "quote", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")

	_, err = executeCmd(t, app, "quote", "set", "alpha", "--price", "-5")
	require.Error(t, err)
}

func TestReportOverview_JSON(t *testing.T) {
	app := testApp(t)
	seedImport(t, app)

	out, err := executeCmd(t, app, "report", "overview", "--json")
	require.NoError(t, err)

	var o struct {
		TotalCases    int `json:"total_cases"`
		HighRiskCount int `json:"high_risk_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &o))
	assert.Equal(t, 3, o.TotalCases)
	assert.Equal(t, 1, o.HighRiskCount)
}

func TestReportLoad_PersonDetail(t *testing.T) {
	app := testApp(t)
	seedImport(t, app)
	seedTeam(t, app)
	_, err := executeCmd(t, app, "assign", "alpha", "--pm", "Pat", "--staff", "Sam")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "report", "load", "--pm", "Pat")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")

	_, err = executeCmd(t, app, "report", "load", "--staff", "Nobody")
	require.Error(t, err)

	_, err = executeCmd(t, app, "report", "load", "--pm", "Pat", "--staff", "Sam")
	require.Error(t, err)
}

func TestReportBudget_And_ROI(t *testing.T) {
	app := testApp(t)
	seedImport(t, app)
	_, err := executeCmd(t, app, "quote", "set", "beta", "--price", "3000")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "report", "budget")
	require.NoError(t, err)
	assert.Contains(t, out, "beta")

	out, err = executeCmd(t, app, "report", "roi")
	require.NoError(t, err)
	assert.Contains(t, out, "beta")
}

// --- export / serve ---

func TestExport_CSVToFile(t *testing.T) {
	app := testApp(t)
	seedImport(t, app)
	path := filepath.Join(t.TempDir(), "rank.csv")

	out, err := executeCmd(t, app, "export", "rank", "--format", "csv", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 3 rows")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\ufeff")))
	assert.Contains(t, string(data), "beta")
}

func TestExport_RejectsUnknownTargetAndFormat(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "export", "everything")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "export", "rank", "--format", "xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestServe_UsesConfiguredAddr(t *testing.T) {
	app := testApp(t)
	var got string
	app.Serve = func(ctx context.Context, addr string) error {
		got = addr
		return nil
	}

	_, err := executeCmd(t, app, "serve")
	require.NoError(t, err)
	assert.Equal(t, ":8080", got)

	_, err = executeCmd(t, app, "serve", "--addr", "127.0.0.1:9999")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", got)
}

func TestPreParseConfigFlag(t *testing.T) {
	assert.Equal(t, "/etc/c.toml", PreParseConfigFlag([]string{"case", "rank", "--limit", "3", "--config", "/etc/c.toml"}))
	assert.Equal(t, "x.toml", PreParseConfigFlag([]string{"--config=x.toml", "report", "overview", "--json"}))
	assert.Equal(t, "", PreParseConfigFlag([]string{"case", "list"}))
}
