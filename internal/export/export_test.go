package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alexanderramin/caseload/internal/app"
	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRank() []app.CaseScoreView {
	return []app.CaseScoreView{
		{Rank: 1, Name: "台積案", CaseType: "IPO", Score: 30.5, Band: domain.RiskHigh, EntityCount: 10, EffectiveSystems: 2, AdjustedResources: 12},
		{Rank: 2, Name: "Acme, Inc.", CaseType: "Audit", Score: 4, Band: domain.RiskLow, EntityCount: 2},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("xlsx")
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestWriteCSV_BOMAndQuoting(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, RankTable(sampleRank())))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, utf8BOM))
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, utf8BOM)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "rank,name,case_type,complexity_score,risk_band,entity_count,effective_system_count,adjusted_resource_total", lines[0])
	assert.Equal(t, "1,台積案,IPO,30.5,HIGH,10,2,12", lines[1])
	assert.Equal(t, `2,"Acme, Inc.",Audit,4,LOW,2,0,0`, lines[2])
}

func TestBudgetTable_Notes(t *testing.T) {
	table := BudgetTable(&app.BudgetResponse{
		Rows:              []app.BudgetRowView{{Name: "a", CaseType: "Audit", Score: 20, Price: 1000, Hours: 10, UnitValue: 50}},
		TotalComplexity:   54,
		PM:                app.RolePlanView{Role: domain.RolePM, Capacity: 40, Current: 1, Required: 1.4, Shortfall: 0.4, NeedsHiring: true},
		Staff:             app.RolePlanView{Role: domain.RoleStaff, Capacity: 50, Current: 2, Required: 1.1},
		FallbackHeadcount: true,
	})

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"a", "Audit", "20", "1000", "10", "50"}, table.Rows[0])
	require.Len(t, table.Notes, 4)
	assert.Equal(t, "Total complexity: 54", table.Notes[0])
	assert.Equal(t, "PM: capacity 40, current 1, required 1.4, HIRE 0.4", table.Notes[1])
	assert.Equal(t, "Staff: capacity 50, current 2, required 1.1, OK", table.Notes[2])
	assert.Contains(t, table.Notes[3], "fallbacks")
}

func TestWritePDF_ProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPDF, RankTable(sampleRank()), PDFOptions{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWritePDF_ManyRowsPaginates(t *testing.T) {
	views := make([]app.CaseScoreView, 120)
	for i := range views {
		views[i] = app.CaseScoreView{Rank: i + 1, Name: strings.Repeat("x", i%20+1), Band: domain.RiskLow}
	}
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, RankTable(views), PDFOptions{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWritePDF_MissingFont(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, RankTable(nil), PDFOptions{FontPath: "/nonexistent/font.ttf"})
	assert.Error(t, err)
}

func TestColumnWidths_MeasureTranslatedText(t *testing.T) {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	cell := strings.Repeat("é", 10)
	table := Table{Headers: []string{"A"}, Rows: [][]string{{cell}}}

	widths := columnWidths(pdf, table, "Arial", tr)

	pdf.SetFont("Arial", "", fontSize)
	assert.InDelta(t, pdf.GetStringWidth(tr(cell))+4, widths[0], 1e-9)
	assert.Less(t, widths[0], pdf.GetStringWidth(cell)+4)
}
