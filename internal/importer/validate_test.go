package importer

import (
	"testing"
	"time"

	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(line int, rec engine.Record) Row {
	return Row{Source: "in.csv", Line: line, Record: rec}
}

func TestValidateRows_Valid(t *testing.T) {
	rows := []Row{
		row(2, engine.Record{engine.FieldName: "A"}),
		row(3, engine.Record{engine.FieldName: "B", engine.FieldCaseType: "IPO"}),
	}
	assert.Empty(t, ValidateRows(rows, nil))
}

func TestValidateRows_CollectsAllProblems(t *testing.T) {
	rows := []Row{
		row(2, engine.Record{engine.FieldEntityCount: 3}),
		row(3, engine.Record{engine.FieldName: "A"}),
		row(4, engine.Record{engine.FieldName: "A"}),
		row(5, engine.Record{engine.FieldName: "Stored"}),
	}
	errs := ValidateRows(rows, map[string]bool{"Stored": true})
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "in.csv row 2: name is required")
	assert.Contains(t, errs[1].Error(), `"A" already used at in.csv row 3`)
	assert.Contains(t, errs[2].Error(), `"Stored" already exists`)
}

func TestWarnings_JunkNumerics(t *testing.T) {
	rows := []Row{
		row(2, engine.Record{engine.FieldName: "A", engine.FieldEntityCount: "abc", engine.FieldSystemCount: "2"}),
	}
	w := Warnings(rows)
	require.Len(t, w, 1)
	assert.Contains(t, w[0], "entity_count")
	assert.Contains(t, w[0], "using 0")
}

func TestBlankCounts(t *testing.T) {
	table := &Table{
		Columns: []string{engine.FieldName, engine.FieldEntityCount, engine.FieldSystemCount},
		Rows: []Row{
			row(2, engine.Record{engine.FieldName: "A", engine.FieldEntityCount: 1}),
			row(3, engine.Record{engine.FieldName: "B"}),
		},
	}
	counts := BlankCounts(table)
	assert.Equal(t, []ColumnBlanks{
		{Column: engine.FieldEntityCount, Blanks: 1},
		{Column: engine.FieldSystemCount, Blanks: 2},
	}, counts)
}

func TestConvert_DefaultsCaseType(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cases := Convert([]Row{
		row(2, engine.Record{engine.FieldName: " A ", engine.FieldEntityCount: "2", engine.FieldIsPCAOBCase: "是"}),
		row(3, engine.Record{engine.FieldName: "B", engine.FieldCaseType: "IPO"}),
	}, now)

	require.Len(t, cases, 2)
	assert.Equal(t, "A", cases[0].Name)
	assert.Equal(t, domain.UnclassifiedCaseType, cases[0].CaseType)
	assert.Equal(t, 2.0, cases[0].Attributes.EntityCount)
	assert.Equal(t, domain.FlagAffirmative, cases[0].Attributes.IsPCAOBCase)
	assert.Equal(t, "in.csv", cases[0].SourceFile)
	assert.NotEmpty(t, cases[0].ID)
	assert.Equal(t, now, cases[1].CreatedAt)
	assert.Equal(t, "IPO", cases[1].CaseType)
}
