package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/caseload/internal/engine"
	"github.com/go-playground/validator/v10"
)

// rowFields are the identity fields every imported row must carry.
type rowFields struct {
	Name     string `validate:"required,max=200"`
	CaseType string `validate:"max=100"`
}

var validate = validator.New()

// ValidateRows checks every row and returns all problems found. existing
// holds names already stored; a row may not reuse one.
func ValidateRows(rows []Row, existing map[string]bool) []error {
	var errs []error
	seen := make(map[string]string, len(rows))

	for _, row := range rows {
		where := fmt.Sprintf("%s row %d", row.Source, row.Line)
		fields := rowFields{
			Name:     strings.TrimSpace(engine.CoerceText(row.Record[engine.FieldName])),
			CaseType: strings.TrimSpace(engine.CoerceText(row.Record[engine.FieldCaseType])),
		}
		if err := validate.Struct(fields); err != nil {
			errs = append(errs, fieldErrors(where, err)...)
			continue
		}
		if first, dup := seen[fields.Name]; dup {
			errs = append(errs, fmt.Errorf("%s: case name %q already used at %s", where, fields.Name, first))
			continue
		}
		seen[fields.Name] = where
		if existing[fields.Name] {
			errs = append(errs, fmt.Errorf("%s: case %q already exists", where, fields.Name))
		}
	}
	return errs
}

func fieldErrors(where string, err error) []error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{fmt.Errorf("%s: %w", where, err)}
	}
	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		field := engine.FieldName
		if fe.Field() == "CaseType" {
			field = engine.FieldCaseType
		}
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Errorf("%s: %s is required", where, field))
		case "max":
			out = append(out, fmt.Errorf("%s: %s is longer than %s characters", where, field, fe.Param()))
		default:
			out = append(out, fmt.Errorf("%s: %s failed %q", where, field, fe.Tag()))
		}
	}
	return out
}

// Warnings reports numeric cells that could not be read as numbers. They
// are imported as 0, so these are not errors.
func Warnings(rows []Row) []string {
	var out []string
	for _, row := range rows {
		for _, key := range engine.NumericFields {
			v, ok := row.Record[key]
			if !ok {
				continue
			}
			if _, valid := engine.CoerceNumber(v); !valid {
				out = append(out, fmt.Sprintf("%s row %d: %s %q is not a number, using 0", row.Source, row.Line, key, engine.CoerceText(v)))
			}
		}
	}
	return out
}

// ColumnBlanks is the number of blank cells in one input column.
type ColumnBlanks struct {
	Column string
	Blanks int
}

// BlankCounts counts blank cells per column present in the input, in column
// order, leaving out columns with no blanks.
func BlankCounts(t *Table) []ColumnBlanks {
	var out []ColumnBlanks
	for _, col := range t.Columns {
		n := 0
		for _, row := range t.Rows {
			if _, ok := row.Record[col]; !ok {
				n++
			}
		}
		if n > 0 {
			out = append(out, ColumnBlanks{Column: col, Blanks: n})
		}
	}
	return out
}
