package engine

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/caseload/internal/domain"
)

// Record is one raw case row as handed over by import or persistence:
// attribute name to cell value (number, text, or nil for blank).
type Record map[string]any

// Canonical record keys.
const (
	FieldName                        = "name"
	FieldCaseType                    = "case_type"
	FieldEntityCount                 = "entity_count"
	FieldSystemCount                 = "system_count"
	FieldActualSharedSystemCount     = "actual_shared_system_count"
	FieldSystemsSharedAcrossEntities = "systems_shared_across_entities"
	FieldSystemCustomized            = "system_customized"
	FieldFlaggedForReview            = "flagged_for_review"
	FieldIsPCAOBCase                 = "is_pcaob_case"
	FieldPriorPMChanged              = "prior_pm_changed"
	FieldIPOFilingType               = "ipo_filing_type"
	FieldIPOComplexSecurity          = "ipo_complex_security"
	FieldIPOFirstReview              = "ipo_first_review"
	FieldITACQuestionCount           = "itac_question_count"
	FieldITACFirstReview             = "itac_first_review"
	FieldGCFirstReview               = "gc_first_review"
	FieldCAATsFirstReview            = "caats_first_review"

	// FieldComplexityScore is added to records by ScoreRecords.
	FieldComplexityScore = "complexity_score"
)

// NumericFields lists the record keys coerced to numbers.
var NumericFields = []string{
	FieldEntityCount,
	FieldSystemCount,
	FieldActualSharedSystemCount,
	FieldITACQuestionCount,
}

// FlagFields lists the record keys parsed as tri-state flags.
var FlagFields = []string{
	FieldSystemsSharedAcrossEntities,
	FieldSystemCustomized,
	FieldFlaggedForReview,
	FieldIsPCAOBCase,
	FieldPriorPMChanged,
	FieldIPOComplexSecurity,
	FieldIPOFirstReview,
	FieldITACFirstReview,
	FieldGCFirstReview,
	FieldCAATsFirstReview,
}

// AttributesFromRecord coerces a raw record into typed scoring attributes.
// Missing or malformed values degrade to zero / FlagUnset; unknown keys are
// ignored.
func AttributesFromRecord(r Record) domain.CaseAttributes {
	return domain.CaseAttributes{
		EntityCount:                 CoerceCount(r[FieldEntityCount]),
		SystemCount:                 CoerceCount(r[FieldSystemCount]),
		ActualSharedSystemCount:     CoerceCount(r[FieldActualSharedSystemCount]),
		SystemsSharedAcrossEntities: domain.FlagFromValue(r[FieldSystemsSharedAcrossEntities]),
		SystemCustomized:            domain.FlagFromValue(r[FieldSystemCustomized]),
		FlaggedForReview:            domain.FlagFromValue(r[FieldFlaggedForReview]),
		IsPCAOBCase:                 domain.FlagFromValue(r[FieldIsPCAOBCase]),
		PriorPMChanged:              domain.FlagFromValue(r[FieldPriorPMChanged]),
		IPOFilingType:               CoerceText(r[FieldIPOFilingType]),
		IPOComplexSecurity:          domain.FlagFromValue(r[FieldIPOComplexSecurity]),
		IPOFirstReview:              domain.FlagFromValue(r[FieldIPOFirstReview]),
		ITACQuestionCount:           CoerceCount(r[FieldITACQuestionCount]),
		ITACFirstReview:             domain.FlagFromValue(r[FieldITACFirstReview]),
		GCFirstReview:               domain.FlagFromValue(r[FieldGCFirstReview]),
		CAATsFirstReview:            domain.FlagFromValue(r[FieldCAATsFirstReview]),
	}
}

// CaseFromRecord builds a case from a record. The name and case type are
// taken as trimmed text; nothing is validated here.
func CaseFromRecord(r Record) domain.Case {
	return domain.Case{
		Name:       strings.TrimSpace(CoerceText(r[FieldName])),
		CaseType:   strings.TrimSpace(CoerceText(r[FieldCaseType])),
		Attributes: AttributesFromRecord(r),
	}
}

// CoerceNumber converts a cell value to a float. Values that cannot be read
// as a finite number become 0.
func CoerceNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, true
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, true
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CoerceCount is CoerceNumber clamped at zero; counts are never negative.
func CoerceCount(v any) float64 {
	f, _ := CoerceNumber(v)
	if f < 0 {
		return 0
	}
	return f
}

// CoerceText returns the string form of a cell, or "" for blanks.
func CoerceText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if math.IsNaN(t) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
