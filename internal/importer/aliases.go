package importer

import (
	"strings"

	"github.com/alexanderramin/caseload/internal/engine"
)

// headerAliases maps the spreadsheet headers used by the audit teams onto
// canonical record keys.
var headerAliases = func() map[string]string {
	pairs := [][2]string{
		{"案件名稱", engine.FieldName},
		{"案件類型", engine.FieldCaseType},
		{"個體數", engine.FieldEntityCount},
		{"系統數", engine.FieldSystemCount},
		{"(系統)已考量共用情況之實際系統數", engine.FieldActualSharedSystemCount},
		{"個體是否共用系統", engine.FieldSystemsSharedAcrossEntities},
		{"系統是否客製化", engine.FieldSystemCustomized},
		{"是否被Q", engine.FieldFlaggedForReview},
		{"是否為PCAOB", engine.FieldIsPCAOBCase},
		{"前期負責PM是否更換", engine.FieldPriorPMChanged},
		{"IPO送件類型", engine.FieldIPOFilingType},
		{"IPO是否為複雜資安", engine.FieldIPOComplexSecurity},
		{"IPO是否首查", engine.FieldIPOFirstReview},
		{"ITAC題數", engine.FieldITACQuestionCount},
		{"ITAC是否首查", engine.FieldITACFirstReview},
		{"GC是否首查", engine.FieldGCFirstReview},
		{"Caats是否首查", engine.FieldCAATsFirstReview},
	}
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p[0]] = p[1]
	}
	return m
}()

// derivedHeaders are columns exported by earlier runs; they are recomputed,
// never imported.
var derivedHeaders = map[string]bool{
	"序號": true, "複雜度評分": true, "seq": true, "rank": true,
	engine.FieldComplexityScore: true,
}

var canonicalKeys = func() map[string]bool {
	keys := map[string]bool{engine.FieldName: true, engine.FieldCaseType: true, engine.FieldIPOFilingType: true}
	for _, k := range engine.NumericFields {
		keys[k] = true
	}
	for _, k := range engine.FlagFields {
		keys[k] = true
	}
	return keys
}()

// CanonicalHeader resolves a raw column header. It returns "" and false for
// columns the scorer does not read.
func CanonicalHeader(raw string) (string, bool) {
	h := cleanHeader(raw)
	if derivedHeaders[h] {
		return "", false
	}
	if key, ok := headerAliases[h]; ok {
		return key, true
	}
	lower := strings.ToLower(h)
	if canonicalKeys[lower] {
		return lower, true
	}
	return "", false
}

func cleanHeader(raw string) string {
	return strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
}

func isDerivedHeader(raw string) bool {
	return derivedHeaders[cleanHeader(raw)]
}
