package domain

import "time"

// UnclassifiedCaseType is used when an imported row carries no case type.
const UnclassifiedCaseType = "Unclassified"

// CaseAttributes holds every raw input the complexity scorer reads.
// Numeric fields are already coerced: blanks and junk are zero.
type CaseAttributes struct {
	EntityCount                 float64
	SystemCount                 float64
	ActualSharedSystemCount     float64
	SystemsSharedAcrossEntities Flag
	SystemCustomized            Flag
	FlaggedForReview            Flag
	IsPCAOBCase                 Flag
	PriorPMChanged              Flag
	IPOFilingType               string
	IPOComplexSecurity          Flag
	IPOFirstReview              Flag
	ITACQuestionCount           float64
	ITACFirstReview             Flag
	GCFirstReview               Flag
	CAATsFirstReview            Flag
}

// EffectiveSystemCount prefers the shared-system count when it is positive.
func (a CaseAttributes) EffectiveSystemCount() float64 {
	if a.ActualSharedSystemCount > 0 {
		return a.ActualSharedSystemCount
	}
	return a.SystemCount
}

// AdjustedResourceTotal is entities plus effective systems, used by the
// overview scatter of resources against score.
func (a CaseAttributes) AdjustedResourceTotal() float64 {
	return a.EntityCount + a.EffectiveSystemCount()
}

// Case is one unit of work. Name is the join key across every other table.
type Case struct {
	ID         string
	Seq        int
	Name       string
	CaseType   string
	SourceFile string
	Attributes CaseAttributes
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
