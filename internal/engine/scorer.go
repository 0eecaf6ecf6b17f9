package engine

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/caseload/internal/domain"
)

type TermCode string

const (
	TermEntities         TermCode = "ENTITIES"
	TermSystems          TermCode = "SYSTEMS"
	TermNonSharedSystems TermCode = "NON_SHARED_SYSTEMS"
	TermCustomized       TermCode = "SYSTEM_CUSTOMIZED"
	TermFlaggedReview    TermCode = "FLAGGED_FOR_REVIEW"
	TermPCAOB            TermCode = "PCAOB"
	TermPMTurnover       TermCode = "PM_TURNOVER"
	TermIPOCategory      TermCode = "IPO_CATEGORY"
	TermIPOSecurity      TermCode = "IPO_COMPLEX_SECURITY"
	TermIPOFirstReview   TermCode = "IPO_FIRST_REVIEW"
	TermITACItems        TermCode = "ITAC_ITEMS"
	TermITACFirstReview  TermCode = "ITAC_FIRST_REVIEW"
	TermGCFirstReview    TermCode = "GC_FIRST_REVIEW"
	TermCAATsFirstReview TermCode = "CAATS_FIRST_REVIEW"
)

// Term is one contributing line of a score breakdown.
type Term struct {
	Code   TermCode
	Points float64
	Detail string
}

// Score is a complexity score with the terms that produced it.
type Score struct {
	Total float64
	Terms []Term
}

const (
	entityWeight   = 2.0
	systemWeight   = 4.0
	itacItemWeight = 1.5
)

// IPOCategory is one filing-type bucket, matched by substring.
type IPOCategory struct {
	Label    string
	Patterns []string
	Points   float64
}

// IPOCategories are checked in order; the first match wins.
var IPOCategories = []IPOCategory{
	{Label: "main board", Patterns: []string{"上市", "main-board"}, Points: 5},
	{Label: "OTC", Patterns: []string{"上櫃", "OTC"}, Points: 4},
	{Label: "pre-listed", Patterns: []string{"興櫃", "pre-listed"}, Points: 2},
}

type factor func(domain.CaseAttributes) (float64, *Term)

var factors = []factor{
	scoreEntities,
	scoreSystems,
	scoreNonShared,
	flagFactor(TermCustomized, 3, "System is customized", func(a domain.CaseAttributes) domain.Flag { return a.SystemCustomized }),
	flagFactor(TermFlaggedReview, 8, "Flagged for review", func(a domain.CaseAttributes) domain.Flag { return a.FlaggedForReview }),
	flagFactor(TermPCAOB, 10, "PCAOB engagement", func(a domain.CaseAttributes) domain.Flag { return a.IsPCAOBCase }),
	flagFactor(TermPMTurnover, 5, "Prior PM changed", func(a domain.CaseAttributes) domain.Flag { return a.PriorPMChanged }),
	scoreIPOCategory,
	flagFactor(TermIPOSecurity, 7, "IPO complex security", func(a domain.CaseAttributes) domain.Flag { return a.IPOComplexSecurity }),
	flagFactor(TermIPOFirstReview, 5, "IPO first review", func(a domain.CaseAttributes) domain.Flag { return a.IPOFirstReview }),
	scoreITACItems,
	flagFactor(TermITACFirstReview, 8, "ITAC first review", func(a domain.CaseAttributes) domain.Flag { return a.ITACFirstReview }),
	flagFactor(TermGCFirstReview, 5, "GC first review", func(a domain.CaseAttributes) domain.Flag { return a.GCFirstReview }),
	flagFactor(TermCAATsFirstReview, 6, "CAATs first review", func(a domain.CaseAttributes) domain.Flag { return a.CAATsFirstReview }),
}

// ScoreAttributes computes the additive complexity score. Every term is
// independent; terms contributing zero are left out of the breakdown.
func ScoreAttributes(attrs domain.CaseAttributes) Score {
	var s Score
	for _, f := range factors {
		delta, term := f(attrs)
		s.Total += delta
		if term != nil {
			s.Terms = append(s.Terms, *term)
		}
	}
	return s
}

// ScoreRecord coerces and scores one raw record.
func ScoreRecord(r Record) float64 {
	return ScoreAttributes(AttributesFromRecord(r)).Total
}

func scoreEntities(a domain.CaseAttributes) (float64, *Term) {
	if a.EntityCount <= 0 {
		return 0, nil
	}
	delta := a.EntityCount * entityWeight
	return delta, &Term{
		Code:   TermEntities,
		Points: delta,
		Detail: fmt.Sprintf("%s entities x %g", trimFloat(a.EntityCount), entityWeight),
	}
}

func scoreSystems(a domain.CaseAttributes) (float64, *Term) {
	n := a.EffectiveSystemCount()
	if n <= 0 {
		return 0, nil
	}
	delta := n * systemWeight
	detail := fmt.Sprintf("%s systems x %g", trimFloat(n), systemWeight)
	if a.ActualSharedSystemCount > 0 {
		detail += " (shared-system count)"
	}
	return delta, &Term{Code: TermSystems, Points: delta, Detail: detail}
}

// scoreNonShared keys off an explicit "no"; blank does not score.
func scoreNonShared(a domain.CaseAttributes) (float64, *Term) {
	if !a.SystemsSharedAcrossEntities.IsNegative() {
		return 0, nil
	}
	delta := 3.0
	return delta, &Term{Code: TermNonSharedSystems, Points: delta, Detail: "Systems not shared across entities"}
}

func scoreIPOCategory(a domain.CaseAttributes) (float64, *Term) {
	cat, ok := MatchIPOCategory(a.IPOFilingType)
	if !ok {
		return 0, nil
	}
	return cat.Points, &Term{
		Code:   TermIPOCategory,
		Points: cat.Points,
		Detail: "IPO filing: " + cat.Label,
	}
}

func scoreITACItems(a domain.CaseAttributes) (float64, *Term) {
	if a.ITACQuestionCount <= 0 {
		return 0, nil
	}
	delta := a.ITACQuestionCount * itacItemWeight
	return delta, &Term{
		Code:   TermITACItems,
		Points: delta,
		Detail: fmt.Sprintf("%s ITAC items x %g", trimFloat(a.ITACQuestionCount), itacItemWeight),
	}
}

func flagFactor(code TermCode, points float64, detail string, pick func(domain.CaseAttributes) domain.Flag) factor {
	return func(a domain.CaseAttributes) (float64, *Term) {
		if !pick(a).IsAffirmative() {
			return 0, nil
		}
		return points, &Term{Code: code, Points: points, Detail: detail}
	}
}

// MatchIPOCategory returns the first category whose pattern occurs in the
// filing type. Matching is case-sensitive.
func MatchIPOCategory(filingType string) (IPOCategory, bool) {
	if filingType == "" {
		return IPOCategory{}, false
	}
	for _, cat := range IPOCategories {
		for _, p := range cat.Patterns {
			if strings.Contains(filingType, p) {
				return cat, true
			}
		}
	}
	return IPOCategory{}, false
}

func trimFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}
