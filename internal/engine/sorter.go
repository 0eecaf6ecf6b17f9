package engine

import (
	"sort"

	"github.com/alexanderramin/caseload/internal/domain"
)

// ScoredCase is a case paired with its computed score and band.
type ScoredCase struct {
	Case  domain.Case
	Score Score
	Band  domain.RiskBand
}

func (s ScoredCase) Total() float64 { return s.Score.Total }

// ScoreCase scores a single case.
func ScoreCase(c domain.Case) ScoredCase {
	s := ScoreAttributes(c.Attributes)
	return ScoredCase{Case: c, Score: s, Band: Classify(s.Total)}
}

// ScoreCases scores every case and returns them ordered by descending
// score. Ties keep their input order. The input slice is not modified.
func ScoreCases(cases []domain.Case) []ScoredCase {
	out := make([]ScoredCase, len(cases))
	for i, c := range cases {
		out[i] = ScoreCase(c)
	}
	SortByScore(out)
	return out
}

// SortByScore orders scored cases by descending score, stable on ties.
func SortByScore(cases []ScoredCase) {
	sort.SliceStable(cases, func(i, j int) bool {
		return cases[i].Total() > cases[j].Total()
	})
}

// ScoreRecords returns copies of the records with FieldComplexityScore set,
// ordered by descending score. Input records are left untouched.
func ScoreRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		cp := make(Record, len(r)+1)
		for k, v := range r {
			cp[k] = v
		}
		cp[FieldComplexityScore] = ScoreRecord(r)
		out[i] = cp
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i][FieldComplexityScore].(float64) > out[j][FieldComplexityScore].(float64)
	})
	return out
}

// TotalComplexity sums the scores of all cases.
func TotalComplexity(cases []ScoredCase) float64 {
	var total float64
	for _, c := range cases {
		total += c.Total()
	}
	return total
}

// AverageComplexity is the mean score, or 0 when there are no cases.
func AverageComplexity(cases []ScoredCase) float64 {
	if len(cases) == 0 {
		return 0
	}
	return TotalComplexity(cases) / float64(len(cases))
}
