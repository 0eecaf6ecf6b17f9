package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/caseload/internal/domain"
)

// ShareTolerance is how far a case's share total may drift from 100.
const ShareTolerance = 0.1

// PMLoad aggregates the cases a PM owns. AvgScore is unrounded.
type PMLoad struct {
	Name       string
	CaseCount  int
	TotalScore float64
	AvgScore   float64
}

// StaffLoad aggregates a staff member's weighted share of case scores.
type StaffLoad struct {
	Name         string
	CaseCount    int
	WeightedLoad float64
}

// PMCaseRow is one case in a PM's detail view.
type PMCaseRow struct {
	PM       string
	CaseName string
	CaseType string
	Score    float64
}

// StaffCaseRow is one share in a staff member's detail view.
type StaffCaseRow struct {
	Staff        string
	CaseName     string
	CaseType     string
	Score        float64
	Percentage   float64
	WeightedLoad float64
}

func indexByName(cases []ScoredCase) map[string]ScoredCase {
	idx := make(map[string]ScoredCase, len(cases))
	for _, c := range cases {
		if _, ok := idx[c.Case.Name]; !ok {
			idx[c.Case.Name] = c
		}
	}
	return idx
}

func indexAssignments(assignments []domain.Assignment) map[string]domain.Assignment {
	idx := make(map[string]domain.Assignment, len(assignments))
	for _, a := range assignments {
		idx[a.CaseName] = a
	}
	return idx
}

// PMLoads charges every PM listed on a case the full case score. A case
// with two PMs counts once for each. Results come back in first-seen
// order; see SortPMLoads.
func PMLoads(cases []ScoredCase, assignments []domain.Assignment) []PMLoad {
	byCase := indexAssignments(assignments)
	var order []string
	loads := map[string]*PMLoad{}
	for _, c := range cases {
		a, ok := byCase[c.Case.Name]
		if !ok {
			continue
		}
		for _, pm := range a.PMs {
			pm = strings.TrimSpace(pm)
			if pm == "" {
				continue
			}
			l, ok := loads[pm]
			if !ok {
				l = &PMLoad{Name: pm}
				loads[pm] = l
				order = append(order, pm)
			}
			l.CaseCount++
			l.TotalScore += c.Total()
		}
	}

	out := make([]PMLoad, 0, len(order))
	for _, name := range order {
		l := loads[name]
		l.AvgScore = l.TotalScore / float64(l.CaseCount)
		out = append(out, *l)
	}
	return out
}

// SortPMLoads orders by average score descending, then name ascending.
func SortPMLoads(loads []PMLoad) {
	sort.SliceStable(loads, func(i, j int) bool {
		if loads[i].AvgScore != loads[j].AvgScore {
			return loads[i].AvgScore > loads[j].AvgScore
		}
		return loads[i].Name < loads[j].Name
	})
}

// PMDetail lists the cases assigned to one PM in case order.
func PMDetail(cases []ScoredCase, assignments []domain.Assignment, pm string) []PMCaseRow {
	byCase := indexAssignments(assignments)
	var rows []PMCaseRow
	for _, c := range cases {
		a, ok := byCase[c.Case.Name]
		if !ok {
			continue
		}
		for _, name := range a.PMs {
			if strings.TrimSpace(name) == pm {
				rows = append(rows, PMCaseRow{
					PM:       pm,
					CaseName: c.Case.Name,
					CaseType: c.Case.CaseType,
					Score:    c.Total(),
				})
			}
		}
	}
	return rows
}

// StaffLoads weights each share by its case score. Shares pointing at a case
// that no longer exists are skipped.
func StaffLoads(cases []ScoredCase, shares []domain.WorkloadShare) []StaffLoad {
	byName := indexByName(cases)
	var order []string
	loads := map[string]*StaffLoad{}
	for _, s := range shares {
		c, ok := byName[s.CaseName]
		if !ok {
			continue
		}
		l, ok := loads[s.StaffName]
		if !ok {
			l = &StaffLoad{Name: s.StaffName}
			loads[s.StaffName] = l
			order = append(order, s.StaffName)
		}
		l.CaseCount++
		l.WeightedLoad += c.Total() * s.Percentage / 100
	}

	out := make([]StaffLoad, 0, len(order))
	for _, name := range order {
		out = append(out, *loads[name])
	}
	return out
}

// SortStaffLoads orders by weighted load descending, then name ascending.
func SortStaffLoads(loads []StaffLoad) {
	sort.SliceStable(loads, func(i, j int) bool {
		if loads[i].WeightedLoad != loads[j].WeightedLoad {
			return loads[i].WeightedLoad > loads[j].WeightedLoad
		}
		return loads[i].Name < loads[j].Name
	})
}

// StaffDetail lists one staff member's shares, skipping dangling cases.
func StaffDetail(cases []ScoredCase, shares []domain.WorkloadShare, staff string) []StaffCaseRow {
	byName := indexByName(cases)
	var rows []StaffCaseRow
	for _, s := range shares {
		if s.StaffName != staff {
			continue
		}
		c, ok := byName[s.CaseName]
		if !ok {
			continue
		}
		rows = append(rows, StaffCaseRow{
			Staff:        staff,
			CaseName:     c.Case.Name,
			CaseType:     c.Case.CaseType,
			Score:        c.Total(),
			Percentage:   s.Percentage,
			WeightedLoad: c.Total() * s.Percentage / 100,
		})
	}
	return rows
}

// ShareTotal sums the percentages recorded for one case.
func ShareTotal(shares []domain.WorkloadShare, caseName string) float64 {
	var total float64
	for _, s := range shares {
		if s.CaseName == caseName {
			total += s.Percentage
		}
	}
	return total
}

// SharesComplete reports whether a share total is within tolerance of 100.
func SharesComplete(total float64) bool {
	return math.Abs(total-100) < ShareTolerance
}

// IncompleteDistributions returns, in case order, the names of cases that
// have staff assigned but whose shares do not add up to 100.
func IncompleteDistributions(caseNames []string, assignments []domain.Assignment, shares []domain.WorkloadShare) []string {
	byCase := indexAssignments(assignments)
	var out []string
	for _, name := range caseNames {
		a, ok := byCase[name]
		if !ok || len(a.Staff) == 0 {
			continue
		}
		if !SharesComplete(ShareTotal(shares, name)) {
			out = append(out, name)
		}
	}
	return out
}

// EvenShares splits a case equally across the given staff.
func EvenShares(caseName string, staff []string) []domain.WorkloadShare {
	if len(staff) == 0 {
		return nil
	}
	pct := 100 / float64(len(staff))
	out := make([]domain.WorkloadShare, 0, len(staff))
	for _, s := range staff {
		out = append(out, domain.WorkloadShare{CaseName: caseName, StaffName: s, Percentage: pct})
	}
	return out
}
