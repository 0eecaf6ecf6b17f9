package export

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/caseload/internal/app"
)

// Table is a titled grid ready to write in any format. Notes are summary
// lines printed under the grid.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Notes   []string
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RankTable lays out the ranked case list.
func RankTable(views []app.CaseScoreView) Table {
	t := Table{
		Title: "Case complexity ranking",
		Headers: []string{
			"rank", "name", "case_type", "complexity_score", "risk_band",
			"entity_count", "effective_system_count", "adjusted_resource_total",
		},
	}
	for _, v := range views {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(v.Rank), v.Name, v.CaseType, num(v.Score), string(v.Band),
			num(v.EntityCount), num(v.EffectiveSystems), num(v.AdjustedResources),
		})
	}
	return t
}

// BudgetTable lays out unit values with the headcount plan as notes.
func BudgetTable(resp *app.BudgetResponse) Table {
	t := Table{
		Title:   "Budget and headcount",
		Headers: []string{"name", "case_type", "complexity_score", "price", "estimated_hours", "unit_value"},
	}
	for _, r := range resp.Rows {
		t.Rows = append(t.Rows, []string{
			r.Name, r.CaseType, num(r.Score), num(r.Price), num(r.Hours), num(r.UnitValue),
		})
	}
	t.Notes = append(t.Notes, fmt.Sprintf("Total complexity: %s", num(resp.TotalComplexity)))
	for _, p := range []app.RolePlanView{resp.PM, resp.Staff} {
		t.Notes = append(t.Notes, planNote(p))
	}
	if resp.FallbackHeadcount {
		t.Notes = append(t.Notes, "Current headcount taken from configured fallbacks (roster is empty).")
	}
	return t
}

func planNote(p app.RolePlanView) string {
	verdict := "OK"
	if p.NeedsHiring {
		verdict = "HIRE " + num(p.Shortfall)
	}
	return fmt.Sprintf("%s: capacity %s, current %d, required %s, %s",
		p.Role, num(p.Capacity), p.Current, num(p.Required), verdict)
}
