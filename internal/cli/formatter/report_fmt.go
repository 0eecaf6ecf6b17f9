package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/caseload/internal/app"
	"github.com/alexanderramin/caseload/internal/domain"
)

var bandOrder = []domain.RiskBand{domain.RiskHigh, domain.RiskMedium, domain.RiskLow}

func FormatOverview(o *app.OverviewResponse) string {
	if o.TotalCases == 0 {
		return Dim("No cases imported yet.")
	}

	bands := make([]string, 0, len(bandOrder))
	for _, band := range bandOrder {
		bands = append(bands, fmt.Sprintf("%s %d", BandIndicator(band), o.BandCounts[band]))
	}
	types := make([]string, len(o.TypeCounts))
	for i, tc := range o.TypeCounts {
		types[i] = fmt.Sprintf("%s %d", tc.CaseType, tc.Count)
	}
	summary := KeyValues([][2]string{
		{"Cases", strconv.Itoa(o.TotalCases)},
		{"Average score", Num(o.AverageScore)},
		{"High risk", StyleRed.Render(strconv.Itoa(o.HighRiskCount))},
		{"Bands", strings.Join(bands, "  ")},
		{"Types", strings.Join(types, ", ")},
	})

	var b strings.Builder
	b.WriteString(RenderBox("Portfolio overview", summary))
	b.WriteString("\n\n")
	b.WriteString(Header(fmt.Sprintf("Top %d by complexity", len(o.Top))))
	b.WriteString("\n")
	b.WriteString(FormatRankTable(o.Top))
	return b.String()
}

func FormatLoad(l *app.LoadResponse) string {
	var b strings.Builder

	b.WriteString(Header("PM load"))
	b.WriteString("\n")
	if len(l.PMs) == 0 {
		b.WriteString(Dim("No PM assignments."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, len(l.PMs))
		for i, p := range l.PMs {
			rows[i] = []string{p.Name, strconv.Itoa(p.CaseCount), Num(p.TotalScore), Num(p.AvgScore)}
		}
		b.WriteString(NumericTable([]string{"PM", "CASES", "TOTAL", "AVG"}, rows, 1).Render())
	}

	b.WriteString("\n")
	b.WriteString(Header("Staff load"))
	b.WriteString("\n")
	if len(l.Staff) == 0 {
		b.WriteString(Dim("No workload shares recorded."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, len(l.Staff))
		for i, s := range l.Staff {
			rows[i] = []string{s.Name, strconv.Itoa(s.CaseCount), Num(s.WeightedLoad)}
		}
		b.WriteString(NumericTable([]string{"STAFF", "CASES", "WEIGHTED LOAD"}, rows, 1).Render())
	}

	if len(l.MissingDistribution) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render("Missing distribution: "))
		b.WriteString(NameList(l.MissingDistribution))
		b.WriteString("\n")
	}
	if len(l.Unassigned) > 0 {
		b.WriteString(Dim("Unassigned: "))
		b.WriteString(NameList(l.Unassigned))
		b.WriteString("\n")
	}
	return b.String()
}

func FormatPMDetail(d *app.PMDetailResponse) string {
	rows := make([][]string, len(d.Cases))
	for i, c := range d.Cases {
		rows[i] = []string{c.CaseName, c.CaseType, Num(c.Score)}
	}
	var b strings.Builder
	b.WriteString(Header("PM " + d.PM))
	b.WriteString("\n")
	b.WriteString(NumericTable([]string{"CASE", "TYPE", "SCORE"}, rows, 2).Render())
	b.WriteString(Dim(fmt.Sprintf("%d cases, total %s, average %s", d.Load.CaseCount, Num(d.Load.TotalScore), Num(d.Load.AvgScore))))
	b.WriteString("\n")
	return b.String()
}

func FormatStaffDetail(d *app.StaffDetailResponse) string {
	rows := make([][]string, len(d.Cases))
	for i, c := range d.Cases {
		rows[i] = []string{c.CaseName, c.CaseType, Num(c.Score), Percent(c.Percentage), Num(c.WeightedLoad)}
	}
	var b strings.Builder
	b.WriteString(Header("Staff " + d.Staff))
	b.WriteString("\n")
	b.WriteString(NumericTable([]string{"CASE", "TYPE", "SCORE", "SHARE", "LOAD"}, rows, 2).Render())
	b.WriteString(Dim(fmt.Sprintf("%d cases, weighted load %s", d.Load.CaseCount, Num(d.Load.WeightedLoad))))
	b.WriteString("\n")
	return b.String()
}

func FormatROI(r *app.ROIResponse) string {
	if len(r.Rows) == 0 {
		return Dim("No cases imported yet.")
	}
	rows := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		price, roi := Dim("--"), Dim("--")
		if row.Price > 0 {
			price, roi = Num(row.Price), Num(row.ROI)
		}
		rows[i] = []string{row.Name, row.CaseType, Num(row.Score), price, roi, EvaluationPill(row.Evaluation)}
	}
	t := NumericTable([]string{"CASE", "TYPE", "SCORE", "PRICE", "ROI", "VERDICT"}, rows, 2)
	delete(t.Right, 5)

	var b strings.Builder
	b.WriteString(Header("Price vs complexity"))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(KeyValues([][2]string{
		{"Priced cases", strconv.Itoa(r.PricedCount)},
		{"Average ROI", Num(r.AverageROI)},
		{"Average price", Num(r.AveragePrice)},
		{"Average complexity", Num(r.AverageComplexity)},
		{"Underpriced", NameList(r.Underpriced)},
		{"Stars", NameList(r.Stars)},
		{"Missing price", NameList(r.MissingPrice)},
	}))
	b.WriteString("\n")
	return b.String()
}

func FormatBudget(r *app.BudgetResponse) string {
	rows := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = []string{row.Name, row.CaseType, Num(row.Score), Num(row.Price), Num(row.Hours), Num(row.UnitValue)}
	}

	var b strings.Builder
	b.WriteString(Header("Unit value"))
	b.WriteString("\n")
	b.WriteString(NumericTable([]string{"CASE", "TYPE", "SCORE", "PRICE", "HOURS", "PER POINT"}, rows, 2).Render())
	b.WriteString("\n")

	plans := [][]string{}
	for _, p := range []app.RolePlanView{r.PM, r.Staff} {
		plans = append(plans, []string{
			string(p.Role), Num(p.Capacity), strconv.Itoa(p.Current), Num(p.Required), HireVerdict(p.NeedsHiring, p.Shortfall),
		})
	}
	t := NumericTable([]string{"ROLE", "CAPACITY", "CURRENT", "REQUIRED", "VERDICT"}, plans, 1)
	delete(t.Right, 4)
	content := fmt.Sprintf("Total complexity %s\n\n%s", Bold(Num(r.TotalComplexity)), strings.TrimRight(t.Render(), "\n"))
	if r.FallbackHeadcount {
		content += "\n" + Dim("Roster is empty; current headcount uses configured fallbacks.")
	}
	b.WriteString(RenderBox("Headcount plan", content))
	return b.String()
}

func FormatRoster(members []domain.RosterMember) string {
	rows := make([][]string, len(members))
	for i, m := range members {
		role := StyleBlue.Render(string(m.Role))
		if m.Role == domain.RolePM {
			role = StylePurple.Render(string(m.Role))
		}
		rows[i] = []string{role, m.Name}
	}
	return RenderTable([]string{"ROLE", "NAME"}, rows)
}

func FormatShares(caseName string, shares []domain.WorkloadShare) string {
	rows := make([][]string, len(shares))
	var total float64
	for i, s := range shares {
		rows[i] = []string{s.StaffName, Percent(s.Percentage)}
		total += s.Percentage
	}
	var b strings.Builder
	b.WriteString(Header("Shares for " + caseName))
	b.WriteString("\n")
	b.WriteString(NumericTable([]string{"STAFF", "SHARE"}, rows, 1).Render())
	b.WriteString(RenderShareBar(total, 20))
	b.WriteString("\n")
	return b.String()
}

func FormatQuotes(quotes []domain.PriceQuote) string {
	rows := make([][]string, len(quotes))
	for i, q := range quotes {
		price := Dim("not quoted")
		if q.IsQuoted() {
			price = Num(q.Price)
		}
		rows[i] = []string{q.CaseName, price, Num(q.EstimatedHours)}
	}
	return NumericTable([]string{"CASE", "PRICE", "HOURS"}, rows, 1).Render()
}
