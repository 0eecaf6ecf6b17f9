package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/caseload/internal/app"
	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/engine"
)

// FormatRankTable renders scored cases, highest first.
func FormatRankTable(views []app.CaseScoreView) string {
	rows := make([][]string, len(views))
	for i, v := range views {
		rows[i] = []string{
			strconv.Itoa(v.Rank),
			v.Name,
			v.CaseType,
			BandIndicator(v.Band),
			Num(v.Score),
			Num(v.EntityCount),
			Num(v.EffectiveSystems),
			Num(v.AdjustedResources),
		}
	}
	t := NumericTable([]string{"#", "CASE", "TYPE", "RISK", "SCORE", "ENTITIES", "SYSTEMS", "RESOURCES"}, rows, 4)
	t.Right[0] = true
	return t.Render()
}

// FormatCaseList renders stored cases in import order.
func FormatCaseList(cases []*domain.Case) string {
	rows := make([][]string, len(cases))
	for i, c := range cases {
		source := c.SourceFile
		if source == "" {
			source = Dim("--")
		}
		rows[i] = []string{strconv.Itoa(c.Seq), c.Name, c.CaseType, source}
	}
	return RenderTable([]string{"SEQ", "CASE", "TYPE", "SOURCE"}, rows)
}

// FormatCaseDetail renders one case with its score breakdown and any
// allocation recorded against it.
func FormatCaseDetail(d *app.CaseDetail) string {
	c := d.Case
	summary := KeyValues([][2]string{
		{"Type", c.CaseType},
		{"Score", Bold(Num(d.Score))},
		{"Risk", BandIndicator(d.Band)},
		{"Rank", strconv.Itoa(d.Rank)},
		{"Source", orDash(c.SourceFile)},
	})

	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n\n")
	b.WriteString(Header("Score breakdown"))
	b.WriteString("\n")
	if len(d.Terms) == 0 {
		b.WriteString(Dim("No scoring attributes set."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, len(d.Terms))
		for i, t := range d.Terms {
			rows[i] = []string{t.Detail, "+" + Num(t.Points)}
		}
		b.WriteString(NumericTable([]string{"FACTOR", "POINTS"}, rows, 1).Render())
	}

	b.WriteString("\n")
	b.WriteString(Header("Allocation"))
	b.WriteString("\n")
	var pms, staff []string
	if d.Assignment != nil {
		pms, staff = d.Assignment.PMs, d.Assignment.Staff
	}
	alloc := [][2]string{
		{"PM", NameList(pms)},
		{"Staff", NameList(staff)},
	}
	if len(d.Shares) > 0 {
		parts := make([]string, len(d.Shares))
		var total float64
		for i, s := range d.Shares {
			parts[i] = fmt.Sprintf("%s %s", s.StaffName, Percent(s.Percentage))
			total += s.Percentage
		}
		alloc = append(alloc,
			[2]string{"Shares", strings.Join(parts, ", ")},
			[2]string{"Distributed", RenderShareBar(total, 20)},
		)
	}
	if d.Quote != nil && d.Quote.IsQuoted() {
		alloc = append(alloc,
			[2]string{"Price", Num(d.Quote.Price)},
			[2]string{"Hours", Num(d.Quote.EstimatedHours)},
			[2]string{"ROI", Num(engine.Round(engine.ROI(d.Score, d.Quote.Price), 2))},
		)
	} else {
		alloc = append(alloc, [2]string{"Price", Dim("not quoted")})
	}
	b.WriteString(KeyValues(alloc))

	return RenderBox(c.Name, b.String())
}

func orDash(s string) string {
	if s == "" {
		return Dim("--")
	}
	return s
}
