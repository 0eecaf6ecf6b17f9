package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Num prints a value without trailing zeros. Service views are already rounded.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func Percent(v float64) string {
	return Num(v) + "%"
}

// EvaluationPill renders an ROI verdict.
func EvaluationPill(e domain.Evaluation) string {
	switch e {
	case domain.EvalAboveAverage:
		return StyleGreen.Render("▲ above avg")
	case domain.EvalBelowAverage:
		return StyleYellow.Render("▼ below avg")
	default:
		return StyleDim.Render("○ unpriced")
	}
}

// HireVerdict renders the outcome of a headcount plan row.
func HireVerdict(needsHiring bool, shortfall float64) string {
	if needsHiring {
		return StyleRed.Render("HIRE " + Num(shortfall))
	}
	return StyleGreen.Render("OK")
}

// NameList joins names, or renders a dim dash when there are none.
func NameList(names []string) string {
	if len(names) == 0 {
		return Dim("--")
	}
	return strings.Join(names, ", ")
}

// KeyValues renders label/value lines with the labels padded to one width.
func KeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(Dim(p[0] + ":" + strings.Repeat(" ", width-lipgloss.Width(p[0])+1)))
		b.WriteString(p[1])
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
