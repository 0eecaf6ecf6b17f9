package formatter

import (
	"fmt"
	"math"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderShareBar draws how much of a case has been distributed, e.g.
// [██████░░] 75%. Complete totals are green, short ones yellow and totals
// over 100 red.
func RenderShareBar(total float64, width int) string {
	if width < 2 {
		width = 2
	}
	frac := math.Max(0, math.Min(total/100, 1))
	filled := int(math.Round(frac * float64(width)))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleYellow
	switch {
	case math.Abs(total-100) < 0.1:
		style = StyleGreen
	case total > 100:
		style = StyleRed
	}
	return fmt.Sprintf("[%s] %s", style.Render(bar), Percent(math.Round(total*100)/100))
}
