package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/caseload/internal/importer"
)

// FormatImportSummary reports what an import stored and what it skipped.
func FormatImportSummary(imported int, warnings []string, blanks []importer.ColumnBlanks, ignored []string) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render(fmt.Sprintf("Imported %d cases.", imported)))
	b.WriteString("\n")

	if len(blanks) > 0 {
		rows := make([][]string, len(blanks))
		for i, cb := range blanks {
			rows[i] = []string{cb.Column, strconv.Itoa(cb.Blanks)}
		}
		b.WriteString("\n")
		b.WriteString(Header("Blank cells"))
		b.WriteString("\n")
		b.WriteString(NumericTable([]string{"COLUMN", "BLANKS"}, rows, 1).Render())
	}
	if len(ignored) > 0 {
		b.WriteString("\n")
		b.WriteString(Dim("Ignored columns: " + strings.Join(ignored, ", ")))
		b.WriteString("\n")
	}
	if len(warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d warnings:", len(warnings))))
		b.WriteString("\n")
		for _, w := range warnings {
			b.WriteString("  - " + w + "\n")
		}
	}
	return b.String()
}
