package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (expected csv or pdf)", s)
	}
}

// PDFOptions controls PDF rendering. FontPath points at a UTF-8 TrueType
// font; without it the core Arial font is used and characters outside
// Latin-1 are replaced.
type PDFOptions struct {
	FontPath string
}

// Write renders t to w in the given format.
func Write(w io.Writer, format Format, t Table, opts PDFOptions) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatPDF:
		return WritePDF(w, t, opts)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

const utf8BOM = "\ufeff"

// WriteCSV writes the header and rows with a leading UTF-8 BOM so that
// spreadsheet tools detect the encoding. Notes are not written.
func WriteCSV(w io.Writer, t Table) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("writing CSV rows: %w", err)
	}
	return nil
}

const (
	pageWidth  = 277.0
	fontSize   = 8.0
	lineHeight = 5.0
)

// WritePDF renders t as a landscape A4 table.
func WritePDF(w io.Writer, t Table, opts PDFOptions) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)

	family := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if opts.FontPath != "" {
		family = "Body"
		pdf.AddUTF8Font(family, "", opts.FontPath)
		pdf.AddUTF8Font(family, "B", opts.FontPath)
		tr = func(s string) string { return s }
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("loading PDF font: %w", err)
	}

	pdf.AddPage()
	pdf.SetFont(family, "B", 12)
	pdf.CellFormat(0, 8, tr(t.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	widths := columnWidths(pdf, t, family, tr)
	header := func() {
		pdf.SetFont(family, "B", fontSize)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range t.Headers {
			pdf.CellFormat(widths[i], lineHeight+1, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(family, "", fontSize)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range t.Rows {
		if pdf.GetY()+lineHeight > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(widths[i], lineHeight, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(t.Notes) > 0 {
		pdf.Ln(3)
		pdf.SetFont(family, "", fontSize+1)
		for _, n := range t.Notes {
			pdf.CellFormat(0, lineHeight, tr(n), "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

// columnWidths sizes columns by their widest cell as drawn after tr,
// scaled to the page.
func columnWidths(pdf *fpdf.Fpdf, t Table, family string, tr func(string) string) []float64 {
	pdf.SetFont(family, "B", fontSize)
	widths := make([]float64, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = pdf.GetStringWidth(tr(h)) + 4
	}
	pdf.SetFont(family, "", fontSize)
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := pdf.GetStringWidth(tr(row[i])) + 4; w > widths[i] {
				widths[i] = w
			}
		}
	}
	var total float64
	for _, w := range widths {
		total += w
	}
	if total > pageWidth {
		for i := range widths {
			widths[i] *= pageWidth / total
		}
	}
	return widths
}
