package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 10.0
	pdfRowHeight  = 7.0
	pdfFontFamily = "Helvetica"
)

type PDF struct{}

func (PDF) ContentType() string { return "application/pdf" }

func (PDF) Extension() string { return "pdf" }

// Encode lays the table out on landscape A4 pages with equal column widths.
// Cell text that does not fit its column is cut short.
func (PDF) Encode(w io.Writer, t Table) error {
	if err := t.validate(); err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(pdfFontFamily, "B", 14)
	pdf.CellFormat(0, 10, tr(t.Title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	if len(t.Headers) > 0 {
		pageWidth, _ := pdf.GetPageSize()
		colWidth := (pageWidth - 2*pdfMargin) / float64(len(t.Headers))

		pdf.SetFont(pdfFontFamily, "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range t.Headers {
			pdf.CellFormat(colWidth, pdfRowHeight, fitText(pdf, tr(h), colWidth), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont(pdfFontFamily, "", 8)
		for _, row := range t.Rows {
			for _, cell := range row {
				pdf.CellFormat(colWidth, pdfRowHeight, fitText(pdf, tr(cell), colWidth), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}

func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	const padding = 2.0
	if pdf.GetStringWidth(s) <= width-padding {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width-padding {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
