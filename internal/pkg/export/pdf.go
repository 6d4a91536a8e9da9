package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDF renders the table as a landscape A4 PDF document. Column widths
// share the printable width evenly and the header row repeats on every
// page.
func PDF(t Table) (*bytes.Buffer, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	printable := pageW - left - right

	colW := printable
	if len(t.Headers) > 0 {
		colW = printable / float64(len(t.Headers))
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range t.Headers {
			pdf.CellFormat(colW, 8, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(printable, 10, t.Title, "", 0, "L", false, 0, "")
		pdf.Ln(12)
		header()
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range t.Rows {
		for i := 0; i < len(t.Headers); i++ {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			pdf.CellFormat(colW, 7, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf, nil
}
