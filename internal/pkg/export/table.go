// Package export renders tabular report data as spreadsheet and PDF
// documents for download.
package export

// Table is the renderer-independent shape of an exported report.
type Table struct {
	// Title is rendered above the rows (PDF) and used as the sheet name (XLSX).
	Title   string
	Headers []string
	Rows    [][]string
}
