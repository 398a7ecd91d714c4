package report

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// Report is implemented by result types that can render themselves both as
// a table and as a marshal-friendly document.
type Report interface {
	// Headers returns the column headers for the table.
	Headers() []string
	// Rows returns the data rows for the table. When color is true, cells
	// may carry ANSI styling.
	Rows(color bool) [][]string
	// Document returns the structure marshaled for JSON and YAML output.
	Document() any
}

// printTable writes the report as a borderless left-aligned table.
func printTable(w io.Writer, r Report, color bool) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(r.Headers())

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, row := range r.Rows(color) {
		table.Append(row)
	}

	table.Render()
	return nil
}
