package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/tabcat/internal/record"
)

// TableFormatter outputs rows as a grid table with a header row.
//
// Headers are the dataset's columns in first-seen order, printed as-is.
// Cells missing from a record are left blank.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new grid table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format writes rows as a grid table. An empty dataset writes nothing.
func (f *TableFormatter) Format(rows record.Dataset) error {
	if len(rows) == 0 {
		return nil
	}

	ew := &errWriter{w: f.writer}

	columns := rows.Columns()
	table := tablewriter.NewWriter(ew)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetRowLine(true)

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i], _ = row.Get(col)
		}
		table.Append(cells)
	}

	table.Render()
	return ew.err
}

// errWriter remembers the first write error, since tablewriter does not
// report one.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
