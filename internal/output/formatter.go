// Package output renders datasets for the terminal.
//
// Example usage:
//
//	formatter := output.NewTableFormatter(os.Stdout)
//	if err := formatter.Format(rows); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"

	"github.com/vegasq/tabcat/internal/record"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format writes rows in the formatter's specific format
	Format(rows record.Dataset) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}
