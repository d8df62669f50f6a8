package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/vegasq/tabcat/internal/record"
)

// readDelimited reads header-prefixed delimited text.
//
// Each row maps header names to its fields. Short rows leave the
// trailing columns absent; fields beyond the header are dropped.
func readDelimited(src io.Reader, delim rune, logger log.Logger) (record.Dataset, error) {
	cr := csv.NewReader(src)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return record.Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	rows := make(record.Dataset, 0)
	for {
		fields, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		n := len(fields)
		if n > len(header) {
			line, _ := cr.FieldPos(0)
			_ = level.Debug(logger).Log("msg", "dropping fields beyond header", "line", line, "fields", n, "columns", len(header))
			n = len(header)
		}

		row := record.New(n)
		for i := 0; i < n; i++ {
			row.Set(header[i], fields[i])
		}
		rows = append(rows, row)
	}

	return rows, nil
}
