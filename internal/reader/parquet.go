package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/tabcat/internal/record"
)

// readParquet reads every row of a parquet file.
//
// Columns follow the order of the file schema. Null values are left out
// of the record, and all other values are converted to their string form.
func readParquet(input io.ReaderAt, size int64) (record.Dataset, error) {
	pqFile, err := parquet.OpenFile(input, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	fields := pqFile.Schema().Fields()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = field.Name()
	}

	reader := parquet.NewReader(pqFile)
	defer func() { _ = reader.Close() }()

	rows := make(record.Dataset, 0)
	for {
		values := make(map[string]interface{})
		err := reader.Read(&values)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		row := record.New(len(columns))
		for _, col := range columns {
			v, ok := values[col]
			if !ok || v == nil {
				continue
			}
			row.Set(col, formatValue(v))
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// readParquetStream buffers a decompressed parquet stream in memory,
// since parquet needs random access to its footer.
func readParquetStream(src io.Reader) (record.Dataset, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress parquet file: %w", err)
	}
	return readParquet(bytes.NewReader(data), int64(len(data)))
}

// formatValue converts a parquet value to the string a delimited file
// would carry for it.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
