// Package record defines the row model shared by the loader, the query
// engine and the table renderer.
//
// Values are kept as the strings read from the source file. Nothing is
// coerced at load time; the query package converts cells to numbers only
// when an operation needs one.
package record

// Record is one row of input keyed by column name.
//
// Columns keep the order in which they were first set, so a record read
// from a file reports its columns in header order.
type Record struct {
	columns []string
	values  map[string]string
}

// New creates an empty record with room for n columns.
func New(n int) *Record {
	return &Record{
		columns: make([]string, 0, n),
		values:  make(map[string]string, n),
	}
}

// FromPairs builds a record from alternating column/value arguments.
// A trailing column without a value is ignored.
//
// Example:
//
//	r := FromPairs("name", "Alice", "age", "25")
func FromPairs(kv ...string) *Record {
	r := New(len(kv) / 2)
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

// Set stores value under column. Setting an existing column replaces its
// value but keeps its original position.
func (r *Record) Set(column, value string) {
	if _, exists := r.values[column]; !exists {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Get returns the value of column and whether the record has it.
func (r *Record) Get(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Columns returns the record's column names in insertion order.
func (r *Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of columns in the record.
func (r *Record) Len() int {
	return len(r.columns)
}

// Dataset is an ordered sequence of records.
type Dataset []*Record

// Columns returns all unique column names across the dataset, in the
// order they are first seen.
func (d Dataset) Columns() []string {
	if len(d) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	columns := make([]string, 0, d[0].Len())

	for _, r := range d {
		for _, col := range r.columns {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}

	return columns
}
