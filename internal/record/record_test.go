package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_SetKeepsInsertionOrder(t *testing.T) {
	r := New(3)
	r.Set("name", "Alice")
	r.Set("age", "25")
	r.Set("score", "4.5")

	assert.Equal(t, []string{"name", "age", "score"}, r.Columns())
	assert.Equal(t, 3, r.Len())
}

func TestRecord_SetOverwritesInPlace(t *testing.T) {
	r := FromPairs("name", "Alice", "age", "25")
	r.Set("name", "Bob")

	assert.Equal(t, []string{"name", "age"}, r.Columns())
	v, ok := r.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Bob", v)
}

func TestRecord_Get(t *testing.T) {
	r := FromPairs("name", "Alice", "empty", "")

	tests := []struct {
		name   string
		column string
		want   string
		wantOK bool
	}{
		{"present", "name", "Alice", true},
		{"present but empty", "empty", "", true},
		{"absent", "age", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Get(tt.column)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecord_ColumnsReturnsCopy(t *testing.T) {
	r := FromPairs("a", "1", "b", "2")
	cols := r.Columns()
	cols[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, r.Columns())
}

func TestFromPairs_IgnoresDanglingColumn(t *testing.T) {
	r := FromPairs("a", "1", "b")

	assert.Equal(t, []string{"a"}, r.Columns())
}

func TestDataset_Columns(t *testing.T) {
	tests := []struct {
		name string
		ds   Dataset
		want []string
	}{
		{
			name: "empty",
			ds:   Dataset{},
			want: nil,
		},
		{
			name: "uniform",
			ds: Dataset{
				FromPairs("name", "Alice", "age", "25"),
				FromPairs("name", "Bob", "age", "30"),
			},
			want: []string{"name", "age"},
		},
		{
			name: "sparse rows keep first-seen order",
			ds: Dataset{
				FromPairs("name", "Alice"),
				FromPairs("name", "Bob", "age", "30"),
				FromPairs("score", "4.2", "name", "Charlie"),
			},
			want: []string{"name", "age", "score"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ds.Columns())
		})
	}
}
