package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    Condition
		wantErr error
	}{
		{
			name: "greater than",
			expr: "age>25",
			want: Condition{Column: "age", Operator: OpGreater, Value: "25"},
		},
		{
			name: "less equal with spaces",
			expr: "score <= 4.0",
			want: Condition{Column: "score", Operator: OpLessEqual, Value: "4.0"},
		},
		{
			name: "equality",
			expr: "name=Alice",
			want: Condition{Column: "name", Operator: OpEqual, Value: "Alice"},
		},
		{
			name: "greater equal",
			expr: "age>=25",
			want: Condition{Column: "age", Operator: OpGreaterEqual, Value: "25"},
		},
		{
			name: "less than",
			expr: "age < 30",
			want: Condition{Column: "age", Operator: OpLess, Value: "30"},
		},
		{
			name: "value keeps inner spaces",
			expr: "  name =  Mary Ann  ",
			want: Condition{Column: "name", Operator: OpEqual, Value: "Mary Ann"},
		},
		{
			name: "empty value",
			expr: "name=",
			want: Condition{Column: "name", Operator: OpEqual, Value: ""},
		},
		{
			name: "higher priority operator wins over earlier one",
			expr: "a=b>=c",
			want: Condition{Column: "a=b", Operator: OpGreaterEqual, Value: "c"},
		},
		{
			name: "greater found before equal in reversed token",
			expr: "age=>5",
			want: Condition{Column: "age=", Operator: OpGreater, Value: "5"},
		},
		{
			name: "split at first occurrence of operator",
			expr: "x=1=2",
			want: Condition{Column: "x", Operator: OpEqual, Value: "1=2"},
		},
		{
			name:    "no operator",
			expr:    "age!25",
			wantErr: ErrNoOperator,
		},
		{
			name:    "empty",
			expr:    "",
			wantErr: ErrNoOperator,
		},
		{
			name:    "too long",
			expr:    "a=" + strings.Repeat("x", MaxExpressionLength),
			wantErr: ErrExpressionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCondition(tt.expr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCondition_String(t *testing.T) {
	c := Condition{Column: "age", Operator: OpGreaterEqual, Value: "25"}
	assert.Equal(t, "age >= 25", c.String())
}

func TestParseAggregate(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    AggregateSpec
		wantErr error
	}{
		{
			name: "avg",
			expr: "score=avg",
			want: AggregateSpec{Column: "score", Function: FuncAvg},
		},
		{
			name: "unknown function parses",
			expr: "score=median",
			want: AggregateSpec{Column: "score", Function: "median"},
		},
		{
			name: "spaces are kept",
			expr: "score = avg",
			want: AggregateSpec{Column: "score ", Function: " avg"},
		},
		{
			name:    "missing equals",
			expr:    "score",
			wantErr: ErrInvalidAggregate,
		},
		{
			name:    "two equals",
			expr:    "score=avg=max",
			wantErr: ErrInvalidAggregate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAggregate(tt.expr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
