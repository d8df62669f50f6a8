package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vegasq/tabcat/internal/record"
)

// Aggregate parses expr ("column=function") and applies it to rows.
//
// A nil Result with a nil error means no record held a numeric value for
// the column. See AggregateSpec.Apply.
func Aggregate(rows record.Dataset, expr string) (*Result, error) {
	spec, err := ParseAggregate(expr)
	if err != nil {
		return nil, err
	}
	return spec.Apply(rows)
}

// Apply computes the aggregate over rows.
//
// Records missing the column, or whose cell does not parse as a float,
// are skipped. If nothing is left the result is nil and so is the error,
// even when the function name is invalid: the function is checked only
// once there are values to apply it to.
func (s AggregateSpec) Apply(rows record.Dataset) (*Result, error) {
	values := collectValues(rows, s.Column)
	if len(values) == 0 {
		return nil, nil
	}

	var v float64
	switch s.Function {
	case FuncAvg:
		v = avg(values)
	case FuncMin:
		v = minValue(values)
	case FuncMax:
		v = maxValue(values)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFunction, s.Function)
	}

	return &Result{Function: s.Function, Value: v}, nil
}

// collectValues extracts the parseable numeric values of column.
func collectValues(rows record.Dataset, column string) []float64 {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		cell, ok := row.Get(column)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}

func avg(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func minValue(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxValue(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
