// Package query implements the tabcat query engine: parsing a single
// comparison condition, filtering rows with it, and aggregating a numeric
// column.
//
// Cells are strings. A cell takes part in a numeric comparison only when
// it passes a simple heuristic (see isNumeric); otherwise only equality
// on the raw text applies.
//
// Example usage:
//
//	cond, err := ParseCondition("age >= 25")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rows, err = ApplyCondition(rows, cond)
//
//	res, err := Aggregate(rows, "score=avg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res == nil {
//	    // no numeric values for the column
//	}
package query

import (
	"strconv"

	"github.com/vegasq/tabcat/internal/record"
)

// Operator is a comparison operator of a WHERE condition.
type Operator string

const (
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpEqual        Operator = "="
)

// operators lists every recognized operator in matching priority.
// Two-character operators come before their one-character prefixes.
var operators = []Operator{OpGreaterEqual, OpLessEqual, OpGreater, OpLess, OpEqual}

// Condition is a parsed WHERE condition.
type Condition struct {
	Column   string
	Operator Operator
	Value    string
}

// String renders the condition as "column op value".
func (c Condition) String() string {
	return c.Column + " " + string(c.Operator) + " " + c.Value
}

// Function is an aggregate function name.
type Function string

const (
	FuncAvg Function = "avg"
	FuncMin Function = "min"
	FuncMax Function = "max"
)

// AggregateSpec is a parsed "column=function" aggregate expression.
type AggregateSpec struct {
	Column   string
	Function Function
}

// Result holds the value computed by an aggregate function.
type Result struct {
	Function Function
	Value    float64
}

// Dataset returns the result as a single-row dataset with one column
// named after the function.
func (r *Result) Dataset() record.Dataset {
	row := record.New(1)
	row.Set(string(r.Function), formatFloat(r.Value))
	return record.Dataset{row}
}

// formatFloat prints v with up to six significant digits, dropping
// trailing zeros (4.166666 -> "4.16667", 25.0 -> "25").
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
