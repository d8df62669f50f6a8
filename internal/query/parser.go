package query

import (
	"fmt"
	"strings"
)

// ParseCondition parses a WHERE condition such as "age>=25" or
// "name = Alice".
//
// Operators are tried in priority order (>=, <=, >, <, =). The first one
// that occurs anywhere in expr decides the split, at its first
// occurrence, even if a lower-priority operator appears earlier in the
// string. Column and value are trimmed of surrounding whitespace.
func ParseCondition(expr string) (Condition, error) {
	if err := ValidateExpression(expr); err != nil {
		return Condition{}, err
	}

	for _, op := range operators {
		idx := strings.Index(expr, string(op))
		if idx < 0 {
			continue
		}
		return Condition{
			Column:   strings.TrimSpace(expr[:idx]),
			Operator: op,
			Value:    strings.TrimSpace(expr[idx+len(op):]),
		}, nil
	}

	return Condition{}, fmt.Errorf("%w: %q", ErrNoOperator, expr)
}

// ParseAggregate parses an aggregate expression of the form
// "column=function". The expression must contain exactly one '='.
// Neither part is trimmed, and the function name is not checked here.
func ParseAggregate(expr string) (AggregateSpec, error) {
	if err := ValidateExpression(expr); err != nil {
		return AggregateSpec{}, err
	}

	if strings.Count(expr, "=") != 1 {
		return AggregateSpec{}, fmt.Errorf("%w: %q", ErrInvalidAggregate, expr)
	}

	column, function, _ := strings.Cut(expr, "=")
	return AggregateSpec{
		Column:   column,
		Function: Function(function),
	}, nil
}
