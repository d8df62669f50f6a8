package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/vegasq/tabcat/internal/record"
)

// isNumeric reports whether a cell should be compared as a number.
//
// The cell counts as numeric when, after removing every '.' and ',', what
// remains is a non-empty run of decimal digits. This is a heuristic, not
// a number grammar: "1.2.3" and "1,000" pass it, "-5" and "1e3" do not.
func isNumeric(cell string) bool {
	stripped := strings.NewReplacer(".", "", ",", "").Replace(cell)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// parseNumber parses s as a float64, tolerating surrounding spaces.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}

// compareNumbers compares two numbers
func compareNumbers(left float64, operator Operator, right float64) bool {
	switch operator {
	case OpEqual:
		return left == right
	case OpLess:
		return left < right
	case OpGreater:
		return left > right
	case OpLessEqual:
		return left <= right
	case OpGreaterEqual:
		return left >= right
	default:
		return false
	}
}

// literal lazily parses the right-hand side of a condition. The value is
// only converted once a numeric cell needs it, so a non-numeric literal
// never fails against a text column.
type literal struct {
	raw    string
	num    float64
	err    error
	parsed bool
}

func (l *literal) number() (float64, error) {
	if !l.parsed {
		l.num, l.err = parseNumber(l.raw)
		l.parsed = true
	}
	return l.num, l.err
}

// match evaluates one record against the condition.
func match(row *record.Record, column string, operator Operator, value *literal) (bool, error) {
	cell, exists := row.Get(column)
	if !exists {
		return false, nil
	}

	if !isNumeric(cell) {
		// Ordering operators are only defined for numbers.
		return operator == OpEqual && cell == value.raw, nil
	}

	cellNum, err := parseNumber(cell)
	if err != nil {
		return false, fmt.Errorf("column %q: %w", column, err)
	}
	valueNum, err := value.number()
	if err != nil {
		return false, fmt.Errorf("value for column %q: %w", column, err)
	}

	return compareNumbers(cellNum, operator, valueNum), nil
}

// Filter returns the records of rows satisfying "column operator value",
// in their original order. Records without the column are skipped.
// The input dataset is not modified; the result shares its records.
func Filter(rows record.Dataset, column string, operator Operator, value string) (record.Dataset, error) {
	if !operator.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, operator)
	}

	lit := &literal{raw: value}
	filtered := make(record.Dataset, 0)
	for _, row := range rows {
		ok, err := match(row, column, operator, lit)
		if err != nil {
			return nil, err
		}
		if ok {
			filtered = append(filtered, row)
		}
	}

	return filtered, nil
}

// ApplyCondition filters rows with a parsed condition.
func ApplyCondition(rows record.Dataset, cond Condition) (record.Dataset, error) {
	return Filter(rows, cond.Column, cond.Operator, cond.Value)
}

func (o Operator) valid() bool {
	for _, op := range operators {
		if o == op {
			return true
		}
	}
	return false
}
