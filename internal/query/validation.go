package query

import (
	"errors"
	"fmt"
)

// MaxExpressionLength is the maximum accepted length of a WHERE or
// AGGREGATE expression (64KB).
const MaxExpressionLength = 64 * 1024

var (
	// ErrExpressionTooLong is returned when an expression exceeds MaxExpressionLength
	ErrExpressionTooLong = errors.New("expression too long")

	// ErrNoOperator is returned when a condition contains none of the
	// recognized comparison operators
	ErrNoOperator = errors.New("no recognized operator in condition")

	// ErrUnknownOperator is returned when filtering with an operator
	// outside the supported set
	ErrUnknownOperator = errors.New("unknown comparison operator")

	// ErrInvalidNumber is returned when a value taking part in a numeric
	// comparison cannot be parsed as a number
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidAggregate is returned when an aggregate expression is not
	// of the form "column=function"
	ErrInvalidAggregate = errors.New("unrecognized aggregate expression")

	// ErrInvalidFunction is returned for aggregate functions other than
	// avg, min and max
	ErrInvalidFunction = errors.New("invalid aggregate function")
)

// ValidateExpression rejects oversized expressions before they are parsed.
func ValidateExpression(expr string) error {
	if len(expr) > MaxExpressionLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrExpressionTooLong, len(expr), MaxExpressionLength)
	}
	return nil
}
