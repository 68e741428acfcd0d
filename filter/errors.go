package filter

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode categorizes filter errors.
type ErrorCode int

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodeLeadingOperator
	ErrorCodeTrailingOperator
	ErrorCodeConsecutiveOperators
	ErrorCodeMalformedExpression
	ErrorCodeMissingValue
	ErrorCodeUnknownName
	ErrorCodeInvalidOperator
	ErrorCodeInvalidValue
)

// ParseError is a syntax error in filter text.
type ParseError struct {
	Code     ErrorCode
	Text     string // offending text
	Position int    // byte offset of Text in the query
}

func (e *ParseError) Error() string {

	switch e.Code {
	case ErrorCodeLeadingOperator:
		return fmt.Sprintf("Filter can't start with operator: '%s'", e.Text)
	case ErrorCodeTrailingOperator:
		return fmt.Sprintf("Filter can't end with operator: '%s'", e.Text)
	case ErrorCodeConsecutiveOperators:
		return fmt.Sprintf("Consecutive operators: '%s'", e.Text)
	case ErrorCodeMalformedExpression:
		return fmt.Sprintf("Malformed filter expression: '%s'", e.Text)
	case ErrorCodeMissingValue:
		return fmt.Sprintf("Missing value: %s ...", e.Text)
	}
	return fmt.Sprintf("Parse error at position %d: '%s'", e.Position, e.Text)
}

// SemanticError is well-formed filter text that does not fit the registry.
type SemanticError struct {
	Code     ErrorCode
	Name     string
	Operator Operator
	Value    string
}

func (e *SemanticError) Error() string {

	switch e.Code {
	case ErrorCodeUnknownName:
		return fmt.Sprintf("Invalid filter name: '%s'", e.Name)
	case ErrorCodeInvalidOperator:
		return fmt.Sprintf("Invalid operator for filter '%s': %s", e.Name, e.Operator)
	case ErrorCodeInvalidValue:
		return fmt.Sprintf("Invalid value for filter '%s': '%s'", e.Name, e.Value)
	}
	return fmt.Sprintf("Invalid filter '%s'", e.Name)
}

// ErrorCodeOf returns the code of the first filter error in err's chain.
func ErrorCodeOf(err error) ErrorCode {

	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}

	var se *SemanticError
	if errors.As(err, &se) {
		return se.Code
	}

	return ErrorCodeUnknown
}

func parseError(code ErrorCode, text string, pos int) error {
	return errors.WithStack(&ParseError{Code: code, Text: text, Position: pos})
}

func semanticError(code ErrorCode, name string, op Operator, value string) error {
	return errors.WithStack(&SemanticError{Code: code, Name: name, Operator: op, Value: value})
}
