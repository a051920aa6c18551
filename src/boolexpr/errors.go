package boolexpr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedCharacter is returned when the input contains a character
	// outside the grammar.
	ErrUnexpectedCharacter = errors.New("unexpected character")
	// ErrUnterminatedGroup is returned when a '(' is never closed.
	ErrUnterminatedGroup = errors.New("unterminated group")
	// ErrMalformedConstant is returned for numeric literals that don't fit in a
	// Value.
	ErrMalformedConstant = errors.New("malformed constant")
	// ErrMissingOperand is returned for empty expressions, empty groups and
	// complements with nothing before them.
	ErrMissingOperand = errors.New("missing operand")
	// ErrNotFound is matched by UnknownVariableError.
	ErrNotFound = errors.New("not found")
)

// UnknownVariableError is returned when an unknown variable is encountered.
type UnknownVariableError struct {
	VariableName string
}

// NewUnknownVariableError creates a new UnknownVariableError with the given variable name.
func NewUnknownVariableError(variableName string) error {
	return &UnknownVariableError{VariableName: variableName}
}

func (e UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable: %s", e.VariableName)
}

func (e UnknownVariableError) Is(target error) bool {
	return target == ErrNotFound
}

// SyntaxError describes where parsing stopped and why. Err is one of the
// sentinel errors above.
type SyntaxError struct {
	Offset int
	Char   rune
	Err    error
}

func newSyntaxError(offset int, char rune, err error) error {
	return &SyntaxError{Offset: offset, Char: char, Err: err}
}

func (e *SyntaxError) Error() string {
	if e.Char == 0 {
		return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("%v %q at offset %d", e.Err, e.Char, e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
